package processor

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

// implGemini is shared by concurrent pipeline runs in watch mode, so the
// rotating key index must be safe for unsynchronized callers.
type implGemini struct {
	apiKeys    []string
	currentKey atomic.Int64
	model      string
	logger     logger.Logger
}

// Process sends the full transcript to Gemini with the directive's
// instruction. The remote variant never truncates.
// Rotates API keys on 429 / quota errors.
func (p *implGemini) Process(ctx context.Context, text string, directive Directive) (string, error) {
	prompt := BuildPrompt(text, directive)

	attempts := len(p.apiKeys)
	var lastErr error

	for range attempts {
		keyIndex := int(p.currentKey.Load()) % len(p.apiKeys)
		key := p.apiKeys[keyIndex]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			p.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				p.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				p.rotateKey()
				lastErr = err
				continue
			}
			return "", &BackendError{Message: errMsg}
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var out string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					out += part.Text
				}
			}
			if trimmed := strings.TrimSpace(out); trimmed != "" {
				return trimmed, nil
			}
		}

		return "", &BackendError{Message: "empty response from Gemini"}
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (p *implGemini) rotateKey() {
	p.currentKey.Add(1)
}
