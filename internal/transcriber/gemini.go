package transcriber

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

const transcribeInstruction = "Please transcribe this audio file accurately. " +
	"Return only the transcribed text without any additional commentary or formatting."

type implGemini struct {
	cfg    *config.Config
	logger logger.Logger
}

// Transcribe uploads the artifact to the Gemini Files API, requests a
// verbatim transcription and always releases the uploaded file afterward.
func (t *implGemini) Transcribe(ctx context.Context, artifact *fetcher.AudioArtifact) (*Result, error) {
	ensureMIME(artifact)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  t.cfg.Gemini.APIKeys[0],
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &BackendError{Message: fmt.Sprintf("create client: %v", err)}
	}

	uploaded, err := client.Files.UploadFromPath(ctx, artifact.Path, &genai.UploadFileConfig{
		MIMEType: artifact.MIMEType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer func() {
		// The remote file is released regardless of transcription outcome.
		if _, derr := client.Files.Delete(ctx, uploaded.Name, nil); derr != nil {
			t.logger.Warn(ctx, "Failed to delete uploaded file %s: %v", uploaded.Name, derr)
		}
	}()

	t.logger.Debug(ctx, "Uploaded %s as %s (%s)", artifact.Path, uploaded.Name, artifact.MIMEType)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(transcribeInstruction),
			genai.NewPartFromURI(uploaded.URI, uploaded.MIMEType),
		}, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, t.cfg.Gemini.TranscribeModel, contents, nil)
	if err != nil {
		return nil, &BackendError{Message: err.Error()}
	}

	return finalize(collectText(result), "")
}

// collectText concatenates the text parts of the first candidate.
func collectText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}
