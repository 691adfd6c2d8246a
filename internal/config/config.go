package config

import "fmt"

// Provider names selectable in the transcribe and process sections.
const (
	ProviderGemini  = "gemini"
	ProviderWhisper = "whisper"
	ProviderClaude  = "claude"
)

// Fallback policies applied when text processing fails.
const (
	FallbackOmit       = "omit"
	FallbackTranscript = "transcript"
)

type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Transcribe TranscribeConfig `yaml:"transcribe"`
	Process    ProcessConfig    `yaml:"process"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type PathsConfig struct {
	Downloads string `yaml:"downloads"`
	Temp      string `yaml:"temp"`
	Output    string `yaml:"output"`
}

type FetchConfig struct {
	Binary       string `yaml:"binary"`
	Normalize    bool   `yaml:"normalize"`
	AudioFormat  string `yaml:"audio_format"`
	AudioQuality string `yaml:"audio_quality"`
	// KeepDownloads places fetched audio in the downloads directory and
	// retains it after the run. When false, downloads go to a per-run
	// temp location owned (and deleted) by the pipeline.
	KeepDownloads bool `yaml:"keep_downloads"`
}

type TranscribeConfig struct {
	Provider string        `yaml:"provider"`
	Whisper  WhisperConfig `yaml:"whisper"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Model      string `yaml:"model"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type ProcessConfig struct {
	Provider string       `yaml:"provider"`
	Fallback string       `yaml:"fallback"`
	Claude   ClaudeConfig `yaml:"claude"`
}

type ClaudeConfig struct {
	Binary         string `yaml:"binary"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxChars       int    `yaml:"max_chars"`
}

type GeminiConfig struct {
	Model           string   `yaml:"model"`
	TranscribeModel string   `yaml:"transcribe_model"`
	APIKeys         []string `yaml:"-"`
}

type PipelineConfig struct {
	FetchWeight      float64 `yaml:"fetch_weight"`
	TranscribeWeight float64 `yaml:"transcribe_weight"`
	ProcessWeight    float64 `yaml:"process_weight"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	switch c.Transcribe.Provider {
	case "", ProviderGemini:
		c.Transcribe.Provider = ProviderGemini
	case ProviderWhisper:
		if c.Transcribe.Whisper.BinaryPath == "" {
			return fmt.Errorf("transcribe.whisper.binary_path is required")
		}
		if c.Transcribe.Whisper.ModelDir == "" {
			return fmt.Errorf("transcribe.whisper.model_dir is required")
		}
	default:
		return fmt.Errorf("transcribe.provider must be %q or %q", ProviderGemini, ProviderWhisper)
	}

	switch c.Process.Provider {
	case "", ProviderGemini:
		c.Process.Provider = ProviderGemini
	case ProviderClaude:
	default:
		return fmt.Errorf("process.provider must be %q or %q", ProviderGemini, ProviderClaude)
	}

	switch c.Process.Fallback {
	case "":
		c.Process.Fallback = FallbackOmit
	case FallbackOmit, FallbackTranscript:
	default:
		return fmt.Errorf("process.fallback must be %q or %q", FallbackOmit, FallbackTranscript)
	}

	if c.Paths.Downloads == "" {
		c.Paths.Downloads = "downloads"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}

	if c.Fetch.Binary == "" {
		c.Fetch.Binary = "yt-dlp"
	}
	if c.Fetch.AudioFormat == "" {
		c.Fetch.AudioFormat = "mp3"
	}
	if c.Fetch.AudioQuality == "" {
		c.Fetch.AudioQuality = "192K"
	}

	if c.Transcribe.Whisper.Model == "" {
		c.Transcribe.Whisper.Model = "base"
	}
	if c.Transcribe.Whisper.Language == "" {
		c.Transcribe.Whisper.Language = "auto"
	}
	if c.Transcribe.Whisper.Threads == 0 {
		c.Transcribe.Whisper.Threads = 4
	}

	if c.Process.Claude.Binary == "" {
		c.Process.Claude.Binary = "claude"
	}
	if c.Process.Claude.TimeoutSeconds == 0 {
		c.Process.Claude.TimeoutSeconds = 30
	}
	if c.Process.Claude.MaxChars == 0 {
		c.Process.Claude.MaxChars = 4000
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Gemini.TranscribeModel == "" {
		c.Gemini.TranscribeModel = "gemini-1.5-flash"
	}

	if c.Pipeline.FetchWeight == 0 && c.Pipeline.TranscribeWeight == 0 && c.Pipeline.ProcessWeight == 0 {
		c.Pipeline.FetchWeight = 0.3
		c.Pipeline.TranscribeWeight = 0.3
		c.Pipeline.ProcessWeight = 0.4
	}
	sum := c.Pipeline.FetchWeight + c.Pipeline.TranscribeWeight + c.Pipeline.ProcessWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("pipeline stage weights must sum to 1, got %.3f", sum)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// UsesGemini reports whether any selected provider needs a Gemini API key.
func (c *Config) UsesGemini() bool {
	return c.Transcribe.Provider == ProviderGemini || c.Process.Provider == ProviderGemini
}
