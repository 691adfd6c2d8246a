package processor

import "fmt"

// BuildPrompt renders the instruction for a directive. Template choice is
// a pure function of the task: identical inputs always yield identical
// prompts.
func BuildPrompt(text string, directive Directive) string {
	lang := directive.TargetLanguage
	switch directive.Task {
	case TaskSummarize:
		return fmt.Sprintf("Please provide a concise summary of the following transcript in %s:\n\n%s", lang, text)
	case TaskTranslate:
		return fmt.Sprintf("Please translate the following transcript to %s:\n\n%s", lang, text)
	case TaskAnalyze:
		return fmt.Sprintf("Please analyze the key points and themes in the following transcript in %s:\n\n%s", lang, text)
	default:
		return fmt.Sprintf("Please %s the following transcript in %s:\n\n%s", directive.Task, lang, text)
	}
}

// truncate caps the transcript at maxChars characters for backends with
// input limits. Counts runes, not bytes, so multibyte text is never cut
// mid-character. A limit of zero or less means no truncation.
func truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
