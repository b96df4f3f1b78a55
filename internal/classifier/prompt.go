package classifier

import "os"

// defaultSystemPrompt is used when no prompt file is configured or the
// configured file cannot be read.
const defaultSystemPrompt = `You are a support ticket classifier.
Classify the ticket into exactly one of these categories:
refund, regeneration, sppam, pictures-not-received-spam, invoice,
reupload, influencers, team-info, feedback, ghost-email, linkedin,
miscellaneous.

Respond with a single JSON object with keys "classification" (one of
the categories above), "confidence" (integer 0-100) and "reasoning"
(one short sentence). Output nothing but the JSON object.`

// loadSystemPrompt reads the prompt file at path, falling back to the
// built-in prompt when the path is empty or unreadable.
func loadSystemPrompt(path string) string {
	if path == "" {
		return defaultSystemPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return defaultSystemPrompt
	}
	return string(data)
}
