package services

import (
	"strings"

	"RubyAI/models"

	"github.com/tmc/langchaingo/llms"
)

const (
	// ScreenshotMarker is what the client folds into a message's text when a
	// capture is attached; it survives in the transcript and is what keeps a
	// conversation on the vision path for all later turns.
	ScreenshotMarker = "[Screenshot attached]"

	dataURLMarker = "data:image"

	textSystemPrompt = "You are Ruby AI, a helpful, friendly, and intelligent assistant. " +
		"You provide clear, accurate, and thoughtful responses. You have a warm personality " +
		"and enjoy helping users with their questions and tasks. Be concise but thorough in " +
		"your answers. When users share screenshots or images, analyze them carefully and " +
		"provide helpful insights."

	visionSystemPrompt = "You are Ruby AI, a helpful, friendly, and intelligent assistant " +
		"with vision capabilities. You can see and analyze images/screenshots. Provide clear, " +
		"accurate, and thoughtful responses about what you see. Be concise but thorough."
)

// HasImageContent decides the text-vs-vision route for a turn: true when the
// current turn attaches an image, or when any stored message carries the
// screenshot marker or an inline data URL. The whole history is re-scanned on
// every turn; the routing is conversation-sticky purely because the marker
// stays in the transcript.
func HasImageContent(imageDataURL string, history []models.Message) bool {
	if imageDataURL != "" {
		return true
	}
	for _, m := range history {
		if strings.Contains(m.Content, ScreenshotMarker) || strings.Contains(m.Content, dataURLMarker) {
			return true
		}
	}
	return false
}

// BuildTranscript assembles the model input: system instruction, every prior
// turn role-tagged, then the current turn — as plain text, or text plus an
// inline image reference when one is attached. history is expected to already
// contain the just-persisted current user turn; its last element is replaced
// by the structured current turn.
func BuildTranscript(history []models.Message, content, imageDataURL string, vision bool) []llms.MessageContent {
	system := textSystemPrompt
	if vision {
		system = visionSystemPrompt
	}

	transcript := make([]llms.MessageContent, 0, len(history)+1)
	transcript = append(transcript, llms.TextParts(llms.ChatMessageTypeSystem, system))

	prior := history
	if len(prior) > 0 {
		prior = prior[:len(prior)-1]
	}
	for _, m := range prior {
		role := llms.ChatMessageTypeHuman
		if m.Role == models.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		transcript = append(transcript, llms.TextParts(role, m.Content))
	}

	if imageDataURL != "" {
		transcript = append(transcript, llms.MessageContent{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(content),
				llms.ImageURLPart(imageDataURL),
			},
		})
	} else {
		transcript = append(transcript, llms.TextParts(llms.ChatMessageTypeHuman, content))
	}
	return transcript
}
