package transcript

import "strings"

// Bubble emotion tags for displayed messages. These drive styling only; the
// actual safety behaviour lives in the model-side prompt preamble, which is
// why this list is best-effort rather than exhaustive.
const (
	EmotionSupportive = "supportive"
	EmotionUrgent     = "urgent"
)

var emergencyKeywords = []string{
	"chest pain",
	"cant breathe",
	"can't breathe",
	"shortness of breath",
	"severe pain",
	"suicide",
	"kill myself",
	"confused",
	"slurred speech",
	"seizure",
	"unconscious",
	"severe bleeding",
	"heart attack",
	"stroke",
}

// IsEmergency reports whether the text mentions any of the known emergency
// phrases. Matching is a plain case-insensitive substring check.
func IsEmergency(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range emergencyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// BubbleEmotion picks the display tag for the assistant bubble that answers
// the given user message.
func BubbleEmotion(userText string) string {
	if IsEmergency(userText) {
		return EmotionUrgent
	}
	return EmotionSupportive
}

// Tone is a coarse read of the user's emotional state, used to soften the
// preview page styling.
type Tone string

const (
	ToneWorried    Tone = "worried"
	ToneFrustrated Tone = "frustrated"
	ToneTired      Tone = "tired"
	ToneNeutral    Tone = "neutral"
)

var (
	worriedWords    = []string{"worried", "scared", "afraid", "anxious", "nervous", "concerned"}
	frustratedWords = []string{"frustrated", "angry", "annoyed", "upset", "fed up"}
	tiredWords      = []string{"exhausted", "tired", "fatigue", "drained", "weak"}
)

// DetectTone returns the first tone whose word list matches, checked in the
// order worried, frustrated, tired.
func DetectTone(text string) Tone {
	lower := strings.ToLower(text)
	contains := func(words []string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
	switch {
	case contains(worriedWords):
		return ToneWorried
	case contains(frustratedWords):
		return ToneFrustrated
	case contains(tiredWords):
		return ToneTired
	default:
		return ToneNeutral
	}
}
