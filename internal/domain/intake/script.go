package intake

// Greeting opens every conversation. It is never part of the scripted
// question sequence and does not consume a script position.
const Greeting = "Hello! I'm the MediQ virtual assistant. How can I help you today?"

// Script is the fixed intake question sequence. The bot never reads what the
// patient typed: the reply is a pure function of how many user messages the
// conversation holds.
type Script []string

// DefaultScript returns the standard intake question sequence.
func DefaultScript() Script {
	return Script{
		"Thank you. What is your full name?",
		"Nice to meet you. Which clinic are you in today (e.g., General, Pediatrics, etc.)?",
		"Got it. Please describe your symptoms in a few words.",
		"Thank you for sharing. Have you visited this hospital in the last 6 months?",
		"Thank you for the information. A doctor will be with you shortly. Please have a seat in the waiting area.",
	}
}

// Reply returns the bot response after the nth user message (1-indexed). Past
// the end of the script the final message repeats indefinitely.
func (s Script) Reply(userMessages int) string {
	if len(s) == 0 {
		return ""
	}
	idx := userMessages - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s) {
		idx = len(s) - 1
	}
	return s[idx]
}
