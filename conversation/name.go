package conversation

import (
	"strings"

	"github.com/salonewatch/bot-go/utils"
)

var greetingTokens = map[string]bool{
	"hello": true,
	"hi":    true,
	"hey":   true,
	"hallo": true,
	"kushe": true,
}

// namePatterns is tried in order; the first match wins.
var namePatterns = []string{
	"i am ",
	"i'm ",
	"my name is ",
	"call me ",
	"this is ",
}

func stripGreeting(text string) string {
	trimmed := strings.TrimSpace(text)
	fields := strings.SplitN(trimmed, " ", 2)
	if len(fields) == 2 {
		first := strings.ToLower(strings.Trim(fields[0], ",.!"))
		if greetingTokens[first] {
			return strings.TrimSpace(fields[1])
		}
	}
	return trimmed
}

// extractPatternName pulls a name out of an introduction phrase like
// "hi, my name is musa kamara". It reports false when no pattern
// matched, leaving the caller to prompt explicitly.
func extractPatternName(text string) (string, bool) {
	stripped := stripGreeting(text)
	lowered := strings.ToLower(stripped)
	for _, p := range namePatterns {
		if strings.HasPrefix(lowered, p) {
			name := strings.Trim(stripped[len(p):], " ,.!")
			if name != "" {
				return utils.TitleCase(name), true
			}
		}
	}
	return "", false
}

// extractName is the permissive variant used once the bot has asked
// for a name: a pattern match wins, otherwise the whole
// greeting-stripped message is the name.
func extractName(text string) string {
	if name, ok := extractPatternName(text); ok {
		return name
	}
	stripped := strings.Trim(stripGreeting(text), " ,.!")
	return utils.TitleCase(stripped)
}
