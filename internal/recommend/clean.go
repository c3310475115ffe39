package recommend

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)^```(\\w*)?\\s*\\n?(.*?)\\n?\\s*```$")

// StripCodeFence removes a markdown code fence (```json ... ```) that models
// like to wrap JSON in. Unfenced input is returned trimmed.
func StripCodeFence(input string) string {
	clean := strings.TrimSpace(input)
	if m := fenceRe.FindStringSubmatch(clean); m != nil && m[2] != "" {
		return strings.TrimSpace(m[2])
	}
	return clean
}
