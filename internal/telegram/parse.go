package telegram

import (
	"strings"
	"unicode/utf8"
)

// Invocation is a recognized command line.
type Invocation struct {
	Verb string
	Args []string
}

// ParseCommand recognizes "<prefix><verb>[@bot] args..." in text. A command
// addressed to a different bot is ignored. The verb is lower-cased.
func ParseCommand(text string, prefixes []string, botName string) (Invocation, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Invocation{}, false
	}
	var rest string
	matched := false
	for _, prefix := range prefixes {
		if prefix == "" || !strings.HasPrefix(text, prefix) {
			continue
		}
		rest = text[len(prefix):]
		matched = true
		break
	}
	if !matched {
		return Invocation{}, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 || rest[0] == ' ' {
		return Invocation{}, false
	}
	verb := fields[0]
	if at := strings.IndexByte(verb, '@'); at >= 0 {
		target := verb[at+1:]
		verb = verb[:at]
		if botName != "" && !strings.EqualFold(target, botName) {
			return Invocation{}, false
		}
	}
	if verb == "" || !validVerb(verb) {
		return Invocation{}, false
	}
	return Invocation{Verb: strings.ToLower(verb), Args: fields[1:]}, true
}

func validVerb(verb string) bool {
	if !utf8.ValidString(verb) {
		return false
	}
	for _, r := range verb {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
