// Package postprocess strips the artifacts LLM translators wrap around
// their answer.
package postprocess

import (
	"regexp"
	"strings"
)

var (
	// Closed or truncated reasoning blocks. RE2 has no backreferences, so each
	// tag is listed on its own.
	thinkingRe = regexp.MustCompile(
		`(?is)<(think|thinking|reasoning)>.*?</(think|thinking|reasoning)>|<(think|thinking|reasoning)>.*$`,
	)

	// "Here is the translation:", "Sure, here's the translated text:", "Translation:"
	echoRe = regexp.MustCompile(
		`(?i)^(?:(?:certainly|sure|of course)[,.!]?\s+)?(?:here(?:'s| is)\s+)?(?:the\s+)?(?:translated text|translation)\s*:`,
	)

	quotePairs = [][2]rune{
		{'"', '"'},
		{'\'', '\''},
		{'«', '»'},
		{'“', '”'},
		{'‘', '’'},
	}
)

// Clean returns text without reasoning blocks, a leading instruction echo
// and one pair of wrapping quotes, trimmed.
func Clean(text string) string {
	text = strings.TrimSpace(thinkingRe.ReplaceAllString(text, ""))
	if loc := echoRe.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[loc[1]:])
	}
	return strings.TrimSpace(unquote(text))
}

func unquote(text string) string {
	runes := []rune(text)
	if len(runes) < 2 {
		return text
	}
	first, last := runes[0], runes[len(runes)-1]
	for _, p := range quotePairs {
		if first == p[0] && last == p[1] {
			return string(runes[1 : len(runes)-1])
		}
	}
	return text
}
