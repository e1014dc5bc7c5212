// Package detector guesses the language of input text. The MyMemory provider
// uses it to fill in the source half of its language pair.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector for the given languages, or for every language
// lingua knows when none are passed.
func New(languages ...lingua.Language) *Detector {
	var detector lingua.LanguageDetector
	if len(languages) < 2 {
		detector = lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build()
	} else {
		detector = lingua.NewLanguageDetectorBuilder().FromLanguages(languages...).Build()
	}
	return &Detector{detector: detector}
}

// NewForCodes restricts detection to the ISO 639-1 codes given. Unknown
// codes are skipped; fewer than two known codes fall back to all languages.
func NewForCodes(codes []string) *Detector {
	byISO := make(map[string]lingua.Language)
	for _, lang := range lingua.AllLanguages() {
		byISO[lang.IsoCode639_1().String()] = lang
	}

	var languages []lingua.Language
	seen := make(map[lingua.Language]bool)
	for _, code := range codes {
		base, _, _ := strings.Cut(strings.ToUpper(strings.TrimSpace(code)), "-")
		lang, ok := byISO[base]
		if !ok || seen[lang] {
			continue
		}
		seen[lang] = true
		languages = append(languages, lang)
	}
	return New(languages...)
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if strings.TrimSpace(text) == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the detected language as a lowercase ISO 639-1 code.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
