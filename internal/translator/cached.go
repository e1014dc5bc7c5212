package translator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Memory is a persistent store of earlier translations.
type Memory interface {
	GetCachedTranslation(ctx context.Context, sourceText, sourceLang, targetLang string) (string, bool, error)
	SaveToMemory(ctx context.Context, sourceText, sourceLang, targetLang, finalText, serviceUsed string) error
}

// Cached answers from memory when it can and records fresh translations.
// Memory errors never fail a translation; failed saves are reported on
// stderr.
type Cached struct {
	next       Translator
	memory     Memory
	service    string
	sourceLang string
	log        io.Writer
}

func NewCached(service, sourceLang string, next Translator, memory Memory) *Cached {
	if isAuto(sourceLang) {
		sourceLang = "auto"
	}
	return &Cached{
		next:       next,
		memory:     memory,
		service:    service,
		sourceLang: sourceLang,
		log:        os.Stderr,
	}
}

func (c *Cached) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if cached, found, err := c.memory.GetCachedTranslation(ctx, text, c.sourceLang, targetLang); err == nil && found {
		return cached, nil
	}

	out, err := c.next.Translate(ctx, text, targetLang)
	if err != nil {
		return "", err
	}

	if err := c.memory.SaveToMemory(ctx, text, c.sourceLang, targetLang, out, c.service); err != nil {
		fmt.Fprintf(c.log, "Warning: failed to save %s translation to memory: %v\n", targetLang, err)
	}
	return out, nil
}
