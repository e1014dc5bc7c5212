// Package dispatcher fans a text out to a translator once per target
// language and folds the answers into a single ordered mapping.
package dispatcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/valpere/multitran/internal"
	"github.com/valpere/multitran/internal/translator"
)

type Config struct {
	// Workers bounds concurrent provider calls. Values <= 1 dispatch
	// sequentially.
	Workers int
}

// DefaultWorkers sizes the pool to the number of usable CPUs.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

type Dispatcher struct {
	translator translator.Translator
	config     Config

	logMu sync.Mutex
	log   io.Writer
}

type Option func(*Dispatcher)

// WithLog sets where per-language failures are reported. Defaults to stderr.
func WithLog(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.log = w
	}
}

func New(t translator.Translator, config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		translator: t,
		config:     config,
		log:        os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch translates text into every code. Each code ends up in the result
// exactly once, holding either the translation or the absence marker; a
// failure for one code never affects the others. Sequential and concurrent
// dispatch return the same mapping.
func (d *Dispatcher) Dispatch(ctx context.Context, text string, codes []string) internal.Translations {
	results := make([]*string, len(codes))

	if d.config.Workers <= 1 || len(codes) <= 1 {
		for i, code := range codes {
			results[i] = d.translateOne(ctx, text, code)
		}
	} else {
		p := pool.New().WithMaxGoroutines(d.config.Workers)
		for i, code := range codes {
			i, code := i, code
			p.Go(func() {
				results[i] = d.translateOne(ctx, text, code)
			})
		}
		p.Wait()
	}

	var out internal.Translations
	for i, code := range codes {
		out.Set(code, results[i])
	}
	return out
}

func (d *Dispatcher) translateOne(ctx context.Context, text, code string) (result *string) {
	defer func() {
		if r := recover(); r != nil {
			d.logFailure(code, fmt.Errorf("panic: %v", r))
			result = nil
		}
	}()

	if err := ctx.Err(); err != nil {
		d.logFailure(code, err)
		return nil
	}

	out, err := d.translator.Translate(ctx, text, code)
	if err != nil {
		d.logFailure(code, err)
		return nil
	}
	return internal.Text(out)
}

func (d *Dispatcher) logFailure(code string, err error) {
	if d.log == nil {
		return
	}
	d.logMu.Lock()
	defer d.logMu.Unlock()
	fmt.Fprintf(d.log, "translation to %s failed: %v\n", code, err)
}
