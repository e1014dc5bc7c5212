package translator

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32
	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration
}

// Breaker stops calling a failing translator for a while. Calls made while the
// circuit is open fail immediately with gobreaker.ErrOpenState.
type Breaker struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

func NewBreaker(name string, next Translator, cfg BreakerConfig) *Breaker {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	maxFailures := cfg.MaxFailures

	return &Breaker{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
		}),
	}
}

func (b *Breaker) Translate(ctx context.Context, text, targetLang string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, targetLang)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (b *Breaker) state() gobreaker.State {
	return b.cb.State()
}
