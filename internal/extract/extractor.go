package extract

import (
	"context"
	"time"
)

// Extractor is the pluggable entity-extraction contract. Implementations must
// be idempotent and side-effect free. recent carries the last few turns of
// conversation for context; implementations may ignore it.
type Extractor interface {
	Extract(ctx context.Context, utterance string, recent []string) (Entities, error)
}

// DefaultTimeout bounds a single extraction call when no explicit budget is
// configured. Pattern extraction is instantaneous; the budget exists for
// model-backed extractors whose remote backend may stall.
const DefaultTimeout = 10 * time.Second

type timeoutExtractor struct {
	inner   Extractor
	timeout time.Duration
}

// WithTimeout wraps an extractor with a bounded deadline. A deadline hit or
// any inner error degrades to an empty entity bag; the session is never ended
// by a slow or failing extraction backend.
func WithTimeout(inner Extractor, timeout time.Duration) Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &timeoutExtractor{inner: inner, timeout: timeout}
}

func (t *timeoutExtractor) Extract(ctx context.Context, utterance string, recent []string) (Entities, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type result struct {
		entities Entities
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		entities, err := t.inner.Extract(ctx, utterance, recent)
		ch <- result{entities: entities, err: err}
	}()

	select {
	case <-ctx.Done():
		return Entities{}, nil
	case res := <-ch:
		if res.err != nil {
			return Entities{}, nil
		}
		return res.entities, nil
	}
}
