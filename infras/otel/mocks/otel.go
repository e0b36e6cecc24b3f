package mocks

import (
	"context"
	"shareit/infras/otel"
	"sync"
)

// Recorder is an otel.Otel that keeps span names and traced errors in memory.
type Recorder struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

// NewOtel returns a tracer whose scopes discard everything.
func NewOtel() otel.Otel {
	return &Recorder{}
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	r.spans = append(r.spans, spanName)
	r.mu.Unlock()

	return ctx, &scopeImpl{recorder: r}
}

func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

func (r *Recorder) record(err error) {
	r.mu.Lock()
	r.errors = append(r.errors, err)
	r.mu.Unlock()
}
