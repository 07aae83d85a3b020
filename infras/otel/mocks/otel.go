package mocks

import (
	"context"
	"icpac/infras/otel"
	"slices"
	"sync"
)

// noopOtel satisfies otel.Otel for tests without a tracer provider.
type noopOtel struct{}

func (o *noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *noopOtel) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &noopOtel{}
}

type noopScope struct{}

func (s *noopScope) AddEvent(_ string) {}
func (s *noopScope) End() {}
func (s *noopScope) SetAttribute(_ string, _ any) {}
func (s *noopScope) SetAttributes(_ map[string]any) {}
func (s *noopScope) TraceError(_ error) {}
func (s *noopScope) TraceIfError(_ error) {}

func NewScope() otel.Scope {
	return &noopScope{}
}

// Recorder is an otel.Otel that keeps the errors traced on each span, keyed by span name.
type Recorder struct {
	mu     sync.Mutex
	errors map[string][]error
}

func NewRecorder() *Recorder {
	return &Recorder{errors: map[string][]error{}}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	return ctx, &recordingScope{recorder: r, span: spanName}
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Errors returns the errors traced on spanName.
func (r *Recorder) Errors(spanName string) []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.errors[spanName])
}

func (r *Recorder) record(spanName string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors[spanName] = append(r.errors[spanName], err)
}

type recordingScope struct {
	noopScope
	recorder *Recorder
	span     string
}

func (s *recordingScope) TraceError(err error) {
	s.recorder.record(s.span, err)
}

func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.recorder.record(s.span, err)
	}
}
