package mocks

import "shareit/infras/otel"

var _ otel.Scope = (*scopeImpl)(nil)

type scopeImpl struct {
	recorder *Recorder
}

// AddEvent implements otel.Scope.
func (s *scopeImpl) AddEvent(_ string) {}

// End implements otel.Scope.
func (s *scopeImpl) End() {}

// SetAttribute implements otel.Scope.
func (s *scopeImpl) SetAttribute(_ string, _ any) {}

// SetAttributes implements otel.Scope.
func (s *scopeImpl) SetAttributes(_ map[string]any) {}

// TraceError implements otel.Scope.
func (s *scopeImpl) TraceError(err error) {
	if s.recorder != nil && err != nil {
		s.recorder.record(err)
	}
}

// TraceIfError implements otel.Scope.
func (s *scopeImpl) TraceIfError(err error) {
	s.TraceError(err)
}
