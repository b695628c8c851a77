package events

import "context"

// Fanout forwards each event to every underlying emitter. Nil emitters are
// skipped so callers can pass optional sinks unconditionally.
type Fanout []Emitter

// NewFanout returns a combined emitter, or nil when no non-nil sinks remain,
// so EmitAsync short-circuits.
func NewFanout(emitters ...Emitter) Emitter {
	out := Fanout{}
	for _, e := range emitters {
		if e != nil {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Emit sends the event to every sink, returning the first error after trying all.
func (f Fanout) Emit(ctx context.Context, event *Event) error {
	var firstErr error
	for _, e := range f {
		if err := e.Emit(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every sink, returning the first error after trying all.
func (f Fanout) Close() error {
	var firstErr error
	for _, e := range f {
		if err := e.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
