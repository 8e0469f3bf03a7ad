package service

// SinkError marks a failed side effect with the sink it came from, so
// the handler can report which stage of a request went wrong.
type SinkError struct {
	Sink string // "store", "mail" or "upload"
	Err  error
}

func (e *SinkError) Error() string { return e.Sink + ": " + e.Err.Error() }

func (e *SinkError) Unwrap() error { return e.Err }
