package stream

import "io"

// Sink receives completion fragments as soon as they are decoded.
type Sink interface {
	OnFragment(text string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(text string)

// OnFragment calls f(text).
func (f SinkFunc) OnFragment(text string) { f(text) }

// WriterSink writes every fragment to an io.Writer, unbuffered.
type WriterSink struct {
	W io.Writer
}

// OnFragment implements Sink. Write errors are dropped: the echo is cosmetic.
func (s WriterSink) OnFragment(text string) {
	_, _ = io.WriteString(s.W, text)
}

// Discard is a Sink that drops every fragment.
var Discard Sink = SinkFunc(func(string) {})
