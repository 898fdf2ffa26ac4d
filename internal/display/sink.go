package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// StreamSink echoes completion fragments as they arrive. The spinner is
// stopped before the first fragment is printed.
//
// In render mode fragments are collected instead and printed as markdown by
// Finish.
type StreamSink struct {
	w       io.Writer
	spinner *Spinner
	render  bool
	started bool
	buf     strings.Builder
}

// NewStreamSink creates a sink writing to w. spinner may be nil.
func NewStreamSink(w io.Writer, spinner *Spinner, render bool) *StreamSink {
	return &StreamSink{w: w, spinner: spinner, render: render}
}

// OnFragment implements stream.Sink.
func (s *StreamSink) OnFragment(text string) {
	if !s.started {
		s.started = true
		if s.spinner != nil {
			if s.render {
				s.spinner.UpdateMessage("Receiving...")
			} else {
				s.spinner.Stop()
			}
		}
	}

	if s.render {
		s.buf.WriteString(text)
		return
	}
	fmt.Fprint(s.w, color.MagentaString("%s", text))
}

// Finish stops the spinner and, in render mode, prints the collected text.
func (s *StreamSink) Finish() {
	if s.spinner != nil {
		s.spinner.Stop()
	}
	if !s.render || s.buf.Len() == 0 {
		return
	}
	out, err := RenderMarkdown(s.buf.String())
	if err != nil {
		out = s.buf.String()
	}
	fmt.Fprint(s.w, out)
}
