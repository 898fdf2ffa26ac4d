package stream

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// DoneSentinel is the data value that ends a completion stream.
const DoneSentinel = "[DONE]"

// Completion is the text assembled from a stream.
type Completion struct {
	Text string
	// Done reports whether the DoneSentinel was received.
	Done bool
	// Err holds the *TransportError that cut the stream short, if any.
	// Text then holds everything received before the failure.
	Err error
}

// Partial reports whether the stream ended on a transport failure.
func (c *Completion) Partial() bool {
	return c.Err != nil
}

// TransportError is a read failure of the response body before the sentinel.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("stream interrupted: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedPayloadError is an event whose data is not a JSON chunk.
type MalformedPayloadError struct {
	Data string
	Err  error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed stream payload %q: %v", e.Data, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// chunk is the subset of a streamed chat-completion chunk the accumulator reads.
type chunk struct {
	Choices []struct {
		Delta struct {
			Role    string `json:"role,omitempty"`
			Content string `json:"content,omitempty"`
		} `json:"delta"`
	} `json:"choices"`
}

// Accumulate applies the deltas in events strictly in order and returns the
// assembled text. Every content fragment is passed to sink before the next
// record is read.
//
// A read error from events does not fail the call: the text received so far
// is returned with Completion.Err set. Only a malformed payload is fatal.
func Accumulate(events iter.Seq2[EventRecord, error], sink Sink) (*Completion, error) {
	if sink == nil {
		sink = Discard
	}

	var text strings.Builder
	for rec, err := range events {
		if err != nil {
			return &Completion{Text: text.String(), Err: &TransportError{Err: err}}, nil
		}
		if rec.Kind != KindEvent {
			continue
		}
		if rec.Data == DoneSentinel {
			sink.OnFragment("\n\n")
			return &Completion{Text: text.String(), Done: true}, nil
		}

		var c chunk
		if err := json.Unmarshal([]byte(rec.Data), &c); err != nil {
			return nil, &MalformedPayloadError{Data: rec.Data, Err: err}
		}
		if len(c.Choices) == 0 {
			continue
		}

		delta := c.Choices[0].Delta
		if delta.Role != "" {
			continue
		}
		if delta.Content == "" {
			continue
		}
		text.WriteString(delta.Content)
		sink.OnFragment(delta.Content)
	}

	return &Completion{Text: text.String()}, nil
}
