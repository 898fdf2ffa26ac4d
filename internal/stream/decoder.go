// Package stream turns a chat-completion server-sent-event stream into the
// finished completion text.
//
// Decode splits raw bytes into event records; Accumulate applies the deltas
// those records carry, in order, while echoing each fragment to a Sink.
package stream

import (
	"io"
	"iter"

	"github.com/tmaxmax/go-sse"
)

// maxEventSize bounds a single event; completion deltas are far smaller.
const maxEventSize = 1 << 20

// Kind classifies a decoded record.
type Kind string

// KindEvent marks a dispatched SSE event. Other kinds are ignored by Accumulate.
const KindEvent Kind = "event"

// EventRecord is one decoded server-sent event.
type EventRecord struct {
	Kind Kind
	Type string // SSE "event" field, empty for unnamed events
	ID   string
	Data string
}

// Decode yields the events in r in arrival order. It buffers partial lines
// across reads, so the result does not depend on how r chunks the bytes.
// A read error is yielded after every event completed before it, and ends
// the sequence. io.EOF ends the sequence without an error.
func Decode(r io.Reader) iter.Seq2[EventRecord, error] {
	return func(yield func(EventRecord, error) bool) {
		cfg := &sse.ReadConfig{MaxEventSize: maxEventSize}
		for ev, err := range sse.Read(r, cfg) {
			if err != nil {
				yield(EventRecord{}, err)
				return
			}
			rec := EventRecord{
				Kind: KindEvent,
				Type: ev.Type,
				ID:   ev.LastEventID,
				Data: ev.Data,
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
