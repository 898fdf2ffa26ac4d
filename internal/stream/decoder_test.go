package stream

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

const sampleStream = `data: {"choices":[{"delta":{"role":"assistant"}}]}

data: {"choices":[{"delta":{"content":"ab"}}]}

event: message
id: 7
data: {"choices":[{"delta":{"content":"cd"}}]}

: keep-alive comment

data: [DONE]

`

// chunkReader returns at most size bytes per Read.
type chunkReader struct {
	data []byte
	size int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.size
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data) {
		n = len(r.data)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

// failingReader serves data and then fails with err instead of io.EOF.
type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func collect(t *testing.T, r io.Reader) ([]EventRecord, error) {
	t.Helper()
	var recs []EventRecord
	for rec, err := range Decode(r) {
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func TestDecode_Events(t *testing.T) {
	recs, err := collect(t, strings.NewReader(sampleStream))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	if len(recs) != 4 {
		t.Fatalf("Decode() got %d records, want 4: %+v", len(recs), recs)
	}
	for i, rec := range recs {
		if rec.Kind != KindEvent {
			t.Errorf("record %d Kind = %q, want %q", i, rec.Kind, KindEvent)
		}
	}
	if recs[1].Data != `{"choices":[{"delta":{"content":"ab"}}]}` {
		t.Errorf("record 1 Data = %q", recs[1].Data)
	}
	if recs[2].ID != "7" {
		t.Errorf("record 2 ID = %q, want %q", recs[2].ID, "7")
	}
	if recs[3].Data != DoneSentinel {
		t.Errorf("record 3 Data = %q, want %q", recs[3].Data, DoneSentinel)
	}
}

func TestDecode_ChunkBoundaryInvariance(t *testing.T) {
	want, err := collect(t, strings.NewReader(sampleStream))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	readers := map[string]io.Reader{
		"one byte":   iotest.OneByteReader(strings.NewReader(sampleStream)),
		"half reads": iotest.HalfReader(strings.NewReader(sampleStream)),
		"3 bytes":    &chunkReader{data: []byte(sampleStream), size: 3},
		"7 bytes":    &chunkReader{data: []byte(sampleStream), size: 7},
		"64 bytes":   &chunkReader{data: []byte(sampleStream), size: 64},
	}

	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			got, err := collect(t, r)
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Decode() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestDecode_CRLFLineEndings(t *testing.T) {
	input := "data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\r\n\r\ndata: [DONE]\r\n\r\n"

	recs, err := collect(t, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if len(recs) != 2 || recs[1].Data != DoneSentinel {
		t.Errorf("Decode() = %+v, want two records ending in the sentinel", recs)
	}
}

func TestDecode_TransportErrorAfterBufferedEvents(t *testing.T) {
	resetErr := errors.New("connection reset by peer")
	input := "data: {\"choices\":[{\"delta\":{\"content\":\"ab\"}}]}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"cd\"}}]}\n\n"

	recs, err := collect(t, &failingReader{data: []byte(input), err: resetErr})

	if !errors.Is(err, resetErr) {
		t.Fatalf("Decode() error = %v, want %v", err, resetErr)
	}
	if len(recs) != 2 {
		t.Errorf("Decode() delivered %d records before the error, want 2", len(recs))
	}
}

func TestDecode_EmptyStream(t *testing.T) {
	recs, err := collect(t, strings.NewReader(""))
	if err != nil {
		t.Errorf("Decode() unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Decode() got %d records, want 0", len(recs))
	}
}

func TestDecode_StopsWhenConsumerStops(t *testing.T) {
	count := 0
	for range Decode(strings.NewReader(sampleStream)) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iteration ran %d times after break, want 1", count)
	}
}
