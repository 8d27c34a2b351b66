package streaming

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		length    int64
		wantOK    bool
		wantStart int64
		wantEnd   int64
	}{
		{
			name:   "open ended covers whole object",
			header: "bytes=0-", length: 100,
			wantOK: true, wantStart: 0, wantEnd: 99,
		},
		{
			name:   "explicit zero end covers whole object",
			header: "bytes=0-0", length: 100,
			wantOK: true, wantStart: 0, wantEnd: 99,
		},
		{
			name:   "interior window",
			header: "bytes=10-19", length: 100,
			wantOK: true, wantStart: 10, wantEnd: 19,
		},
		{
			name:   "end past object clamps to last byte",
			header: "bytes=50-5000", length: 100,
			wantOK: true, wantStart: 50, wantEnd: 99,
		},
		{
			name:   "end equal to length clamps",
			header: "bytes=0-100", length: 100,
			wantOK: true, wantStart: 0, wantEnd: 99,
		},
		{
			name:   "start past object clamps to last byte",
			header: "bytes=500-", length: 100,
			wantOK: true, wantStart: 99, wantEnd: 99,
		},
		{
			name:   "resume from midpoint",
			header: "bytes=50-", length: 100,
			wantOK: true, wantStart: 50, wantEnd: 99,
		},
		{"absent header", "", 100, false, 0, 0},
		{"wrong unit", "lines=0-10", 100, false, 0, 0},
		{"missing dash", "bytes=10", 100, false, 0, 0},
		{"garbage start", "bytes=abc-10", 100, false, 0, 0},
		{"garbage end", "bytes=0-xyz", 100, false, 0, 0},
		{"negative start", "bytes=-5-10", 100, false, 0, 0},
		{"empty object", "bytes=0-", 0, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, ok := ParseRange(tt.header, tt.length)
			if ok != tt.wantOK {
				t.Fatalf("ParseRange(%q, %d) ok = %v, want %v", tt.header, tt.length, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if window.Start != tt.wantStart || window.End != tt.wantEnd {
				t.Errorf("window = [%d, %d], want [%d, %d]", window.Start, window.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestWindowLength(t *testing.T) {
	window := Window{Start: 10, End: 19}
	if window.Length() != 10 {
		t.Errorf("Length() = %d, want 10", window.Length())
	}

	full := Window{Start: 0, End: 99}
	if full.Length() != 100 {
		t.Errorf("Length() = %d, want 100", full.Length())
	}
}

func TestWindowContentRange(t *testing.T) {
	window := Window{Start: 0, End: 99}
	if got := window.ContentRange(100); got != "bytes 0-99/100" {
		t.Errorf("ContentRange = %q, want %q", got, "bytes 0-99/100")
	}
}

func TestCopy(t *testing.T) {
	payload := make([]byte, DefaultChunkSize*2+100)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	recorder := httptest.NewRecorder()
	if err := Copy(context.Background(), recorder, payload); err != nil {
		t.Fatalf("Copy error: %v", err)
	}

	if got := recorder.Body.Bytes(); len(got) != len(payload) {
		t.Errorf("wrote %d bytes, want %d", len(got), len(payload))
	}
	if !recorder.Flushed {
		t.Error("response was never flushed")
	}
}

func TestCopy_ClientGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recorder := httptest.NewRecorder()
	err := Copy(ctx, recorder, make([]byte, 10))
	if err != ErrClientGone {
		t.Errorf("Copy error = %v, want ErrClientGone", err)
	}
}
