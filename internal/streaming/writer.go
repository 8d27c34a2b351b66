package streaming

import (
	"context"
	"errors"
	"net/http"
)

// ErrClientGone indicates the client disconnected before the stream
// completed, detected via the request context.
var ErrClientGone = errors.New("client disconnected")

// DefaultChunkSize is the write granularity for streamed payloads.
const DefaultChunkSize = 64 * 1024

// Copy writes data to the response in chunks, checking for client
// disconnect between chunks and flushing each one so playback can begin
// before the transfer completes.
func Copy(ctx context.Context, w http.ResponseWriter, data []byte) error {
	flusher, _ := w.(http.Flusher)

	for len(data) > 0 {
		select {
		case <-ctx.Done():
			return ErrClientGone
		default:
		}

		n := DefaultChunkSize
		if len(data) < n {
			n = len(data)
		}

		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		data = data[n:]
	}

	return nil
}
