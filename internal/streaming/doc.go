// Package streaming implements the byte-range bookkeeping behind audio
// delivery.
//
// ParseRange interprets an HTTP Range header against a known object
// length, clamping the window into [0, length-1]. The audio handler uses
// the window to read exactly that span from the blob store and respond
// with 206 Partial Content; absent or malformed headers fall back to a
// full-object 200 with Accept-Ranges advertised.
//
// Copy streams a buffered payload to the client in flushed chunks,
// abandoning the transfer when the request context reports the client
// gone. Audio is never cached server-side; every request reads from the
// origin.
package streaming
