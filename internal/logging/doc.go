// Package logging provides leveled logging for the soundstash service.
//
// The log level is read once from the environment: LOG_LEVEL selects the
// minimum severity (debug, info, warn, error) and DEBUG=true forces debug
// output regardless of LOG_LEVEL. Messages are written through the standard
// library logger with a severity prefix, e.g.:
//
//	logging.Info("cache warmed: %d entries", n)
//	// 2006/01/02 15:04:05 [INFO] cache warmed: 42 entries
package logging
