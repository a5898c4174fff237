// Package transport abstracts the line-oriented byte stream a chat
// connection runs over. Implementations exist for plain TCP and for
// WebSocket framing.
package transport

import "context"

// Conn is a line-oriented connection. ReadLine and WriteLine may be
// called concurrently with each other but each from a single goroutine
// only. An orderly end of stream is reported as io.EOF from ReadLine.
type Conn interface {
	// ReadLine returns the next line without its trailing newline.
	ReadLine() (string, error)
	// WriteLine sends a single line. The line must not contain newlines.
	WriteLine(line string) error
	Close() error
}

// A Connector establishes new connections to a chat server. The context
// bounds the dial only, not the lifetime of the returned Conn.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}
