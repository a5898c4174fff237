package connection

import "github.com/vonrein/twitch-chat-logger/irc/twitch"

// Events receives the lifecycle and message callbacks of a connection.
// All callbacks run on the connection's worker goroutine; implementations
// must not block. Calling the connection's Close from a callback is safe.
type Events interface {
	// HandleOpened fires once when the connection finishes logging in.
	HandleOpened(connID string)
	// HandleMessage fires for every received message, including those the
	// connection reacts to itself (pings, reconnect requests).
	HandleMessage(connID string, msg twitch.ServerMessage)
	// HandleClosed fires once when the connection reaches its terminal
	// state, with the closure reason.
	HandleClosed(connID string, cause error)
}

// NopEvents discards all callbacks.
type NopEvents struct{}

func (NopEvents) HandleOpened(string)                        {}
func (NopEvents) HandleMessage(string, twitch.ServerMessage) {}
func (NopEvents) HandleClosed(string, error)                 {}
