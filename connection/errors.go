package connection

import "errors"

// Closure causes. Whatever first moves a connection to its terminal state
// is stored as the closure reason and returned from all later sends.
var (
	ErrCredentials        = errors.New("fetching login credentials failed")
	ErrConnect            = errors.New("connecting to chat server failed")
	ErrConnectTimeout     = errors.New("connect attempt timed out")
	ErrOutgoing           = errors.New("outgoing transport error")
	ErrIncoming           = errors.New("incoming transport error")
	ErrRemoteClosed       = errors.New("server closed the connection")
	ErrReconnectRequested = errors.New("server requested a reconnect")
	ErrPingTimeout        = errors.New("no response to keepalive ping")
	ErrClientClosed       = errors.New("connection closed by client")
)
