package twitch

// ReconnectMessage is the server's directive to drop the connection and
// establish a new one. The connection reacts by closing itself; making the
// new connection is the pool's business.
type ReconnectMessage struct {
	source
}
