package twitch

// Endpoints and protocol constants of the Twitch chat service.
const (
	// TMIServerHost is the hostname the server identifies itself with; it is
	// also the argument sent with keepalive PING/PONG messages.
	TMIServerHost = "tmi.twitch.tv"

	// TCPAddr is the plain TCP chat endpoint.
	TCPAddr = "irc.chat.twitch.tv:6667"
	// WSAddr is the plain WebSocket chat endpoint.
	WSAddr = "ws://irc-ws.chat.twitch.tv:80"

	// Capabilities requested during login.
	CapTags       = "twitch.tv/tags"
	CapCommands   = "twitch.tv/commands"
	CapMembership = "twitch.tv/membership"
)
