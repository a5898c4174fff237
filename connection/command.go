package connection

import (
	"github.com/vonrein/twitch-chat-logger/irc"
	"github.com/vonrein/twitch-chat-logger/login"
	"github.com/vonrein/twitch-chat-logger/transport"
)

// A command is one unit of work delivered to the connection worker. All
// state transitions happen on the worker goroutine, one command at a time.
type command interface {
	isCommand()
}

// initFinishedCmd reports the outcome of the connect task.
type initFinishedCmd struct {
	conn  transport.Conn
	creds login.Credentials
	err   error
}

// incomingCmd carries one received message, a receive error, or the
// orderly end of the incoming stream.
type incomingCmd struct {
	msg *irc.Message
	err error
	eof bool
}

// outgoingFailedCmd reports a write error from the outgoing task.
type outgoingFailedCmd struct {
	err error
}

// pingTickCmd asks the current state to send a keepalive ping.
type pingTickCmd struct{}

// pongCheckCmd asks the current state to verify the last ping was answered.
type pongCheckCmd struct{}

// closeCmd is pushed once by Close and ends the worker.
type closeCmd struct{}

func (*pendingSend) isCommand()      {}
func (*initFinishedCmd) isCommand()  {}
func (*incomingCmd) isCommand()      {}
func (outgoingFailedCmd) isCommand() {}
func (pingTickCmd) isCommand()       {}
func (pongCheckCmd) isCommand()      {}
func (closeCmd) isCommand()          {}
