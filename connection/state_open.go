package connection

import (
	"errors"

	"github.com/vonrein/twitch-chat-logger/internal/mpsc"
	"github.com/vonrein/twitch-chat-logger/irc"
	"github.com/vonrein/twitch-chat-logger/irc/twitch"
	"github.com/vonrein/twitch-chat-logger/transport"
)

// openState is the working phase: the incoming, outgoing and keepalive
// tasks are running and sends go straight to the outgoing queue.
type openState struct {
	c        *Connection
	conn     transport.Conn
	outgoing *mpsc.Queue[*pendingSend]
	killPing chan struct{}

	pongReceived bool
}

func (s *openState) sendMessage(ps *pendingSend) {
	if !s.outgoing.Push(ps) {
		ps.resolve(s.c.reason())
		pendingSendPool.release(ps)
	}
}

// send queues a message originated by the connection itself.
func (s *openState) send(msg *irc.Message) {
	s.outgoing.Push(pendingSendPool.acquire(msg, nil))
}

func (s *openState) onInitFinished(*initFinishedCmd) connState { return s }

func (s *openState) onIncoming(cmd *incomingCmd) connState {
	if cmd.eof {
		return s.closeWith(ErrRemoteClosed)
	}
	if cmd.err != nil {
		var parseErr *irc.ParseError
		if errors.As(cmd.err, &parseErr) {
			// an unparseable line is forwarded raw, the stream stays up
			s.c.events.HandleMessage(s.c.id, twitch.NewGenericFromLine(parseErr.Raw))
			return s
		}
		return s.closeWith(cmd.err)
	}

	msg, err := twitch.Parse(cmd.msg)
	if err != nil {
		// recognized command with missing fields, downgrade and keep going
		msg = twitch.NewGeneric(cmd.msg)
	}
	s.c.metrics.MessageReceived(cmd.msg.Command)
	s.c.events.HandleMessage(s.c.id, msg)

	switch msg.(type) {
	case *twitch.PingMessage:
		s.send(irc.NewMessage("PONG", twitch.TMIServerHost))
	case *twitch.PongMessage:
		s.pongReceived = true
	case *twitch.ReconnectMessage:
		return s.closeWith(ErrReconnectRequested)
	}
	return s
}

func (s *openState) onOutgoingFailed(err error) connState {
	return s.closeWith(err)
}

func (s *openState) sendPing() {
	s.pongReceived = false
	s.send(irc.NewMessage("PING", twitch.TMIServerHost))
}

func (s *openState) checkPong() connState {
	if !s.pongReceived {
		return s.closeWith(ErrPingTimeout)
	}
	return s
}

func (s *openState) onCloseRequested() connState {
	return s.closeWith(ErrClientClosed)
}

func (s *openState) closeWith(cause error) connState {
	s.teardown()
	return s.c.transitionToClosed(cause)
}

// teardown stops the three tasks: closing the socket unblocks the reader,
// closing the outgoing queue lets the writer drain and exit, and the kill
// channel stops the pinger.
func (s *openState) teardown() {
	close(s.killPing)
	s.outgoing.Close()
	_ = s.conn.Close()
}
