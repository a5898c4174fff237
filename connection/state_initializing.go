package connection

import (
	"github.com/vonrein/twitch-chat-logger/internal/mpsc"
	"github.com/vonrein/twitch-chat-logger/irc"
	"github.com/vonrein/twitch-chat-logger/irc/twitch"
)

// initializingState buffers sends while the connect task runs. The buffer
// is flushed in order right after the login handshake once the connection
// opens.
type initializingState struct {
	c      *Connection
	queued []*pendingSend
}

func (s *initializingState) sendMessage(ps *pendingSend) {
	s.queued = append(s.queued, ps)
}

func (s *initializingState) onInitFinished(cmd *initFinishedCmd) connState {
	if cmd.err != nil {
		closed := s.c.transitionToClosed(cmd.err)
		for _, ps := range s.queued {
			ps.resolve(cmd.err)
			pendingSendPool.release(ps)
		}
		s.queued = nil
		return closed
	}

	c := s.c
	open := &openState{
		c:        c,
		conn:     cmd.conn,
		outgoing: mpsc.New[*pendingSend](),
		killPing: make(chan struct{}),
	}

	c.spawnIncoming(cmd.conn)
	c.spawnOutgoing(cmd.conn, open.outgoing)
	c.spawnKeepalive(open.killPing)

	open.send(irc.NewMessage("CAP", "REQ", twitch.CapTags+" "+twitch.CapCommands))
	if !cmd.creds.Anonymous() {
		open.send(irc.NewMessage("PASS", "oauth:"+cmd.creds.Token))
	}
	open.send(irc.NewMessage("NICK", cmd.creds.Login))
	open.send(irc.NewMessage("CAP", "REQ", twitch.CapMembership))

	for _, ps := range s.queued {
		open.outgoing.Push(ps)
	}
	s.queued = nil

	c.log.Info("connection open", "login", cmd.creds.Login)
	c.metrics.StateChanged(c.id, "open")
	c.events.HandleOpened(c.id)
	return open
}

// No transport tasks run yet, so these commands cannot arrive here.

func (s *initializingState) onIncoming(*incomingCmd) connState { return s }
func (s *initializingState) onOutgoingFailed(error) connState  { return s }
func (s *initializingState) sendPing()                         {}
func (s *initializingState) checkPong() connState              { return s }

func (s *initializingState) onCloseRequested() connState {
	closed := s.c.transitionToClosed(ErrClientClosed)
	for _, ps := range s.queued {
		ps.resolve(ErrClientClosed)
		pendingSendPool.release(ps)
	}
	s.queued = nil
	return closed
}
