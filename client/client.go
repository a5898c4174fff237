// Package client maintains a pool of chat connections, spreading joined
// channels and outgoing messages across them and replacing connections
// that die.
package client

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jpillora/backoff"

	"github.com/vonrein/twitch-chat-logger/connection"
	"github.com/vonrein/twitch-chat-logger/internal/mpsc"
	"github.com/vonrein/twitch-chat-logger/irc"
	"github.com/vonrein/twitch-chat-logger/irc/twitch"
)

// ErrClosed is returned by all operations after Close.
var ErrClosed = errors.New("client is closed")

const maxRejoinAttempts = 8

type poolConn struct {
	conn     *connection.Connection
	channels map[string]struct{}
	sends    []time.Time
}

// acceptsSend prunes send timestamps outside the rate window and reports
// whether this connection may take another message right now.
func (pc *poolConn) acceptsSend(now time.Time, max int, window time.Duration) bool {
	keep := pc.sends[:0]
	for _, ts := range pc.sends {
		if now.Sub(ts) < window {
			keep = append(keep, ts)
		}
	}
	pc.sends = keep
	return len(pc.sends) < max
}

// Client is a pool of chat connections. All methods are safe for
// concurrent use.
type Client struct {
	cfg Config
	log *slog.Logger

	mu     sync.Mutex
	conns  []*poolConn
	wanted map[string]struct{}
	closed bool
	seq    int

	incoming *mpsc.Queue[twitch.ServerMessage]
	messages chan twitch.ServerMessage
	pumpDone chan struct{}
	done     chan struct{}
}

// New creates a client. No connection is made until the first Join or
// send.
func New(cfg Config) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		cfg:      cfg,
		log:      cfg.Logger.With("client", cfg.TracingIdentifier),
		wanted:   map[string]struct{}{},
		incoming: mpsc.New[twitch.ServerMessage](),
		messages: make(chan twitch.ServerMessage, 64),
		pumpDone: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.pump()
	return c
}

// Messages returns the stream of all messages received on any pooled
// connection. The channel is closed by Close.
func (c *Client) Messages() <-chan twitch.ServerMessage {
	return c.messages
}

func (c *Client) pump() {
	defer close(c.pumpDone)
	defer close(c.messages)
	for {
		msg, ok := c.incoming.Pop()
		if !ok {
			return
		}
		select {
		case c.messages <- msg:
		case <-c.done:
		}
	}
}

// Join makes channel part of the wanted set and joins it on a connection
// with spare capacity, opening a new one when all are full. Channels stay
// wanted across connection losses until Part.
func (c *Client) Join(channel string) error {
	channel = normalizeChannel(channel)
	if !ValidLogin(channel) {
		return fmt.Errorf("invalid channel login %q", channel)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.wanted[channel] = struct{}{}

	for _, pc := range c.conns {
		if _, joined := pc.channels[channel]; joined {
			c.mu.Unlock()
			return nil
		}
	}

	pc := c.pickJoinConnLocked()
	pc.channels[channel] = struct{}{}
	conn := pc.conn
	c.mu.Unlock()

	return conn.Send(irc.NewMessage("JOIN", "#"+channel))
}

// Part removes channel from the wanted set and leaves it.
func (c *Client) Part(channel string) error {
	channel = normalizeChannel(channel)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	delete(c.wanted, channel)

	var conn *connection.Connection
	for _, pc := range c.conns {
		if _, joined := pc.channels[channel]; joined {
			delete(pc.channels, channel)
			conn = pc.conn
			break
		}
	}
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Send(irc.NewMessage("PART", "#"+channel))
}

// Say sends a chat message to channel.
func (c *Client) Say(channel, text string) error {
	channel = normalizeChannel(channel)
	if !ValidLogin(channel) {
		return fmt.Errorf("invalid channel login %q", channel)
	}
	return c.Privmsg(channel, text)
}

// Privmsg sends a PRIVMSG to channel without validating the channel
// login. Prefer Say.
func (c *Client) Privmsg(channel, text string) error {
	return c.SendMessage(irc.NewMessage("PRIVMSG", "#"+normalizeChannel(channel), text))
}

// SendMessage routes an arbitrary message to a connection under its send
// rate.
func (c *Client) SendMessage(msg *irc.Message) error {
	return c.sendPooled(msg)
}

// Me sends an action message (the /me command) to channel.
func (c *Client) Me(channel, text string) error {
	channel = normalizeChannel(channel)
	if !ValidLogin(channel) {
		return fmt.Errorf("invalid channel login %q", channel)
	}
	return c.Privmsg(channel, "\x01ACTION "+text+"\x01")
}

// Joined returns the wanted channels, sorted.
func (c *Client) Joined() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	channels := make([]string, 0, len(c.wanted))
	for ch := range c.wanted {
		channels = append(channels, ch)
	}
	sort.Strings(channels)
	return channels
}

// ConnectionCount returns the current pool size.
func (c *Client) ConnectionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.conns)
}

// Close shuts down all connections, waits for their workers, and closes
// the Messages channel. Close is idempotent.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	conns := c.conns
	c.conns = nil
	c.mu.Unlock()

	close(c.done)
	for _, pc := range conns {
		pc.conn.Close()
	}
	for _, pc := range conns {
		<-pc.conn.Done()
	}
	c.incoming.Close()
	<-c.pumpDone
}

// sendPooled routes a message to a connection that is under its send
// rate, opening a new connection when all are saturated.
func (c *Client) sendPooled(msg *irc.Message) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	now := time.Now()
	window := time.Duration(c.cfg.MaxWaitingMessages) * c.cfg.TimePerMessage
	var pick *poolConn
	for _, pc := range c.conns {
		if pc.acceptsSend(now, c.cfg.MaxWaitingMessages, window) {
			pick = pc
			break
		}
	}
	if pick == nil {
		pick = c.newConnLocked()
	}
	pick.sends = append(pick.sends, now)
	conn := pick.conn
	c.mu.Unlock()

	return conn.Send(msg)
}

func (c *Client) pickJoinConnLocked() *poolConn {
	for _, pc := range c.conns {
		if len(pc.channels) < c.cfg.MaxChannelsPerConnection {
			return pc
		}
	}
	return c.newConnLocked()
}

func (c *Client) newConnLocked() *poolConn {
	id := fmt.Sprintf("%s/%d", c.cfg.TracingIdentifier, c.seq)
	c.seq++

	conn := connection.New(connection.Options{
		ID:                 id,
		Connector:          c.cfg.Connector,
		Login:              c.cfg.Login,
		ConnectionLimiter:  c.cfg.ConnectionLimiter,
		ConnectTimeout:     c.cfg.ConnectTimeout,
		NewConnectionEvery: c.cfg.NewConnectionEvery,
		Logger:             c.cfg.Logger,
		Events:             c,
		Metrics:            c.cfg.Metrics,
	})
	pc := &poolConn{conn: conn, channels: map[string]struct{}{}}
	c.conns = append(c.conns, pc)
	return pc
}

// HandleOpened implements connection.Events.
func (c *Client) HandleOpened(connID string) {
	c.log.Info("connection opened", "connection_id", connID)
}

// HandleMessage implements connection.Events.
func (c *Client) HandleMessage(_ string, msg twitch.ServerMessage) {
	c.incoming.Push(msg)
}

// HandleClosed implements connection.Events. The dead connection is
// reaped and its still-wanted channels are rejoined on fresh connections.
func (c *Client) HandleClosed(connID string, cause error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	var lost []string
	for i, pc := range c.conns {
		if pc.conn.ID() != connID {
			continue
		}
		for ch := range pc.channels {
			if _, stillWanted := c.wanted[ch]; stillWanted {
				lost = append(lost, ch)
			}
		}
		c.conns = append(c.conns[:i], c.conns[i+1:]...)
		pc.conn.Close()
		break
	}
	c.mu.Unlock()

	c.log.Warn("connection lost", "connection_id", connID, "cause", cause)
	if len(lost) > 0 {
		go c.rejoin(lost)
	}
}

func (c *Client) rejoin(channels []string) {
	b := &backoff.Backoff{
		Factor: 1.25,
		Jitter: true,
		Min:    500 * time.Millisecond,
		Max:    2 * time.Second,
	}

	for attempt := 0; attempt < maxRejoinAttempts; attempt++ {
		t := time.NewTimer(b.Duration())
		select {
		case <-c.done:
			t.Stop()
			return
		case <-t.C:
		}

		var failed []string
		for _, ch := range channels {
			if err := c.Join(ch); err != nil {
				if errors.Is(err, ErrClosed) {
					return
				}
				failed = append(failed, ch)
			}
		}
		if len(failed) == 0 {
			return
		}
		channels = failed
	}
	c.log.Error("giving up rejoining channels", "channels", channels)
}

func normalizeChannel(channel string) string {
	return strings.ToLower(strings.TrimPrefix(channel, "#"))
}
