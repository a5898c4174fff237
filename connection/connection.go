// Package connection implements a single chat server connection.
//
// A connection moves through three phases. While initializing, the connect
// task fetches credentials, waits for a connection permit and dials the
// server; sends made in this phase are buffered. Once open, the login
// handshake and the buffered sends are flushed in order, and three tasks
// run: a reader forwarding incoming messages, a writer draining the
// outgoing queue, and a keepalive pinger. Any failure, a server-requested
// reconnect, a missed pong or a client Close moves the connection to its
// terminal closed phase, where the closure reason answers all later sends.
//
// Connections are single-use. After the closed event, create a new
// connection to reconnect.
package connection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/vonrein/twitch-chat-logger/internal/mpsc"
	"github.com/vonrein/twitch-chat-logger/irc"
	"github.com/vonrein/twitch-chat-logger/login"
	"github.com/vonrein/twitch-chat-logger/transport"
	"github.com/vonrein/twitch-chat-logger/transport/tcp"
)

const (
	defaultConnectTimeout     = 20 * time.Second
	defaultNewConnectionEvery = 2 * time.Second
	defaultPingInterval       = 30 * time.Second
	defaultPongTimeout        = 5 * time.Second
)

// Options configures a single connection. The zero value connects
// anonymously over TCP to the public chat endpoint.
type Options struct {
	// ID names the connection in logs and event callbacks. A random ID
	// is generated if empty.
	ID string

	Connector transport.Connector
	Login     login.Provider

	// ConnectionLimiter bounds how many connections may be mid-dial at
	// once; the permit is held for NewConnectionEvery after a successful
	// dial to space out connection attempts. Pass the same limiter to
	// every connection of a pool.
	ConnectionLimiter  *semaphore.Weighted
	ConnectTimeout     time.Duration
	NewConnectionEvery time.Duration

	// PingInterval is how often a keepalive ping is sent; PongTimeout is
	// how long after each ping the answer must have arrived.
	PingInterval time.Duration
	PongTimeout  time.Duration

	Logger  *slog.Logger
	Events  Events
	Metrics Metrics
}

func (o Options) withDefaults() Options {
	if o.ID == "" {
		o.ID = uuid.NewString()[:8]
	}
	if o.Connector == nil {
		o.Connector = tcp.NewConnector()
	}
	if o.Login == nil {
		o.Login = login.Anonymous()
	}
	if o.ConnectionLimiter == nil {
		o.ConnectionLimiter = semaphore.NewWeighted(1)
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.NewConnectionEvery <= 0 {
		o.NewConnectionEvery = defaultNewConnectionEvery
	}
	if o.PingInterval <= 0 {
		o.PingInterval = defaultPingInterval
	}
	if o.PongTimeout <= 0 || o.PongTimeout >= o.PingInterval {
		o.PongTimeout = defaultPongTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Events == nil {
		o.Events = NopEvents{}
	}
	if o.Metrics == nil {
		o.Metrics = NopMetrics{}
	}
	return o
}

// Connection is one chat server connection. All methods are safe for
// concurrent use.
type Connection struct {
	id   string
	opts Options

	log     *slog.Logger
	events  Events
	metrics Metrics

	cmds *mpsc.Queue[command]
	done chan struct{}

	closeOnce   sync.Once
	closeReason atomic.Value // error

	// worker-only bookkeeping for the Close-during-connect race
	initDone bool
	closing  bool
}

// New creates the connection and immediately starts connecting in the
// background. Call Close to release the worker, also after the closed
// event fired.
func New(opts Options) *Connection {
	opts = opts.withDefaults()
	c := &Connection{
		id:      opts.ID,
		opts:    opts,
		log:     opts.Logger.With("connection_id", opts.ID),
		events:  opts.Events,
		metrics: opts.Metrics,
		cmds:    mpsc.New[command](),
		done:    make(chan struct{}),
	}
	go c.run()
	c.spawnInit()
	return c
}

// ID returns the connection's identifier.
func (c *Connection) ID() string { return c.id }

// Done is closed when the worker has exited after Close.
func (c *Connection) Done() <-chan struct{} { return c.done }

// Send queues a message without waiting for the outcome. It only fails
// when the connection is already closed and its worker released.
func (c *Connection) Send(msg *irc.Message) error {
	return c.SendNotify(msg, nil)
}

// SendNotify queues a message; the outcome is later delivered on notify,
// which must have capacity for it. A nil error means the message was
// written out; otherwise it carries the write error or the closure
// reason. If SendNotify itself returns an error nothing was queued and
// notify stays untouched.
func (c *Connection) SendNotify(msg *irc.Message, notify chan<- error) error {
	ps := pendingSendPool.acquire(msg, notify)
	if !c.cmds.Push(ps) {
		pendingSendPool.release(ps)
		return c.reason()
	}
	return nil
}

// SendAwait queues a message and blocks until it was written out or
// failed.
func (c *Connection) SendAwait(ctx context.Context, msg *irc.Message) error {
	notify := make(chan error, 1)
	if err := c.SendNotify(msg, notify); err != nil {
		return err
	}
	select {
	case err := <-notify:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close moves the connection to its terminal state (if a failure did not
// already) and shuts the worker down. Close is idempotent and does not
// wait; use Done for that.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.cmds.Push(closeCmd{})
	})
}

func (c *Connection) reason() error {
	if err, ok := c.closeReason.Load().(error); ok {
		return err
	}
	return ErrClientClosed
}

// run is the worker: it owns the state and processes one command at a
// time. It exits once Close was requested and the connect task reported
// back, so that a socket from a lost race is never leaked.
func (c *Connection) run() {
	defer close(c.done)

	var state connState = &initializingState{c: c}
	for {
		cmd, ok := c.cmds.Pop()
		if !ok {
			return
		}
		switch v := cmd.(type) {
		case *pendingSend:
			state.sendMessage(v)
		case *initFinishedCmd:
			c.initDone = true
			state = state.onInitFinished(v)
			if c.closing {
				c.cmds.Close()
			}
		case *incomingCmd:
			state = state.onIncoming(v)
		case outgoingFailedCmd:
			state = state.onOutgoingFailed(v.err)
		case pingTickCmd:
			state.sendPing()
		case pongCheckCmd:
			state = state.checkPong()
		case closeCmd:
			state = state.onCloseRequested()
			if c.initDone {
				c.cmds.Close()
			} else {
				c.closing = true
			}
		}
	}
}

func (c *Connection) transitionToClosed(cause error) *closedState {
	c.closeReason.Store(cause)
	c.log.Info("connection closed", "cause", cause)
	c.metrics.StateChanged(c.id, "closed")
	c.events.HandleClosed(c.id, cause)
	return &closedState{c: c, reason: cause}
}

// spawnInit runs the connect task. Its result is delivered as a command
// even when the worker is already closing; the closed state then cleans
// up the socket.
func (c *Connection) spawnInit() {
	go func() {
		conn, creds, err := c.connect()
		c.cmds.Push(&initFinishedCmd{conn: conn, creds: creds, err: err})
	}()
}

func (c *Connection) connect() (transport.Conn, login.Credentials, error) {
	ctx := context.Background()

	creds, err := c.opts.Login.Get(ctx)
	if err != nil {
		return nil, creds, fmt.Errorf("%w: %w", ErrCredentials, err)
	}

	if err := c.opts.ConnectionLimiter.Acquire(ctx, 1); err != nil {
		return nil, creds, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	type dialResult struct {
		conn transport.Conn
		err  error
	}
	dialCtx, cancel := context.WithCancel(ctx)
	res := make(chan dialResult, 1)
	go func() {
		conn, err := c.opts.Connector.Connect(dialCtx)
		res <- dialResult{conn: conn, err: err}
	}()

	timeout := timerPool.acquire(c.opts.ConnectTimeout)
	select {
	case r := <-res:
		timerPool.release(timeout)
		cancel()
		if r.err != nil {
			c.opts.ConnectionLimiter.Release(1)
			return nil, creds, fmt.Errorf("%w: %w", ErrConnect, r.err)
		}
		// keep holding the permit for a while to space out the
		// connection attempts of a pool
		go func() {
			t := timerPool.acquire(c.opts.NewConnectionEvery)
			<-t.C
			timerPool.release(t)
			c.opts.ConnectionLimiter.Release(1)
		}()
		return r.conn, creds, nil

	case <-timeout.C:
		timerPool.release(timeout)
		cancel()
		// reap whatever the canceled dial still produces
		go func() {
			if r := <-res; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		c.opts.ConnectionLimiter.Release(1)
		return nil, creds, fmt.Errorf("%w after %v", ErrConnectTimeout, c.opts.ConnectTimeout)
	}
}

// spawnIncoming reads lines until the socket dies. Closing the socket in
// teardown unblocks the read.
func (c *Connection) spawnIncoming(conn transport.Conn) {
	go func() {
		for {
			line, err := conn.ReadLine()
			if err != nil {
				if errors.Is(err, io.EOF) {
					c.cmds.Push(&incomingCmd{eof: true})
				} else {
					c.cmds.Push(&incomingCmd{err: fmt.Errorf("%w: %w", ErrIncoming, err)})
				}
				return
			}

			c.log.Debug("recv", "line", line)
			msg, err := irc.Parse(line)
			if err != nil {
				// forwarded raw; the worker decides what to do with it
				if !c.cmds.Push(&incomingCmd{err: err}) {
					return
				}
				continue
			}
			if !c.cmds.Push(&incomingCmd{msg: msg}) {
				return
			}
		}
	}()
}

// spawnOutgoing drains the outgoing queue into the socket. After the
// first write error no further writes are attempted; the remaining and
// all later queued sends resolve with that error.
func (c *Connection) spawnOutgoing(conn transport.Conn, outgoing *mpsc.Queue[*pendingSend]) {
	go func() {
		var failed error
		for {
			ps, ok := outgoing.Pop()
			if !ok {
				return
			}
			if failed == nil {
				raw := ps.msg.RawIRC()
				c.log.Debug("send", "line", raw)
				if err := conn.WriteLine(raw); err != nil {
					failed = fmt.Errorf("%w: %w", ErrOutgoing, err)
					c.cmds.Push(outgoingFailedCmd{err: failed})
				} else {
					c.metrics.MessageSent(ps.msg.Command)
				}
			}
			ps.resolve(failed)
			pendingSendPool.release(ps)
		}
	}()
}

// spawnKeepalive alternates between the ping interval and the pong
// deadline. The worker does the actual sending and checking so that the
// pong flag stays single-goroutine.
func (c *Connection) spawnKeepalive(kill <-chan struct{}) {
	go func() {
		t := timerPool.acquire(c.opts.PingInterval)
		defer timerPool.release(t)
		for {
			select {
			case <-kill:
				return
			case <-t.C:
			}
			if !c.cmds.Push(pingTickCmd{}) {
				return
			}

			t.Reset(c.opts.PongTimeout)
			select {
			case <-kill:
				return
			case <-t.C:
			}
			if !c.cmds.Push(pongCheckCmd{}) {
				return
			}

			t.Reset(c.opts.PingInterval - c.opts.PongTimeout)
		}
	}()
}
