package client

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/vonrein/twitch-chat-logger/connection"
	"github.com/vonrein/twitch-chat-logger/login"
	"github.com/vonrein/twitch-chat-logger/transport"
	"github.com/vonrein/twitch-chat-logger/transport/tcp"
)

const (
	defaultMaxChannelsPerConnection = 90
	defaultMaxWaitingMessages       = 5
	defaultTimePerMessage           = 150 * time.Millisecond
	defaultNewConnectionEvery       = 2 * time.Second
	defaultConnectTimeout           = 20 * time.Second
)

// Config configures a Client. The zero value connects anonymously over
// TCP with the default limits.
type Config struct {
	Login     login.Provider
	Connector transport.Connector

	// MaxChannelsPerConnection caps how many channels one connection
	// joins before another connection is opened.
	MaxChannelsPerConnection int

	// MaxWaitingMessages and TimePerMessage bound the per-connection send
	// throughput: a connection takes new messages only while fewer than
	// MaxWaitingMessages were handed to it within the last
	// MaxWaitingMessages*TimePerMessage.
	MaxWaitingMessages int
	TimePerMessage     time.Duration

	// ConnectionLimiter bounds concurrent connection attempts across the
	// pool; NewConnectionEvery spaces successful attempts apart.
	ConnectionLimiter  *semaphore.Weighted
	NewConnectionEvery time.Duration
	ConnectTimeout     time.Duration

	// TracingIdentifier prefixes the IDs of all pooled connections.
	TracingIdentifier string

	Logger  *slog.Logger
	Metrics connection.Metrics
}

// NewConfig returns a Config with all defaults, connecting with the
// given credentials.
func NewConfig(provider login.Provider) Config {
	return Config{Login: provider}.withDefaults()
}

// DefaultConfig returns a Config for anonymous read-only access.
func DefaultConfig() Config {
	return NewConfig(login.Anonymous())
}

func (c Config) withDefaults() Config {
	if c.Login == nil {
		c.Login = login.Anonymous()
	}
	if c.Connector == nil {
		c.Connector = tcp.NewConnector()
	}
	if c.MaxChannelsPerConnection <= 0 {
		c.MaxChannelsPerConnection = defaultMaxChannelsPerConnection
	}
	if c.MaxWaitingMessages <= 0 {
		c.MaxWaitingMessages = defaultMaxWaitingMessages
	}
	if c.TimePerMessage <= 0 {
		c.TimePerMessage = defaultTimePerMessage
	}
	if c.ConnectionLimiter == nil {
		c.ConnectionLimiter = semaphore.NewWeighted(1)
	}
	if c.NewConnectionEvery <= 0 {
		c.NewConnectionEvery = defaultNewConnectionEvery
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.TracingIdentifier == "" {
		c.TracingIdentifier = uuid.NewString()[:8]
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Metrics == nil {
		c.Metrics = connection.NopMetrics{}
	}
	return c
}
