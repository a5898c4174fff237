// Package tcp implements the chat transport over a plain TCP connection
// with CRLF-delimited lines.
package tcp

import (
	"bufio"
	"context"
	"net"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/vonrein/twitch-chat-logger/irc/twitch"
	"github.com/vonrein/twitch-chat-logger/transport"
)

// Connector dials the chat server over TCP.
type Connector struct {
	// Addr is the host:port to dial. Defaults to the public chat endpoint.
	Addr string
}

func NewConnector() *Connector {
	return &Connector{Addr: twitch.TCPAddr}
}

func (c *Connector) Connect(ctx context.Context) (transport.Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		return nil, err
	}
	return NewConn(nc), nil
}

// Conn is a line-delimited view over a net.Conn.
type Conn struct {
	nc net.Conn
	br *bufio.Reader
}

func NewConn(nc net.Conn) *Conn {
	return &Conn{nc: nc, br: bufio.NewReader(nc)}
}

func (c *Conn) ReadLine() (string, error) {
	line, err := c.br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Conn) WriteLine(line string) error {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	bb.WriteString(line)
	bb.WriteString("\r\n")
	_, err := c.nc.Write(bb.Bytes())
	return err
}

func (c *Conn) Close() error {
	return c.nc.Close()
}
