// Package ws implements the chat transport over WebSocket. Each text
// frame carries one or more newline-delimited lines.
package ws

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/vonrein/twitch-chat-logger/irc/twitch"
	"github.com/vonrein/twitch-chat-logger/transport"
)

// Connector dials the chat server over WebSocket.
type Connector struct {
	// URL is the ws:// or wss:// endpoint. Defaults to the public chat
	// endpoint.
	URL string
}

func NewConnector() *Connector {
	return &Connector{URL: twitch.WSAddr}
}

func (c *Connector) Connect(ctx context.Context) (transport.Conn, error) {
	nc, br, _, err := ws.Dialer{}.Dial(ctx, c.URL)
	if err != nil {
		return nil, err
	}

	conn := &Conn{nc: nc}
	conn.ctrl = wsutil.ControlFrameHandler(nc, ws.StateClientSide)

	var src io.Reader = nc
	if br != nil {
		// the handshake may have read past the response headers
		src = io.MultiReader(br, nc)
	}
	conn.rd = &wsutil.Reader{
		Source:         src,
		State:          ws.StateClientSide,
		CheckUTF8:      true,
		OnIntermediate: conn.handleControl,
	}
	return conn, nil
}

// Conn is a line-delimited view over a WebSocket client connection.
type Conn struct {
	nc net.Conn

	// wmu serializes all frame writes: outgoing text frames, the close
	// frame, and the pongs the read path answers server pings with.
	wmu  sync.Mutex
	ctrl wsutil.FrameHandlerFunc
	rd   *wsutil.Reader

	// lines buffers the remaining lines of a multi-line frame.
	lines []string
}

// handleControl answers server control frames (pings) from the reader
// goroutine; the write lock keeps those frames whole against concurrent
// WriteLine traffic.
func (c *Conn) handleControl(hdr ws.Header, rd io.Reader) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.ctrl(hdr, rd)
}

func (c *Conn) ReadLine() (string, error) {
	for len(c.lines) == 0 {
		hdr, err := c.rd.NextFrame()
		if err != nil {
			return "", mapClosed(err)
		}
		if hdr.OpCode.IsControl() {
			if err := c.handleControl(hdr, c.rd); err != nil {
				return "", mapClosed(err)
			}
			continue
		}

		payload, err := io.ReadAll(c.rd)
		if err != nil {
			return "", mapClosed(err)
		}
		for _, line := range strings.Split(string(payload), "\n") {
			if line = strings.TrimRight(line, "\r"); line != "" {
				c.lines = append(c.lines, line)
			}
		}
	}

	line := c.lines[0]
	c.lines = c.lines[1:]
	return line, nil
}

// mapClosed turns an orderly close frame into io.EOF.
func mapClosed(err error) error {
	var closed wsutil.ClosedError
	if errors.As(err, &closed) && closed.Code == ws.StatusNormalClosure {
		return io.EOF
	}
	return err
}

func (c *Conn) WriteLine(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return wsutil.WriteClientText(c.nc, []byte(line))
}

func (c *Conn) Close() error {
	c.wmu.Lock()
	body := ws.NewCloseFrameBody(ws.StatusNormalClosure, "")
	_ = wsutil.WriteClientMessage(c.nc, ws.OpClose, body)
	c.wmu.Unlock()
	return c.nc.Close()
}
