package tcp

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestReadWriteLines(t *testing.T) {
	defer goleak.VerifyNone(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		sc, err := ln.Accept()
		if err != nil {
			return
		}
		defer sc.Close()

		br := bufio.NewReader(sc)
		line, err := br.ReadString('\n')
		if err != nil {
			return
		}
		if line != "PING hello\r\n" {
			return
		}
		sc.Write([]byte(":server PONG hello\r\n"))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := (&Connector{Addr: ln.Addr().String()}).Connect(ctx)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteLine("PING hello"))

	line, err := conn.ReadLine()
	require.NoError(t, err)
	require.Equal(t, ":server PONG hello", line)

	// orderly server close surfaces as EOF
	<-serverDone
	_, err = conn.ReadLine()
	require.ErrorIs(t, err, io.EOF)
}

func TestConnectCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Connector{Addr: "127.0.0.1:1"}).Connect(ctx)
	require.Error(t, err)
}
