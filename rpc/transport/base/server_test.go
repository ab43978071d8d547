package base

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopbackConnector listens on a random loopback port
type loopbackConnector struct{}

func (c *loopbackConnector) GetName() string { return "loopback" }

func (c *loopbackConnector) Listen(common.ServerConfig) (net.Listener, error) {
	return net.Listen("tcp", "127.0.0.1:0")
}

func (c *loopbackConnector) UpgradeConnection(net.Conn, common.ServerConfig) error { return nil }

// echoHandler answers every line with "echo: <line>", closes on finish and panics on panic
func echoHandler(_ context.Context, line string) (string, bool) {
	switch line {
	case "finish":
		return "finish", true
	case "panic":
		panic("boom")
	}
	return "echo: " + line, false
}

// startTestTransport starts a server transport and returns it with its address
func startTestTransport(t *testing.T, handler transport.ServerHandleFunc) (transport.IServerTransport, string) {
	t.Helper()

	st := NewBaseServerTransport(&loopbackConnector{})
	st.RegisterHandler(handler)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- st.Listen(context.Background(), common.ServerConfig{})
	}()

	addr := st.Addr()
	require.NotNil(t, addr, "transport failed to bind")

	t.Cleanup(func() {
		require.NoError(t, st.Close())
		select {
		case err := <-listenErr:
			assert.NoError(t, err, "Listen should return nil after Close")
		case <-time.After(5 * time.Second):
			t.Error("Listen did not return after Close")
		}
	})

	return st, addr.String()
}

// dial opens a raw connection to the transport
func dial(t *testing.T, addr string) (net.Conn, *bufio.Reader) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	return conn, bufio.NewReader(conn)
}

// roundTrip sends a raw request and reads one response line
func roundTrip(t *testing.T, conn net.Conn, reader *bufio.Reader, raw string) string {
	t.Helper()
	_, err := io.WriteString(conn, raw)
	require.NoError(t, err)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	return line
}

func TestSession_RequestResponse(t *testing.T) {
	_, addr := startTestTransport(t, echoHandler)
	conn, reader := dial(t, addr)

	assert.Equal(t, "echo: hello\n", roundTrip(t, conn, reader, "hello\n"))
	assert.Equal(t, "echo: world\n", roundTrip(t, conn, reader, "world\n"))
	assert.Equal(t, "echo: \n", roundTrip(t, conn, reader, "\n"))
}

func TestSession_CRLFTerminator(t *testing.T) {
	_, addr := startTestTransport(t, echoHandler)
	conn, reader := dial(t, addr)

	assert.Equal(t, "echo: windows\n", roundTrip(t, conn, reader, "windows\r\n"))
	assert.Equal(t, "echo: trailing \n", roundTrip(t, conn, reader, "trailing \n"))
}

func TestSession_FinishClosesConnection(t *testing.T) {
	_, addr := startTestTransport(t, echoHandler)
	conn, reader := dial(t, addr)

	assert.Equal(t, "finish\n", roundTrip(t, conn, reader, "finish\n"))

	_, err := reader.ReadString('\n')
	assert.ErrorIs(t, err, io.EOF, "server should close the connection after finish")
}

func TestSession_FinalLineWithoutTerminator(t *testing.T) {
	_, addr := startTestTransport(t, echoHandler)
	conn, reader := dial(t, addr)

	_, err := io.WriteString(conn, "last")
	require.NoError(t, err)
	require.NoError(t, conn.(*net.TCPConn).CloseWrite())

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "echo: last\n", line)

	_, err = reader.ReadString('\n')
	assert.ErrorIs(t, err, io.EOF)
}

func TestSession_PipelinedLinesAreAnsweredInOrder(t *testing.T) {
	_, addr := startTestTransport(t, echoHandler)
	conn, reader := dial(t, addr)

	_, err := io.WriteString(conn, "a\nb\nc\n")
	require.NoError(t, err)

	for _, expected := range []string{"echo: a\n", "echo: b\n", "echo: c\n"} {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, expected, line)
	}
}

func TestSession_ConcurrentClients(t *testing.T) {
	_, addr := startTestTransport(t, echoHandler)

	const clients = 32
	var wg sync.WaitGroup
	errs := make(chan error, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
			if err != nil {
				errs <- err
				return
			}
			defer conn.Close()
			_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
			reader := bufio.NewReader(conn)

			for j := 0; j < 20; j++ {
				msg := fmt.Sprintf("client-%d-msg-%d", i, j)
				if _, err := io.WriteString(conn, msg+"\n"); err != nil {
					errs <- err
					return
				}
				line, err := reader.ReadString('\n')
				if err != nil {
					errs <- err
					return
				}
				if line != "echo: "+msg+"\n" {
					errs <- fmt.Errorf("client %d: unexpected response %q", i, line)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestSession_AbruptDisconnectDoesNotAffectOthers(t *testing.T) {
	_, addr := startTestTransport(t, echoHandler)

	stable, stableReader := dial(t, addr)
	assert.Equal(t, "echo: before\n", roundTrip(t, stable, stableReader, "before\n"))

	// a client that disconnects in the middle of a line
	broken, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	_, _ = io.WriteString(broken, "half a li")
	require.NoError(t, broken.(*net.TCPConn).SetLinger(0))
	require.NoError(t, broken.Close())

	assert.Equal(t, "echo: after\n", roundTrip(t, stable, stableReader, "after\n"))

	// new connections are still accepted
	fresh, freshReader := dial(t, addr)
	assert.Equal(t, "echo: fresh\n", roundTrip(t, fresh, freshReader, "fresh\n"))
}

func TestSession_HandlerPanicEndsOnlyThatSession(t *testing.T) {
	_, addr := startTestTransport(t, echoHandler)

	stable, stableReader := dial(t, addr)
	victim, victimReader := dial(t, addr)

	_, err := io.WriteString(victim, "panic\n")
	require.NoError(t, err)
	_, err = victimReader.ReadString('\n')
	assert.Error(t, err, "the panicking session should be closed without a response")

	assert.Equal(t, "echo: still here\n", roundTrip(t, stable, stableReader, "still here\n"))
}

func TestClose_CancelsOpenSessions(t *testing.T) {
	st := NewBaseServerTransport(&loopbackConnector{})
	st.RegisterHandler(echoHandler)

	listenErr := make(chan error, 1)
	go func() { listenErr <- st.Listen(context.Background(), common.ServerConfig{}) }()
	addr := st.Addr()
	require.NotNil(t, addr)

	conn, reader := dial(t, addr.String())
	assert.Equal(t, "echo: hi\n", roundTrip(t, conn, reader, "hi\n"))

	require.NoError(t, st.Close())
	require.NoError(t, st.Close(), "closing twice should be a no-op")

	select {
	case err := <-listenErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Listen did not return after Close")
	}

	_, err := reader.ReadString('\n')
	assert.Error(t, err, "open session should be closed by Close")

	_, err = net.DialTimeout("tcp", addr.String(), time.Second)
	assert.Error(t, err, "listener should be closed")
}

func TestListen_WithoutHandler(t *testing.T) {
	st := NewBaseServerTransport(&loopbackConnector{})
	err := st.Listen(context.Background(), common.ServerConfig{})
	require.Error(t, err)
	assert.Nil(t, st.Addr())
}

func TestIdleTimeout(t *testing.T) {
	st := NewBaseServerTransport(&loopbackConnector{})
	st.RegisterHandler(echoHandler)
	go func() { _ = st.Listen(context.Background(), common.ServerConfig{TimeoutSecond: 1}) }()
	addr := st.Addr()
	require.NotNil(t, addr)
	t.Cleanup(func() { st.Close() })

	conn, reader := dial(t, addr.String())
	assert.Equal(t, "echo: hi\n", roundTrip(t, conn, reader, "hi\n"))

	// stay idle longer than the timeout
	_, err := reader.ReadString('\n')
	assert.Error(t, err, "idle session should be closed by the server")
}

func TestWriteLine_RejectsLineBreaks(t *testing.T) {
	var sb strings.Builder
	w := bufio.NewWriter(&sb)

	assert.ErrorIs(t, writeLine(w, "two\nlines"), ErrLineBreak)
	assert.ErrorIs(t, writeLine(w, "carriage\rreturn"), ErrLineBreak)
	require.NoError(t, writeLine(w, "fine"))
	assert.Equal(t, "fine\n", sb.String())
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("one\ntwo\r\n\nlast"))

	for _, expected := range []string{"one", "two", "", "last"} {
		line, err := readLine(r)
		require.NoError(t, err)
		assert.Equal(t, expected, line)
	}

	_, err := readLine(r)
	assert.ErrorIs(t, err, io.EOF)
}
