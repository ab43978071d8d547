package base

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("transport")

const (
	// bufferSize is the size of the read and write buffer of a session
	bufferSize = 4 * 1024

	// bounds of the pause after a failed accept
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the accept loop and the sessions
type serverTransport struct {
	connector IServerConnector
	handler   transport.ServerHandleFunc
	config    common.ServerConfig

	listener  net.Listener
	ready     chan struct{}
	readyOnce sync.Once

	// mu guards closing against the registration of new sessions
	mu       sync.Mutex
	closing  bool
	sessions *xsync.MapOf[uint64, net.Conn]
	nextID   atomic.Uint64
	wg       sync.WaitGroup
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport running one session per connection
func NewBaseServerTransport(connector IServerConnector) transport.IServerTransport {
	return &serverTransport{
		connector: connector,
		ready:     make(chan struct{}),
		sessions:  xsync.NewMapOf[uint64, net.Conn](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(ctx context.Context, config common.ServerConfig) error {
	if t.handler == nil {
		t.markReady()
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		t.markReady()
		return fmt.Errorf("failed to create listener: %w", err)
	}

	t.mu.Lock()
	if t.closing {
		t.mu.Unlock()
		_ = listener.Close()
		t.markReady()
		return nil
	}
	t.listener = listener
	t.mu.Unlock()
	t.markReady()

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), listener.Addr())

	// Accept connections
	backoff := minAcceptBackoff
	for {
		conn, err := listener.Accept()
		if err != nil {
			if t.isClosing() || errors.Is(err, net.ErrClosed) {
				Logger.Infof("Stopped accepting connections on %s", listener.Addr())
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			time.Sleep(backoff)
			backoff = min(backoff*2, maxAcceptBackoff)
			continue
		}
		backoff = minAcceptBackoff

		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			Logger.Warningf("%s: failed to apply socket options: %v", conn.RemoteAddr(), err)
		}

		// Register the session, unless the transport is closing
		t.mu.Lock()
		if t.closing {
			t.mu.Unlock()
			_ = conn.Close()
			return nil
		}
		id := t.nextID.Add(1)
		t.sessions.Store(id, conn)
		t.wg.Add(1)
		t.mu.Unlock()

		// Handle the connection in a goroutine
		go t.handleConnection(ctx, id, conn)
	}
}

func (t *serverTransport) Addr() net.Addr {
	<-t.ready
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *serverTransport) Close() error {
	t.mu.Lock()
	if t.closing {
		t.mu.Unlock()
		return nil
	}
	t.closing = true
	listener := t.listener
	t.mu.Unlock()

	var err error
	if listener != nil {
		err = listener.Close()
	}

	// Cancel the open sessions; their blocked reads fail and the sessions end
	t.sessions.Range(func(id uint64, conn net.Conn) bool {
		_ = conn.Close()
		return true
	})
	t.wg.Wait()
	t.markReady()

	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (t *serverTransport) markReady() {
	t.readyOnce.Do(func() { close(t.ready) })
}

func (t *serverTransport) isClosing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closing
}

// handleConnection runs the session of one connection: read a line, answer it, repeat.
// Errors end only this session.
func (t *serverTransport) handleConnection(ctx context.Context, id uint64, conn net.Conn) {
	remote := conn.RemoteAddr().String()

	common.SessionsTotal.Inc()
	common.SessionsActive.Inc()

	defer func() {
		if r := recover(); r != nil {
			Logger.Errorf("%s: Exception: %v. Closing connection.", remote, r)
		}
		_ = conn.Close()
		t.sessions.Delete(id)
		common.SessionsActive.Dec()
		Logger.Infof("%s: The connection is closed", remote)
		t.wg.Done()
	}()

	Logger.Infof("%s: Client is connected", remote)

	// Timeout in seconds, zero means a session may idle forever
	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	reader := bufio.NewReaderSize(conn, bufferSize)
	writer := bufio.NewWriterSize(conn, bufferSize)

	for {
		if timeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
				Logger.Errorf("%s: failed to set read deadline: %v", remote, err)
				return
			}
		}

		line, err := readLine(reader)

		// Case EOF: Connection closed by client
		if errors.Is(err, io.EOF) {
			Logger.Infof("%s: Connection closed by client", remote)
			return
		}

		// Case error: log and close connection
		if err != nil {
			if t.isClosing() {
				Logger.Infof("%s: Server is shutting down. Closing connection.", remote)
			} else {
				Logger.Errorf("%s: Exception: %v. Closing connection.", remote, err)
			}
			return
		}
		Logger.Infof("%s: Got: %s", remote, line)

		resp, closeAfter := t.handler(ctx, line)

		if err := writeLine(writer, resp); err != nil {
			Logger.Errorf("%s: Exception: %v. Closing connection.", remote, err)
			return
		}
		Logger.Infof("%s: Sent: %s", remote, resp)

		if closeAfter {
			Logger.Infof("%s: Closing connection.", remote)
			return
		}
	}
}
