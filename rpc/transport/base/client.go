package base

import (
	"bufio"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/transport"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the line protocol client
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig

	// mu serializes requests, the protocol has no pipelining
	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IClientTransport {
	return &clientTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if config.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		_ = t.conn.Close()
	}

	conn, err := t.connector.Connect(config.Endpoint, time.Duration(config.TimeoutSecond)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", config.Endpoint, err)
	}

	t.config = config
	t.conn = conn
	t.reader = bufio.NewReaderSize(conn, bufferSize)
	t.writer = bufio.NewWriterSize(conn, bufferSize)

	Logger.Debugf("Connected to %s using %s transport", config.Endpoint, t.connector.GetName())
	return nil
}

func (t *clientTransport) Send(line string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return "", fmt.Errorf("not connected")
	}

	if t.config.TimeoutSecond > 0 {
		if err := t.conn.SetDeadline(time.Now().Add(time.Duration(t.config.TimeoutSecond) * time.Second)); err != nil {
			return "", fmt.Errorf("failed to set deadline: %w", err)
		}
	}

	if err := writeLine(t.writer, line); err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	resp, err := readLine(t.reader)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return resp, nil
}

func (t *clientTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
