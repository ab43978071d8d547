package transport

import (
	"context"
	"net"

	"github.com/ValentinKolb/roads/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming command lines
// This function is called by a server transport layer for every line a client sends
// It returns the response line and whether the session should be closed after sending it
type ServerHandleFunc func(ctx context.Context, line string) (resp string, closeAfter bool)

// IServerTransport is the interface for the server transport layer
type IServerTransport interface {
	// RegisterHandler registers the handler for incoming lines
	// This handler is called concurrently by all sessions
	RegisterHandler(handler ServerHandleFunc)
	// Listen binds the endpoint of the config and accepts connections until Close is called
	// Every connection is served by its own session goroutine
	// Listen returns nil after Close and an error if the endpoint could not be bound
	Listen(ctx context.Context, config common.ServerConfig) error
	// Addr blocks until Listen has bound its endpoint and returns the bound address
	// It returns nil if binding failed
	Addr() net.Addr
	// Close stops accepting, closes all open sessions and waits for them to end
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IClientTransport is the interface for the client transport
type IClientTransport interface {
	// Connect opens the connection to the endpoint of the config
	Connect(config common.ClientConfig) error
	// Send sends one command line and returns the response line
	Send(line string) (resp string, err error)
	// Close closes the transport connection
	Close() error
}
