// Package base provides the foundation of the transport layers of the roads service,
// implementing the line protocol independent of the specific network protocol
// (TCP, Unix sockets). Protocol-specific packages only supply a connector.
//
// The package focuses on:
//   - A single accept loop that hands every connection to its own session goroutine
//   - Newline framing: one command line in, one response line out, no pipelining
//   - Isolation: an I/O error or a panic ends only the affected session
//   - Explicit cancellation: Close stops the accept loop and closes open sessions
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     that allow extending the base transport with different network protocols.
//
//   - serverTransport: Accepts connections and runs the sessions. Open sessions are
//     tracked in a concurrent map so Close can cancel them.
//
//   - clientTransport: Sends one line and waits for the response line. Requests on
//     one client are serialized.
//
// Session lifecycle:
//
//	accept -> loop { read line -> handler -> write line -> close if requested }
//	-> close socket
//
// A session has no deadline unless the config sets an idle timeout, so a stalled
// client keeps its session without affecting others.
//
// Framing limitation:
//
//	Values containing a line break cannot be represented. writeLine rejects them
//	with ErrLineBreak instead of corrupting the stream.
package base
