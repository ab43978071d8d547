// Package transport defines the interfaces of the connection layer of the roads
// service. It provides a common contract for all transports, so the server and the
// client do not depend on the network protocol.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Line based sessions: one command line per request, one response line per reply
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//
// Key Components:
//
//   - IClientTransport: Interface for client-side transports that manage the
//     connection and send command lines.
//
//   - IServerTransport: Interface for server-side transports that accept connections
//     and pass every received line to the registered handler.
//
//   - ServerHandleFunc: Function type for line handling callbacks.
package transport
