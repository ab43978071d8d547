// Package rpc contains the network side of the roads service: the line protocol
// spoken between clients and the server and everything needed to serve it.
//
// The package is organized into several subpackages:
//
//   - common: Configuration structures, logging and metrics shared by all packages.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets). Owns the accept loop and the per-connection sessions.
//
//   - serializer: Wire formats (JSON, YAML) for the values sent to clients.
//
//   - dispatcher: Parses command lines and answers them from the store.
//
//   - client: A client for the line protocol with typed helpers.
//
//   - server: Assembles transport, dispatcher and store into the running service.
package rpc
