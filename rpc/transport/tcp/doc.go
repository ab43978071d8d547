// Package tcp implements the TCP transport of the roads line protocol. It provides
// the TCP specific connectors for the base package, which contains the accept loop
// and the session handling.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector.
//     Applies TCP_NODELAY and keep-alive to accepted connections when configured.
//
// The server listens on 0.0.0.0:8888 unless another endpoint is configured.
package tcp
