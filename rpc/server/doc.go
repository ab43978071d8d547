// Package server assembles the roads service: it registers the command dispatcher
// as the handler of a transport and owns the store for the lifetime of the server.
//
// Serve blocks until the context is cancelled. Close releases the listening socket
// and the store as a pair; it runs when Serve returns, however it exits, and may
// also be called directly.
package server
