// Package cmd implements the command-line interface of roads. It provides a
// hierarchical command structure for running the server, querying it as a client
// and maintaining the store.
//
// The package is organized into several subpackages:
//
//   - serve: Starts the line protocol server on top of a store
//   - query: Sends command lines to a running server (and a small benchmark)
//   - insert: Creates the schema and inserts countries, towns and roads
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See roads -help for a list of all commands.
package cmd
