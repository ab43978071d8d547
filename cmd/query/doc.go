// Package query implements the client side commands: sending raw command lines to
// a roads server and a parallel read benchmark.
package query
