// Package unix implements the Unix domain socket transport of the roads line
// protocol. It serves the same sessions as the tcp package, for clients on the
// same host. The configured endpoint is the socket path; a stale socket file is
// removed before listening.
package unix
