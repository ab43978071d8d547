// Package serve implements the serve command, the process entry of the roads server.
package serve
