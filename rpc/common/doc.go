// Package common provides the utilities shared across the roads server and client:
// configuration structures, the logger and the metrics.
//
// Key Components:
//
//   - ServerConfig / ClientConfig: Configuration of the server (store, transport,
//     wire format, logging) and of the line protocol client.
//
//   - Logger: Custom logging implementation that plugs into dragonboat's logger
//     registry. Every line has the form "<dd.MM.yy HH:mm:ss> : <message>".
//     Packages fetch their logger with logger.GetLogger(name).
//
//   - Metrics: Session and command counters exported in the prometheus text format.
package common
