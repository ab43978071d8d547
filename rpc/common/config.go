package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// TCPConf holds the socket options applied to accepted TCP connections
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
}

// ServerConfig holds all configuration parameters of the roads server
type ServerConfig struct {
	// Store parameters
	Driver string
	DSN    string

	// Transport settings
	Transport string // tcp or unix
	Endpoint  string
	TCPConf   TCPConf

	// Idle timeout of a session in seconds, 0 disables it
	TimeoutSecond int64

	// Wire format of the responses
	Serializer string

	// Logging configuration
	LogLevel string

	// Address of the prometheus endpoint, empty disables it
	MetricsEndpoint string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Store
	addSection("Store")
	addField("Driver", c.Driver)
	addField("DSN", c.DSN)

	// Server settings
	addSection("Server")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Serializer", c.Serializer)
	if c.TimeoutSecond > 0 {
		addField("Idle Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	} else {
		addField("Idle Timeout", "none")
	}
	if c.Transport == "tcp" {
		addField("TCP NoDelay", fmt.Sprintf("%t", c.TCPConf.TCPNoDelay))
		addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.TCPConf.TCPKeepAliveSec))
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the parameters of the line protocol client
type ClientConfig struct {
	Transport     string
	Endpoint      string
	TimeoutSecond int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder
	sb.WriteString("\nCLIENT CONFIGURATION\n")
	sb.WriteString(fmt.Sprintf("  %-22s: %s\n", "Transport", c.Transport))
	sb.WriteString(fmt.Sprintf("  %-22s: %s\n", "Endpoint", c.Endpoint))
	sb.WriteString(fmt.Sprintf("  %-22s: %d sec\n", "Timeout", c.TimeoutSecond))
	return sb.String()
}
