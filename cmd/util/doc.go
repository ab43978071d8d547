// Package util contains helpers shared by the commands: flag setup, configuration
// loading and the construction of serializers, transports and stores from it.
package util
