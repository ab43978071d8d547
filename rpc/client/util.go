package client

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/roads/rpc/dispatcher"
	"github.com/ValentinKolb/roads/rpc/serializer"
	"github.com/ValentinKolb/roads/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("client")
)

var (
	// ErrUnknownCommand is returned when the server did not recognize the command
	ErrUnknownCommand = errors.New("server: unknown command")
	// ErrStoreUnavailable is returned when the server could not read from its store
	ErrStoreUnavailable = errors.New("server: no such table or db is unavailable")
)

// invokeRequest is the helper used by all typed client methods
// It sends the command, maps the fixed error responses to errors and decodes the response into v
func invokeRequest(command string, v any, transport transport.IClientTransport, serializer serializer.ISerializer) error {
	resp, err := transport.Send(command)
	if err != nil {
		return err
	}
	Logger.Debugf("%s -> %s", command, resp)

	// Check if the response is an error response
	switch resp {
	case dispatcher.UnknownResponse:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	case dispatcher.ErrorResponse:
		return fmt.Errorf("%w: %s", ErrStoreUnavailable, command)
	}

	// Deserialize the response
	if err := serializer.Deserialize([]byte(resp), v); err != nil {
		return fmt.Errorf("failed to decode response to %q: %w", command, err)
	}
	return nil
}
