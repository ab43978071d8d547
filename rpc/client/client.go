package client

import (
	"fmt"

	"github.com/ValentinKolb/roads/lib/record"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/dispatcher"
	"github.com/ValentinKolb/roads/rpc/serializer"
	"github.com/ValentinKolb/roads/rpc/transport"
)

// NewRoadsClient connects a new client for the line protocol
// The serializer must match the wire format of the server
func NewRoadsClient(
	config common.ClientConfig,
	transport transport.IClientTransport,
	serializer serializer.ISerializer,
) (*RoadsClient, error) {

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &RoadsClient{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}, nil
}

// RoadsClient sends commands to a roads server over one connection
type RoadsClient struct {
	config     common.ClientConfig
	transport  transport.IClientTransport
	serializer serializer.ISerializer
}

// Send sends a raw command line and returns the raw response line
func (c *RoadsClient) Send(command string) (string, error) {
	return c.transport.Send(command)
}

// GetCountries fetches all countries
func (c *RoadsClient) GetCountries() (record.IDNameMap, error) {
	countries := record.IDNameMap{}
	err := invokeRequest("get countries", &countries, c.transport, c.serializer)
	return countries, err
}

// GetTowns fetches the towns of a country
func (c *RoadsClient) GetTowns(countryID int16) (record.IDNameMap, error) {
	towns := record.IDNameMap{}
	err := invokeRequest(fmt.Sprintf("get towns %d", countryID), &towns, c.transport, c.serializer)
	return towns, err
}

// GetRoads fetches the roads of a country
func (c *RoadsClient) GetRoads(countryID int16) ([]record.Road, error) {
	roads := []record.Road{}
	err := invokeRequest(fmt.Sprintf("get roads %d", countryID), &roads, c.transport, c.serializer)
	return roads, err
}

// Finish ends the session. The server closes the connection after answering
func (c *RoadsClient) Finish() error {
	resp, err := c.transport.Send("finish")
	if err != nil {
		return err
	}
	if resp != dispatcher.FinishResponse {
		return fmt.Errorf("unexpected response to finish: %q", resp)
	}
	return c.transport.Close()
}

// Close closes the connection without finishing the session
func (c *RoadsClient) Close() error {
	return c.transport.Close()
}
