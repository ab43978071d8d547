// Package client implements a client for the roads line protocol.
//
// RoadsClient wraps an IClientTransport and offers typed helpers for the
// commands of the protocol (GetCountries, GetTowns, GetRoads, Finish). The
// fixed error responses of the server are mapped to ErrUnknownCommand and
// ErrStoreUnavailable. Send gives access to the raw protocol.
//
// Usage:
//
//	c, err := client.NewRoadsClient(config, tcp.NewTCPClientTransport(), serializer.NewJSONSerializer())
//	if err != nil {
//		return err
//	}
//	defer c.Finish()
//
//	roads, err := c.GetRoads(1)
package client
