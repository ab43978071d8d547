// Package serializer converts the values served by the roads service to and from
// their textual wire representation. It defines a common interface so the wire
// format can be swapped without touching the store or the dispatcher.
//
// Key Components:
//
//   - ISerializer: Core interface that all serializer implementations must satisfy.
//
//   - jsonSerializerImpl: Implementation using JSON encoding. This is the production
//     format. Maps keyed by ids are written as objects keyed by the stringified id,
//     e.g. {"1":"Wonderland"}, and road lists as arrays of objects.
//
//   - yamlSerializerImpl: Implementation using YAML in flow style, e.g.
//     {1: Wonderland}. Useful for humans reading the protocol by hand.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Framing:
//
//	The protocol is framed by newlines. No implementation emits a newline inside
//	a serialized value, so every value is sent as exactly one line.
//
// Usage:
//
//	s := serializer.NewJSONSerializer()
//	data, err := s.Serialize(roads)
//	// ... send data ...
//	var received []record.Road
//	err = s.Deserialize(data, &received)
package serializer
