package serializer

// ISerializer is the interface for all wire format serializers
type ISerializer interface {
	// Serialize converts a value into its wire representation
	// It returns the serialized bytes and an error if any
	Serialize(v any) ([]byte, error)
	// Deserialize parses a wire representation into a value
	// It takes the serialized bytes and a pointer to the target value as parameters
	// It returns an error if any
	Deserialize(b []byte, v any) error
	// Name returns the name of the wire format (e.g. "json")
	Name() string
}
