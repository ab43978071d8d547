package serializer

import "fmt"

// ByName returns the serializer registered for the given format name
func ByName(name string) (ISerializer, error) {
	switch name {
	case "json":
		return NewJSONSerializer(), nil
	case "yaml":
		return NewYAMLSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s (expected one of: json, yaml)", name)
	}
}
