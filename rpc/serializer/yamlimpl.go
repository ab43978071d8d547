package serializer

import (
	"bytes"

	"github.com/goccy/go-yaml"
)

// NewYAMLSerializer creates a new serializer using yaml in flow style.
// Flow style keeps every value on a single line, which the line protocol requires.
func NewYAMLSerializer() ISerializer {
	return &yamlSerializerImpl{}
}

// yamlSerializerImpl implements the ISerializer interface using yaml encoding
type yamlSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (y yamlSerializerImpl) Serialize(v any) ([]byte, error) {
	b, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(b, "\n"), nil
}

func (y yamlSerializerImpl) Deserialize(b []byte, v any) error {
	return yaml.Unmarshal(b, v)
}

func (y yamlSerializerImpl) Name() string {
	return "yaml"
}
