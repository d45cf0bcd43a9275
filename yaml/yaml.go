// Package yaml provides a YAML codec for masked payloads.
package yaml

import (
	"bytes"

	fluentmasker "github.com/UlrikAtItWrk/FluentMasker-sub002"
	"gopkg.in/yaml.v3"
)

// DefaultIndent is the indentation used by New.
const DefaultIndent = 2

// yamlCodec implements fluentmasker.Codec for YAML.
type yamlCodec struct {
	indent int
}

// New returns a YAML codec with two-space indentation.
func New() fluentmasker.Codec {
	return &yamlCodec{indent: DefaultIndent}
}

// NewIndent returns a YAML codec with the given indentation. Values below 1
// fall back to DefaultIndent.
func NewIndent(spaces int) fluentmasker.Codec {
	if spaces < 1 {
		spaces = DefaultIndent
	}
	return &yamlCodec{indent: spaces}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
