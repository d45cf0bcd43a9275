// Package json provides JSON codecs for masked payloads.
package json

import (
	"bytes"
	"encoding/json"

	fluentmasker "github.com/UlrikAtItWrk/FluentMasker-sub002"
)

// jsonCodec implements fluentmasker.Codec for JSON.
type jsonCodec struct {
	prefix string
	indent string
}

// New returns a compact JSON codec.
func New() fluentmasker.Codec {
	return &jsonCodec{}
}

// NewIndent returns a JSON codec that pretty-prints with the given prefix
// and indent.
func NewIndent(prefix, indent string) fluentmasker.Codec {
	return &jsonCodec{prefix: prefix, indent: indent}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON. HTML characters are not escaped so masked
// payloads keep characters such as '<' and '&' verbatim.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.indent != "" || c.prefix != "" {
		enc.SetIndent(c.prefix, c.indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
