// Package xml provides an XML codec for masked payloads.
//
// The root element is named after the masked type. Null properties are
// omitted.
package xml

import (
	"encoding/xml"

	fluentmasker "github.com/UlrikAtItWrk/FluentMasker-sub002"
)

// xmlCodec implements fluentmasker.Codec for XML.
type xmlCodec struct {
	header bool
}

// New returns an XML codec without a declaration header.
func New() fluentmasker.Codec {
	return &xmlCodec{}
}

// NewWithHeader returns an XML codec that prefixes xml.Header.
func NewWithHeader() fluentmasker.Codec {
	return &xmlCodec{header: true}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	if c.header {
		data = append([]byte(xml.Header), data...)
	}
	return data, nil
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
