// Package bson provides a BSON codec for masked payloads.
package bson

import (
	fluentmasker "github.com/UlrikAtItWrk/FluentMasker-sub002"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements fluentmasker.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec. Payloads are binary documents; Result.Payload
// holds the raw bytes.
func New() fluentmasker.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes a BSON document into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}

// Document decodes a payload produced by this codec into an ordered
// document, preserving property order.
func Document(payload string) (bson.D, error) {
	var doc bson.D
	if err := bson.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
