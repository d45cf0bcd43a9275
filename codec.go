package fluentmasker

import (
	"encoding/json"
)

// Codec turns the masked structure into a payload. Implementations for JSON,
// YAML, XML, MessagePack and BSON live in the subpackages of this module.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// jsonCodec is the default codec.
type jsonCodec struct{}

// JSONCodec returns the default compact JSON codec.
func JSONCodec() Codec {
	return jsonCodec{}
}

func (jsonCodec) ContentType() string {
	return "application/json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Cloner allows types to provide deep copy logic for MaskValue.
//
// For simple value types with no pointers, slices, or maps, Clone can simply
// return the receiver value:
//
//	func (u User) Clone() User { return u }
//
// Types that do not implement Cloner are copied shallowly.
type Cloner[T any] interface {
	Clone() T
}
