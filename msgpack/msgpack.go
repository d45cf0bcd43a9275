// Package msgpack provides a MessagePack codec for masked payloads.
package msgpack

import (
	"bytes"

	fluentmasker "github.com/UlrikAtItWrk/FluentMasker-sub002"
	"github.com/vmihailenco/msgpack/v5"
)

// msgpackCodec implements fluentmasker.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec. Structures are encoded as maps keyed by
// property name; map keys are sorted so repeated passes are byte-identical.
func New() fluentmasker.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
