package preference

import (
	gokvencoding "github.com/philippgille/gokv/encoding"
	msgpack "github.com/vmihailenco/msgpack/v5"

	"github.com/corpix/textenc/encoding"
)

// Codec serializes values with msgpack and optionally post-processes
// the result with an EncodeDecoder.
type Codec struct {
	EncodeDecoder encoding.EncodeDecoder
}

var _ gokvencoding.Codec = Codec{}

func (c Codec) Marshal(v interface{}) ([]byte, error) {
	buf, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}
	if c.EncodeDecoder != nil {
		return c.EncodeDecoder.Encode(buf)
	}
	return buf, nil
}

func (c Codec) Unmarshal(data []byte, v interface{}) error {
	var err error
	if c.EncodeDecoder != nil {
		data, err = c.EncodeDecoder.Decode(data)
		if err != nil {
			return err
		}
	}
	return msgpack.Unmarshal(data, v)
}
