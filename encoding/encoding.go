package encoding

import (
	"strings"

	"github.com/corpix/textenc/errors"
)

type (
	EncodeDecoder interface {
		Encode([]byte) ([]byte, error)
		Decode([]byte) ([]byte, error)
	}
	EncodeDecoderType string
)

const (
	EncodeDecoderTypeRaw    EncodeDecoderType = "raw"
	EncodeDecoderTypeBase64 EncodeDecoderType = "base64"
	EncodeDecoderTypeZstd   EncodeDecoderType = "zstd"
)

var EncodeDecoderTypes = []EncodeDecoderType{
	EncodeDecoderTypeRaw,
	EncodeDecoderTypeBase64,
	EncodeDecoderTypeZstd,
}

// NewEncodeDecoder returns nil for the raw type, callers should pass bytes through as is.
func NewEncodeDecoder(t string) (EncodeDecoder, error) {
	switch EncodeDecoderType(strings.ToLower(t)) {
	case EncodeDecoderTypeRaw:
		return nil, nil
	case EncodeDecoderTypeBase64:
		return NewEncodeDecoderBase64(), nil
	case EncodeDecoderTypeZstd:
		return NewEncodeDecoderZstd(), nil
	default:
		return nil, errors.Errorf(
			"unsupported encode decoder type %q, expected one of: %q",
			t, EncodeDecoderTypes,
		)
	}
}
