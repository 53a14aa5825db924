package encoding

import (
	"github.com/klauspost/compress/zstd"

	"github.com/corpix/textenc/errors"
)

type EncodeDecoderZstd struct {
	*EncodeDecoderBase64
}

var _ EncodeDecoder = &EncodeDecoderZstd{}

//

func (e *EncodeDecoderZstd) Encode(buf []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return e.EncodeDecoderBase64.Encode(enc.EncodeAll(buf, nil))
}

func (e *EncodeDecoderZstd) Decode(buf []byte) ([]byte, error) {
	compressed, err := e.EncodeDecoderBase64.Decode(buf)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	res, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress zstd frame")
	}
	return res, nil
}

func NewEncodeDecoderZstd() *EncodeDecoderZstd {
	return &EncodeDecoderZstd{EncodeDecoderBase64: NewEncodeDecoderBase64URL()}
}
