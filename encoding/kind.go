package encoding

import (
	"strings"

	"github.com/corpix/textenc/errors"
)

// Kind identifies a text representation produced by Encode.
type Kind string

const (
	KindUTF8   Kind = "utf8"
	KindASCII  Kind = "ascii"
	KindBase64 Kind = "base64"
	KindHex    Kind = "hex"
	KindBinary Kind = "binary"
	KindURL    Kind = "url"

	KindDefault = KindUTF8
)

var (
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	kinds = []Kind{
		KindUTF8,
		KindASCII,
		KindBase64,
		KindHex,
		KindBinary,
		KindURL,
	}
)

// Kinds returns all supported kinds in presentation order.
func Kinds() []Kind {
	res := make([]Kind, len(kinds))
	copy(res, kinds)
	return res
}

func (k Kind) String() string { return string(k) }

func (k Kind) Valid() bool {
	switch k {
	case KindUTF8, KindASCII, KindBase64, KindHex, KindBinary, KindURL:
		return true
	default:
		return false
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}

func (k *Kind) UnmarshalText(buf []byte) error {
	kind, err := ParseKind(string(buf))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", errors.Wrapf(ErrUnsupportedEncoding, "%q", s)
	}
	return k, nil
}
