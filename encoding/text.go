package encoding

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/corpix/textenc/errors"
)

type Info struct {
	DisplayName string `json:"display-name" yaml:"display-name"`
	Description string `json:"description"  yaml:"description"`
}

var infos = map[Kind]Info{
	KindUTF8: {
		DisplayName: "UTF-8",
		Description: "Universal character encoding that can represent any character.",
	},
	KindASCII: {
		DisplayName: "ASCII",
		Description: "Basic character encoding limited to 128 characters (English alphabet, numbers, symbols).",
	},
	KindBase64: {
		DisplayName: "Base64",
		Description: "Binary-to-text encoding scheme that represents binary data in ASCII format.",
	},
	KindHex: {
		DisplayName: "Hex",
		Description: "Hexadecimal representation of text (base 16 number system).",
	},
	KindBinary: {
		DisplayName: "Binary",
		Description: "Represents text as a sequence of binary digits (0s and 1s).",
	},
	KindURL: {
		DisplayName: "URL Encoding",
		Description: "Converts characters into a format that can be transmitted over the Internet.",
	},
}

// Describe never fails, unknown kinds get the utf8 entry.
func Describe(kind Kind) Info {
	if info, ok := infos[kind]; ok {
		return info
	}
	return infos[KindDefault]
}

// Validate reports whether text is representable in kind.
// Only ascii restricts its input, unknown kinds are considered valid.
func Validate(text string, kind Kind) bool {
	if text == "" {
		return true
	}

	switch kind {
	case KindASCII:
		for _, r := range text {
			if r > unicode.MaxASCII {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Encode does not call Validate, ascii emits code points above 127 as is.
func Encode(text string, kind Kind) (string, error) {
	switch kind {
	case KindUTF8:
		return text, nil
	case KindASCII:
		return joinRunes(text, " ", func(r rune) string {
			return strconv.FormatInt(int64(r), 10)
		}), nil
	case KindBase64:
		buf, err := NewEncodeDecoderBase64().Encode([]byte(toValidUTF8(text)))
		if err != nil {
			return "", err
		}
		return string(buf), nil
	case KindHex:
		return joinRunes(text, "", func(r rune) string {
			return pad(strconv.FormatInt(int64(r), 16), 2)
		}), nil
	case KindBinary:
		return joinRunes(text, " ", func(r rune) string {
			return pad(strconv.FormatInt(int64(r), 2), 8)
		}), nil
	case KindURL:
		return EscapeURLComponent(text), nil
	default:
		return "", errors.Wrapf(ErrUnsupportedEncoding, "%q", string(kind))
	}
}

//

func joinRunes(text string, sep string, format func(rune) string) string {
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n > 0 {
			b.WriteString(sep)
		}
		b.WriteString(format(r))
		n++
	}
	return b.String()
}

// toValidUTF8 replaces every invalid byte with utf8.RuneError,
// the same way ranging over a string reads it.
func toValidUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return string([]rune(text))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
