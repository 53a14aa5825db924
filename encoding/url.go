package encoding

import (
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// unreserved marks bytes left as is by EscapeURLComponent:
// letters, digits and - _ . ! ~ * ' ( )
var unreserved [utf8.RuneSelf]bool

func init() {
	for c := 'a'; c <= 'z'; c++ {
		unreserved[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		unreserved[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		unreserved[c] = true
	}
	for _, c := range "-_.!~*'()" {
		unreserved[c] = true
	}
}

// EscapeURLComponent percent-encodes every byte of the UTF-8 form of text
// except unreserved ones. Unlike url.QueryEscape spaces become %20 and
// ! ~ * ' ( ) are kept.
func EscapeURLComponent(text string) string {
	text = toValidUTF8(text)

	n := 0
	for i := 0; i < len(text); i++ {
		if !isUnreserved(text[i]) {
			n++
		}
	}
	if n == 0 {
		return text
	}

	buf := make([]byte, 0, len(text)+2*n)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isUnreserved(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
	}
	return string(buf)
}

func isUnreserved(c byte) bool {
	return c < utf8.RuneSelf && unreserved[c]
}
