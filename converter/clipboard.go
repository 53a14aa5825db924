package converter

import (
	"fmt"
	"io"

	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/errors"
)

// OSC52Clipboard asks the terminal emulator to place text into the system
// clipboard with the OSC 52 control sequence.
type OSC52Clipboard struct {
	Writer io.Writer
}

var _ Clipboard = &OSC52Clipboard{}

func (c *OSC52Clipboard) WriteText(text string) error {
	buf, err := encoding.NewEncodeDecoderBase64().Encode([]byte(text))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.Writer, "\x1b]52;c;%s\a", buf)
	if err != nil {
		return errors.Wrap(err, "failed to write clipboard sequence")
	}
	return nil
}

func NewOSC52Clipboard(w io.Writer) *OSC52Clipboard {
	return &OSC52Clipboard{Writer: w}
}
