package converter

import (
	"fmt"

	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/log"
)

type (
	Variant string
	Notice  struct {
		Title   string  `json:"title"`
		Variant Variant `json:"variant"`
	}

	Clipboard interface {
		WriteText(string) error
	}

	// Converter holds the state behind a single converter view,
	// it is not safe for concurrent use.
	Converter struct {
		Input    string
		Output   string
		Encoding encoding.Kind
		Valid    bool
	}
	Option func(*Converter)
)

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

const (
	NoticeEmptyInput   = "Please enter some text to convert"
	NoticeInvalidInput = "Input contains characters that cannot be encoded with the selected encoding"
	NoticeConverted    = "Text converted successfully!"
	NoticeNothingCopy  = "Nothing to copy"
	NoticeCopied       = "Copied to clipboard!"
	NoticeCleared      = "All fields cleared"
	NoticeSwapped      = "Input and output swapped"
)

func (n Notice) Destructive() bool { return n.Variant == VariantDestructive }

func (n Notice) String() string { return n.Title }

func notice(title string) Notice {
	return Notice{Title: title, Variant: VariantDefault}
}

func failure(title string) Notice {
	return Notice{Title: title, Variant: VariantDestructive}
}

//

func WithInput(text string) Option {
	return func(c *Converter) { c.Input = text }
}

func WithOutput(text string) Option {
	return func(c *Converter) { c.Output = text }
}

func WithEncoding(kind encoding.Kind) Option {
	return func(c *Converter) { c.Encoding = kind }
}

//

func (c *Converter) validate() {
	c.Valid = encoding.Validate(c.Input, c.Encoding)
}

func (c *Converter) SetInput(text string) {
	c.Input = text
	c.validate()
}

func (c *Converter) SetEncoding(kind encoding.Kind) {
	c.Encoding = kind
	c.validate()
}

func (c *Converter) Convert() Notice {
	if c.Input == "" {
		return failure(NoticeEmptyInput)
	}
	if !c.Valid {
		return failure(NoticeInvalidInput)
	}

	output, err := encoding.Encode(c.Input, c.Encoding)
	if err != nil {
		log.Warn().
			Err(err).
			Str("encoding", string(c.Encoding)).
			Msg("conversion failed")
		return failure(fmt.Sprintf("Error converting text: %s", err))
	}

	c.Output = output
	log.Debug().
		Str("encoding", string(c.Encoding)).
		Int("input", len(c.Input)).
		Int("output", len(c.Output)).
		Msg("converted")

	return notice(NoticeConverted)
}

func (c *Converter) Copy(clipboard Clipboard) Notice {
	if c.Output == "" {
		return failure(NoticeNothingCopy)
	}

	err := clipboard.WriteText(c.Output)
	if err != nil {
		return failure(fmt.Sprintf("Failed to copy: %s", err))
	}
	return notice(NoticeCopied)
}

func (c *Converter) Clear() Notice {
	c.Input = ""
	c.Output = ""
	c.Valid = true
	return notice(NoticeCleared)
}

func (c *Converter) Swap() Notice {
	c.Input, c.Output = c.Output, c.Input
	c.validate()
	return notice(NoticeSwapped)
}

func (c *Converter) Info() encoding.Info {
	return encoding.Describe(c.Encoding)
}

func New(options ...Option) *Converter {
	c := &Converter{Encoding: encoding.KindDefault}
	for _, option := range options {
		option(c)
	}
	c.validate()

	return c
}
