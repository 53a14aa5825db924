package config

import (
	"github.com/corpix/revip"

	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/errors"
	"github.com/corpix/textenc/log"
)

type (
	Config              = revip.Config
	Defaultable         = revip.Defaultable
	ErrFileNotFound     = revip.ErrFileNotFound
	ErrMarshal          = revip.ErrMarshal
	ErrPathNotFound     = revip.ErrPathNotFound
	ErrPostprocess      = revip.ErrPostprocess
	ErrUnexpectedKind   = revip.ErrUnexpectedKind
	ErrUnexpectedScheme = revip.ErrUnexpectedScheme
	ErrUnmarshal        = revip.ErrUnmarshal
	Expandable          = revip.Expandable
	Marshaler           = revip.Marshaler
	SourceOption        = revip.SourceOption
	Container           = revip.Container
	Unmarshaler         = revip.Unmarshaler
	Validatable         = revip.Validatable
)

//

type BaseConfig struct {
	Log      *log.Config     `yaml:"log"`
	Encoding *EncodingConfig `yaml:"encoding"`
}

func (c *BaseConfig) Default() {
	if c.Log == nil {
		c.Log = &log.Config{}
	}
	c.Log.Default()

	if c.Encoding == nil {
		c.Encoding = &EncodingConfig{}
	}
	c.Encoding.Default()
}

func (c *BaseConfig) Validate() error {
	err := c.Log.Validate()
	if err != nil {
		return err
	}
	return c.Encoding.Validate()
}

func (c *BaseConfig) LogConfig() *log.Config          { return c.Log }
func (c *BaseConfig) EncodingConfig() *EncodingConfig { return c.Encoding }

//

// EncodingConfig holds the preselected kind used when none was requested.
type EncodingConfig struct {
	Preselect string `yaml:"preselect"`
}

func (c *EncodingConfig) Default() {
	if c.Preselect == "" {
		c.Preselect = string(encoding.KindDefault)
	}
}

func (c *EncodingConfig) Validate() error {
	_, err := encoding.ParseKind(c.Preselect)
	if err != nil {
		return errors.Wrap(err, "encoding.preselect")
	}
	return nil
}

func (c *EncodingConfig) Kind() encoding.Kind {
	k, err := encoding.ParseKind(c.Preselect)
	if err != nil {
		return encoding.KindDefault
	}
	return k
}

//

var (
	FromEnviron    = revip.FromEnviron
	FromFile       = revip.FromFile
	FromReader     = revip.FromReader
	FromURL        = revip.FromURL
	Load           = revip.Load
	New            = revip.New
	Postprocess    = revip.Postprocess
	ToFile         = revip.ToFile
	ToURL          = revip.ToURL
	ToWriter       = revip.ToWriter
	WithDefaults   = revip.WithDefaults
	WithExpansion  = revip.WithExpansion
	WithValidation = revip.WithValidation

	JsonMarshaler   = revip.JsonMarshaler
	JsonUnmarshaler = revip.JsonUnmarshaler
	YamlMarshaler   = revip.YamlMarshaler
	YamlUnmarshaler = revip.YamlUnmarshaler
	TomlMarshaler   = revip.TomlMarshaler
	TomlUnmarshaler = revip.TomlUnmarshaler
)
