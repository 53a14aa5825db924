package main

import (
	"github.com/corpix/textenc/cli"
	"github.com/corpix/textenc/config"
	"github.com/corpix/textenc/di"
	"github.com/corpix/textenc/errors"
	"github.com/corpix/textenc/http"
	"github.com/corpix/textenc/template"
)

type Config struct {
	config.BaseConfig `yaml:",inline"`
	Http              *http.Config `yaml:"http"`
}

func (c *Config) Default() {
	c.BaseConfig.Default()
	if c.Http == nil {
		c.Http = &http.Config{}
	}
	c.Http.Default()
}

func (c *Config) Validate() error {
	if c.Http == nil {
		return errors.New("http config is required")
	}
	return c.BaseConfig.Validate()
}

func (c *Config) HttpConfig() *http.Config { return c.Http }

var conf = &Config{}

//

func main() {
	di.MustProvide(di.Default, func() (*template.Template, error) {
		return http.NewPageTemplate()
	})

	cli.New(
		cli.WithName("textenc"),
		cli.WithUsage("Text encoding converter"),
		cli.WithDescription("Encode text as UTF-8, ASCII codes, Base64, hex, binary or URL escapes from the command line, an interactive shell or a web page"),
		cli.WithConfigTools(
			conf,
			config.YamlUnmarshaler,
			config.YamlMarshaler,
		),
		cli.WithLogTools(conf.LogConfig),
		cli.WithEncodingTools(conf.EncodingConfig),
		cli.WithHttpTools(
			conf.HttpConfig,
			http.WithProvide(di.Default),
			http.WithInvoke(
				di.Default,
				func(h *http.Http, t *template.Template) {
					http.Routes(h, t, conf.Encoding.Kind())
				},
			),
		),
	).RunAndExitOnError()
}
