package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/corpix/textenc/config"
	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/errors"
	"github.com/corpix/textenc/log"

	cli "github.com/urfave/cli/v2"
)

type (
	EncodingFormat string
	encodingEntry  struct {
		Kind        encoding.Kind `json:"kind"         yaml:"kind"`
		DisplayName string        `json:"display-name" yaml:"display-name"`
		Description string        `json:"description"  yaml:"description"`
	}
)

const (
	EncodingFormatTable EncodingFormat = "table"
	EncodingFormatYaml  EncodingFormat = "yaml"
	EncodingFormatJson  EncodingFormat = "json"
)

var ErrInvalidInput = errors.New("input contains characters that cannot be encoded with the selected encoding")

func encodingFlag() *StringFlag {
	return &StringFlag{
		Name:    "encoding",
		Aliases: []string{"e"},
		Usage: fmt.Sprintf(
			"target encoding, one of: %s (default from configuration encoding.preselect)",
			kindsString(),
		),
	}
}

func kindsString() string {
	kinds := encoding.Kinds()
	names := make([]string, len(kinds))
	for n, k := range kinds {
		names[n] = string(k)
	}
	return strings.Join(names, ", ")
}

func kindFromContext(ctx *Context, cfg func() *config.EncodingConfig) (encoding.Kind, error) {
	raw := ctx.String("encoding")
	if raw == "" {
		return cfg().Kind(), nil
	}
	return encoding.ParseKind(raw)
}

// textFromContext joins arguments with spaces or reads the whole input when there are none.
func textFromContext(ctx *Context) (string, error) {
	if ctx.Args().Present() {
		return strings.Join(ctx.Args().Slice(), " "), nil
	}

	buf, err := io.ReadAll(ctx.App.Reader)
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSuffix(string(buf), "\n"), nil
}

func encodingEntries() []encodingEntry {
	kinds := encoding.Kinds()
	res := make([]encodingEntry, len(kinds))
	for n, k := range kinds {
		info := encoding.Describe(k)
		res[n] = encodingEntry{
			Kind:        k,
			DisplayName: info.DisplayName,
			Description: info.Description,
		}
	}
	return res
}

func writeEncodings(w io.Writer, format EncodingFormat) error {
	entries := encodingEntries()

	switch format {
	case EncodingFormatTable:
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"Kind", "Name", "Description"})
		for _, e := range entries {
			tw.AppendRow(table.Row{e.Kind, e.DisplayName, e.Description})
		}
		tw.Render()
		return nil
	case EncodingFormatYaml:
		buf, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = w.Write(buf)
		return err
	case EncodingFormatJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return errors.Errorf(
			"unsupported format %q, expected one of: %q",
			format, []EncodingFormat{EncodingFormatTable, EncodingFormatYaml, EncodingFormatJson},
		)
	}
}

//

func WithEncodingTools(cfg func() *config.EncodingConfig) Option {
	return WithCommands(Commands{
		&Command{
			Name:      "encode",
			Aliases:   []string{"enc"},
			Usage:     "Encode text (arguments or standard input)",
			ArgsUsage: "[text...]",
			Flags: Flags{
				encodingFlag(),
				&BoolFlag{
					Name:    "strict",
					Aliases: []string{"s"},
					Usage:   "validate input before encoding and fail when it is not representable",
				},
			},
			Action: func(ctx *Context) error {
				kind, err := kindFromContext(ctx, cfg)
				if err != nil {
					return err
				}
				text, err := textFromContext(ctx)
				if err != nil {
					return err
				}

				if ctx.Bool("strict") && !encoding.Validate(text, kind) {
					return cli.Exit(ErrInvalidInput.Error(), 1)
				}

				output, err := encoding.Encode(text, kind)
				if err != nil {
					return err
				}

				log.Debug().
					Str("encoding", string(kind)).
					Int("input", len(text)).
					Int("output", len(output)).
					Msg("encoded")

				_, err = fmt.Fprintln(ctx.App.Writer, output)
				return err
			},
		},
		&Command{
			Name:      "validate",
			Aliases:   []string{"val"},
			Usage:     "Check text could be represented in the encoding",
			ArgsUsage: "[text...]",
			Flags:     Flags{encodingFlag()},
			Action: func(ctx *Context) error {
				kind, err := kindFromContext(ctx, cfg)
				if err != nil {
					return err
				}
				text, err := textFromContext(ctx)
				if err != nil {
					return err
				}

				if !encoding.Validate(text, kind) {
					fmt.Fprintln(ctx.App.Writer, "invalid")
					return cli.Exit("", 1)
				}
				_, err = fmt.Fprintln(ctx.App.Writer, "valid")
				return err
			},
		},
		&Command{
			Name:      "describe",
			Usage:     "Show encoding display name and description",
			ArgsUsage: "<kind>",
			Action: func(ctx *Context) error {
				kind := encoding.Kind(strings.ToLower(strings.TrimSpace(ctx.Args().First())))
				if kind == "" {
					kind = cfg().Kind()
				}
				info := encoding.Describe(kind)

				_, err := fmt.Fprintf(ctx.App.Writer, "%s: %s\n", info.DisplayName, info.Description)
				return err
			},
		},
		&Command{
			Name:    "encodings",
			Aliases: []string{"ls"},
			Usage:   "List supported encodings",
			Flags: Flags{
				&StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Usage:   "output format (table, yaml, json)",
					Value:   string(EncodingFormatTable),
				},
			},
			Action: func(ctx *Context) error {
				return writeEncodings(
					ctx.App.Writer,
					EncodingFormat(strings.ToLower(ctx.String("format"))),
				)
			},
		},
		&Command{
			Name:  "shell",
			Usage: "Interactive converter, type :help for commands",
			Flags: Flags{encodingFlag()},
			Action: func(ctx *Context) error {
				kind, err := kindFromContext(ctx, cfg)
				if err != nil {
					return err
				}
				return NewShell(ctx.App.Reader, ctx.App.Writer, kind).Run()
			},
		},
	})
}
