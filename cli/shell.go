package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/corpix/textenc/converter"
	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/errors"
	"github.com/corpix/textenc/log"
)

const (
	ShellPrompt      = "textenc> "
	ShellMaxLineSize = 16 << 20
)

const shellHelp = `:enc KIND   select encoding (%s)
:convert    encode current input
:copy       copy output to terminal clipboard
:clear      clear input and output
:swap       swap input and output
:show       print current state
:help       print this message
:quit       leave the shell
::TEXT      set input to :TEXT
any other line replaces the input
`

var ErrShellQuit = errors.New("quit")

// Shell is a line oriented front end for the converter.
type Shell struct {
	Reader    io.Reader
	Writer    io.Writer
	Converter *converter.Converter
	Clipboard converter.Clipboard
	Prompt    bool
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.Writer, format, args...)
}

func (s *Shell) notice(n converter.Notice) {
	if n.Destructive() {
		s.printf("! %s\n", n.Title)
		return
	}
	s.printf("%s\n", n.Title)
}

func (s *Shell) show() {
	info := s.Converter.Info()
	valid := "valid"
	if !s.Converter.Valid {
		valid = "invalid"
	}

	s.printf("encoding: %s (%s)\n", s.Converter.Encoding, info.DisplayName)
	s.printf("input:    %s [%s]\n", s.Converter.Input, valid)
	s.printf("output:   %s\n", s.Converter.Output)
}

func (s *Shell) input(text string) {
	s.Converter.SetInput(text)
	if !s.Converter.Valid {
		s.printf("! %s\n", converter.NoticeInvalidInput)
	}
}

func (s *Shell) Exec(line string) error {
	switch {
	case strings.HasPrefix(line, "::"):
		s.input(line[1:])
		return nil
	case !strings.HasPrefix(line, ":"):
		s.input(line)
		return nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case ":enc", ":encoding":
		if len(fields) < 2 {
			s.printf("%s\n", s.Converter.Encoding)
			return nil
		}
		kind, err := encoding.ParseKind(fields[1])
		if err != nil {
			s.printf("! %s\n", err)
			return nil
		}
		s.Converter.SetEncoding(kind)
		s.printf("%s: %s\n", s.Converter.Info().DisplayName, s.Converter.Info().Description)
	case ":convert", ":c":
		n := s.Converter.Convert()
		if !n.Destructive() {
			s.printf("%s\n", s.Converter.Output)
		}
		s.notice(n)
	case ":copy":
		s.notice(s.Converter.Copy(s.Clipboard))
	case ":clear":
		s.notice(s.Converter.Clear())
	case ":swap":
		s.notice(s.Converter.Swap())
	case ":show":
		s.show()
	case ":help", ":h":
		kinds := encoding.Kinds()
		names := make([]string, len(kinds))
		for n, k := range kinds {
			names[n] = string(k)
		}
		s.printf(shellHelp, strings.Join(names, ", "))
	case ":quit", ":q", ":exit":
		return ErrShellQuit
	default:
		s.printf("! unknown command %q, type :help\n", fields[0])
	}
	return nil
}

func (s *Shell) Run() error {
	scanner := bufio.NewScanner(s.Reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), ShellMaxLineSize)
	for {
		if s.Prompt {
			s.printf("%s", ShellPrompt)
		}
		if !scanner.Scan() {
			break
		}

		err := s.Exec(scanner.Text())
		if errors.Is(err, ErrShellQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	err := scanner.Err()
	if err != nil {
		return errors.Wrap(err, "failed to read shell input")
	}
	log.Debug().Msg("shell input closed")

	return nil
}

func NewShell(r io.Reader, w io.Writer, kind encoding.Kind) *Shell {
	prompt := false
	if f, ok := r.(*os.File); ok {
		prompt = isatty.IsTerminal(f.Fd())
	}

	return &Shell{
		Reader:    r,
		Writer:    w,
		Converter: converter.New(converter.WithEncoding(kind)),
		Clipboard: converter.NewOSC52Clipboard(w),
		Prompt:    prompt,
	}
}
