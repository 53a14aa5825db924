package log

import (
	"io"
	stdlog "log"
	"os"

	console "github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/corpix/textenc/errors"
)

type (
	Level   = zerolog.Level
	Logger  = zerolog.Logger
	Event   = zerolog.Event
	Context = zerolog.Context

	Option  func(*options)
	options struct {
		output  io.Writer
		console *bool
	}
)

const (
	LevelTrace = zerolog.TraceLevel
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
	LevelPanic = zerolog.PanicLevel
	LevelFatal = zerolog.FatalLevel
)

// Default is the process logger, replaced by Init.
var Default = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(LevelInfo)

func Debug() *Event                                { return Default.Debug() }
func Err(err error) *Event                         { return Default.Err(err) }
func Error() *Event                                { return Default.Error() }
func Fatal() *Event                                { return Default.Fatal() }
func Info() *Event                                 { return Default.Info() }
func Log() *Event                                  { return Default.Log() }
func Panic() *Event                                { return Default.Panic() }
func Print(v ...interface{})                       { Default.Print(v...) }
func Printf(format string, v ...interface{})       { Default.Printf(format, v...) }
func Trace() *Event                                { return Default.Trace() }
func UpdateContext(update func(c Context) Context) { Default.UpdateContext(update) }
func Warn() *Event                                 { return Default.Warn() }
func WithLevel(level Level) *Event                 { return Default.WithLevel(level) }
func With() Context                                { return Default.With() }

// Std adapts l for APIs which want the standard library logger.
func Std(l Logger) *stdlog.Logger {
	return stdlog.New(l, "", 0)
}

//

type Config struct {
	Level string `yaml:"level"`
}

func (c *Config) Default() {
	if c.Level == "" {
		c.Level = LevelInfo.String()
	}
}

func (c *Config) Validate() error {
	_, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return errors.Wrapf(err, "invalid logging level %q", c.Level)
	}
	return nil
}

//

func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

func WithConsole(enable bool) Option {
	return func(o *options) { o.console = &enable }
}

func New(level string, opts ...Option) (Logger, error) {
	var (
		o = &options{output: os.Stderr}

		log      Logger
		logLevel Level
		err      error
		w        io.Writer
	)

	for _, opt := range opts {
		opt(o)
	}

	if o.console == nil {
		isConsole := false
		if f, ok := o.output.(*os.File); ok {
			isConsole = console.IsTerminal(f.Fd())
		}
		o.console = &isConsole
	}

	if *o.console {
		w = zerolog.ConsoleWriter{Out: o.output}
	} else {
		w = o.output
	}

	if level == "" {
		level = LevelInfo.String()
	}
	logLevel, err = zerolog.ParseLevel(level)
	if err != nil {
		return log, errors.Wrapf(err, "failed to parse logging level %q", level)
	}

	log = zerolog.New(w).With().
		Timestamp().Logger().
		Level(logLevel)

	return log, nil
}

func Init(level string, opts ...Option) error {
	l, err := New(level, opts...)
	if err != nil {
		return err
	}

	Default = l

	return nil
}
