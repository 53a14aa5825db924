package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpix/textenc/config"
	"github.com/corpix/textenc/converter"
	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/errors"

	cli "github.com/urfave/cli/v2"
)

func run(t *testing.T, preselect string, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	conf := &config.EncodingConfig{Preselect: preselect}
	conf.Default()

	app := New(
		WithName("textenc"),
		WithEncodingTools(func() *config.EncodingConfig { return conf }),
		WithWriter(buf),
		WithReader(strings.NewReader(stdin)),
		WithExitErrHandler(func(*Context, error) {}),
	)
	err := app.Run(append([]string{"textenc"}, args...))

	return buf.String(), err
}

func exitCode(err error) int {
	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	return 0
}

func TestEncode(t *testing.T) {
	samples := []struct {
		args   []string
		stdin  string
		output string
	}{
		{args: []string{"encode", "-e", "hex", "AB"}, output: "4142\n"},
		{args: []string{"encode", "--encoding", "binary", "AB"}, output: "01000001 01000010\n"},
		{args: []string{"encode", "-e", "url", "hello", "world"}, output: "hello%20world\n"},
		{args: []string{"encode", "-e", "BASE64"}, stdin: "hello\n", output: "aGVsbG8=\n"},
		{args: []string{"enc", "-e", "ascii", "é"}, output: "233\n"},
		{args: []string{"encode", "A"}, output: "65\n"},
	}

	for _, sample := range samples {
		t.Run(strings.Join(sample.args, " "), func(t *testing.T) {
			output, err := run(t, "ascii", sample.stdin, sample.args...)
			require.NoError(t, err)
			assert.Equal(t, sample.output, output)
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	_, err := run(t, "", "", "encode", "-e", "rot13", "hello")
	assert.True(t, errors.Is(err, encoding.ErrUnsupportedEncoding))
}

func TestEncodeStrict(t *testing.T) {
	output, err := run(t, "", "", "encode", "--strict", "-e", "ascii", "héllo")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, ErrInvalidInput.Error(), err.Error())
	assert.Empty(t, output)

	output, err = run(t, "", "", "encode", "--strict", "-e", "ascii", "hello")
	require.NoError(t, err)
	assert.Equal(t, "104 101 108 108 111\n", output)
}

func TestValidate(t *testing.T) {
	output, err := run(t, "ascii", "", "validate", "hello")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", output)

	output, err = run(t, "ascii", "héllo\n", "validate")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, "invalid\n", output)

	output, err = run(t, "ascii", "", "validate", "-e", "utf8", "héllo")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", output)
}

func TestDescribe(t *testing.T) {
	output, err := run(t, "", "", "describe", "base64")
	require.NoError(t, err)
	assert.Equal(t, "Base64: Binary-to-text encoding scheme that represents binary data in ASCII format.\n", output)

	output, err = run(t, "", "", "describe", "bogus")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "UTF-8: "))

	output, err = run(t, "hex", "", "describe")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "Hex: "))
}

func TestEncodings(t *testing.T) {
	output, err := run(t, "", "", "encodings", "--format", "json")
	require.NoError(t, err)

	entries := []map[string]string{}
	require.NoError(t, json.Unmarshal([]byte(output), &entries))
	require.Len(t, entries, len(encoding.Kinds()))
	assert.Equal(t, "utf8", entries[0]["kind"])
	assert.Equal(t, "URL Encoding", entries[5]["display-name"])

	output, err = run(t, "", "", "encodings", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, output, "kind: base64")
	assert.Contains(t, output, "display-name: URL Encoding")

	output, err = run(t, "", "", "ls")
	require.NoError(t, err)
	assert.Contains(t, output, "DESCRIPTION")
	for _, k := range encoding.Kinds() {
		assert.Contains(t, output, encoding.Describe(k).DisplayName)
	}

	_, err = run(t, "", "", "encodings", "-f", "xml")
	assert.Error(t, err)
}

func TestShell(t *testing.T) {
	stdin := strings.Join([]string{
		"hello",
		":enc hex",
		":convert",
		":copy",
		":swap",
		":show",
		":clear",
		":copy",
		":enc rot13",
		":bogus",
		":quit",
		"never read",
	}, "\n")

	output, err := run(t, "", stdin, "shell")
	require.NoError(t, err)

	assert.Contains(t, output, "Hex: Hexadecimal representation of text (base 16 number system).\n")
	assert.Contains(t, output, "68656c6c6f\nText converted successfully!\n")
	assert.Contains(t, output, "\x1b]52;c;Njg2NTZjNmM2Zg==\aCopied to clipboard!\n")
	assert.Contains(t, output, "Input and output swapped\n")
	assert.Contains(t, output, "input:    68656c6c6f [valid]\n")
	assert.Contains(t, output, "output:   hello\n")
	assert.Contains(t, output, "All fields cleared\n")
	assert.Contains(t, output, "! Nothing to copy\n")
	assert.Contains(t, output, "unsupported encoding")
	assert.Contains(t, output, `! unknown command ":bogus"`)
	assert.NotContains(t, output, ShellPrompt)
}

func TestShellInvalidInput(t *testing.T) {
	output, err := run(t, "ascii", "héllo\n:convert\n", "shell")
	require.NoError(t, err)
	assert.Equal(
		t,
		"! "+converter.NoticeInvalidInput+"\n! "+converter.NoticeInvalidInput+"\n",
		output,
	)
}

func TestConfigShowDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	app := New(
		WithName("textenc"),
		WithConfigTools(&config.BaseConfig{}, config.YamlUnmarshaler, config.YamlMarshaler),
		WithWriter(buf),
		WithExitErrHandler(func(*Context, error) {}),
	)

	require.NoError(t, app.Run([]string{"textenc", "config", "show-default"}))
	assert.Contains(t, buf.String(), "preselect: utf8")
}

func TestShellLongLine(t *testing.T) {
	long := strings.Repeat("a", 70000)

	output, err := run(t, "", long+"\n:convert\n", "shell")
	require.NoError(t, err)
	assert.Equal(t, long+"\n"+converter.NoticeConverted+"\n", output)
}

func TestShellEscapedInput(t *testing.T) {
	output, err := run(t, "", "::)\n:enc hex\n:convert\n:show\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, output, "3a29\n"+converter.NoticeConverted+"\n")
	assert.Contains(t, output, "input:    :) [valid]\n")
	assert.NotContains(t, output, "unknown command")
}

func TestEncodeWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("encoding:\n  preselect: hex\n"), 0o600))

	buf := &bytes.Buffer{}
	conf := &config.BaseConfig{}
	app := New(
		WithName("textenc"),
		WithConfigTools(conf, config.YamlUnmarshaler, config.YamlMarshaler),
		WithEncodingTools(conf.EncodingConfig),
		WithWriter(buf),
		WithExitErrHandler(func(*Context, error) {}),
	)

	require.NoError(t, app.Run([]string{"textenc", "-c", path, "encode", "AB"}))
	assert.Equal(t, "4142\n", buf.String())
}
