package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filterkata/filter/internal/config"
	"github.com/filterkata/filter/internal/seqio"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")

	cmd := cmdRoot()
	cmd.AddCommand(cmdSchema())

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootFilter(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "greater than two",
			stdin: `[1, 2, 3]`,
			args:  []string{"--where", "> 2"},
			want:  "[\n  3\n]\n",
		},
		{
			name:  "default keeps truthy",
			stdin: `[0, 1, "", null, "x", false]`,
			want:  "[\n  1,\n  \"x\"\n]\n",
		},
		{
			name:  "yaml output",
			stdin: "- a\n- bb\n- ccc\n",
			args:  []string{"-w", "!= bb", "-o", "yaml"},
			want:  "- a\n- ccc\n",
		},
		{
			name:  "all expressions must hold",
			stdin: `[1, 2, 3, 4, 5]`,
			args:  []string{"-w", "> 1", "-w", "< 5"},
			want:  "[\n  2,\n  3,\n  4\n]\n",
		},
		{
			name:  "any expression",
			stdin: `[1, 2, 3, 4, 5]`,
			args:  []string{"-w", "< 2", "-w", "> 4", "--any"},
			want:  "[\n  1,\n  5\n]\n",
		},
		{
			name:  "negated",
			stdin: `[1, 2, 3]`,
			args:  []string{"-w", "> 2", "--not"},
			want:  "[\n  1,\n  2\n]\n",
		},
		{
			name:  "objects by path",
			stdin: `[{"name": "bob", "age": 41}, {"name": "eve", "age": 17}]`,
			args:  []string{"-w", ".age >= 21", "-w", ".name ~ ^b"},
			want:  "[\n  {\n    \"age\": 41,\n    \"name\": \"bob\"\n  }\n]\n",
		},
		{
			name:  "nothing kept",
			stdin: `[1, 2, 3]`,
			args:  []string{"-w", "> 10"},
			want:  "[]\n",
		},
		{
			name:  "empty stdin",
			stdin: "",
			want:  "[]\n",
		},
		{
			name:  "explicit stdin",
			stdin: `[1, 2]`,
			args:  []string{"-", "-w", "== 2", "-i", "json"},
			want:  "[\n  2\n]\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := run(t, test.stdin, test.args...)
			require.NoError(t, r.err)
			require.Equal(t, test.want, r.stdout)
		})
	}
}

func TestRootFileInput(t *testing.T) {
	t.Run("yaml by extension", func(t *testing.T) {
		path := writeFile(t, "items.yaml", "- 1\n- 4\n- 9\n")
		r := run(t, "", path, "-w", ">= 4")
		require.NoError(t, r.err)
		require.Equal(t, "[\n  4,\n  9\n]\n", r.stdout)
	})

	t.Run("json by extension", func(t *testing.T) {
		path := writeFile(t, "items.json", `[1.5, 2.5]`)
		r := run(t, "", path, "-w", "< 2", "-o", "yaml")
		require.NoError(t, r.err)
		require.Equal(t, "- 1.5\n", r.stdout)
	})

	t.Run("missing file", func(t *testing.T) {
		r := run(t, "", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, r.err)
		require.Contains(t, r.err.Error(), "failed to open input")
	})
}

func TestRootErrors(t *testing.T) {
	t.Run("all bad expressions reported", func(t *testing.T) {
		r := run(t, `[1]`, "-w", "between 1", "-w", "> 1", "-w", "~ (")
		require.Error(t, r.err)
		require.Contains(t, r.err.Error(), "where[0]")
		require.Contains(t, r.err.Error(), "where[2]")
		require.Empty(t, r.stdout)
	})

	t.Run("not a sequence", func(t *testing.T) {
		r := run(t, `{"a": 1}`)
		require.True(t, errors.Is(r.err, seqio.ErrNotSequence))
	})

	t.Run("unknown input format", func(t *testing.T) {
		r := run(t, `[1]`, "-i", "toml")
		require.True(t, errors.Is(r.err, seqio.ErrUnknownFormat))
	})

	t.Run("unknown output format", func(t *testing.T) {
		r := run(t, `[1]`, "-o", "csv")
		require.True(t, errors.Is(r.err, seqio.ErrUnknownFormat))
	})

	t.Run("bad log level", func(t *testing.T) {
		r := run(t, `[1]`, "--log-level", "loud")
		require.Error(t, r.err)
		require.Contains(t, r.err.Error(), "invalid log level")
	})

	t.Run("too many args", func(t *testing.T) {
		r := run(t, "", "a.yaml", "b.yaml")
		require.Error(t, r.err)
	})

	t.Run("bad config", func(t *testing.T) {
		path := writeFile(t, "filter.yaml", "output:\n  format: csv\n")
		r := run(t, `[1]`, "--config", path)
		require.Error(t, r.err)
		require.Contains(t, r.err.Error(), "invalid config")
	})
}

func TestRootConfigAndLogging(t *testing.T) {
	t.Run("config output format", func(t *testing.T) {
		path := writeFile(t, "filter.yaml", "logging:\n  type: none\noutput:\n  format: yaml\n")
		r := run(t, `[1, 2, 3]`, "--config", path, "-w", "> 1")
		require.NoError(t, r.err)
		require.Equal(t, "- 2\n- 3\n", r.stdout)
	})

	t.Run("flag overrides config format", func(t *testing.T) {
		path := writeFile(t, "filter.yaml", "output:\n  format: yaml\n")
		r := run(t, `[1, 2, 3]`, "--config", path, "-w", "> 2", "-o", "json")
		require.NoError(t, r.err)
		require.Equal(t, "[\n  3\n]\n", r.stdout)
	})

	t.Run("summary logged at info", func(t *testing.T) {
		path := writeFile(t, "filter.yaml", "logging:\n  type: json\n  level: info\n")
		r := run(t, `[1, 2, 3]`, "--config", path, "-w", "> 2")
		require.NoError(t, r.err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(r.stderr)), &entry))
		require.Equal(t, "filtered sequence", entry["msg"])
		require.Equal(t, "1", entry["kept"])
		require.Equal(t, "3", entry["total"])
		require.Equal(t, "cli", entry["component"])
		require.Equal(t, "stdin", entry["input"])
	})

	t.Run("every element logged at debug", func(t *testing.T) {
		path := writeFile(t, "filter.yaml", "logging:\n  type: text\n")
		r := run(t, `[1, 2, 3]`, "--config", path, "--log-level", "debug", "-w", "> 2")
		require.NoError(t, r.err)
		require.Equal(t, 3, strings.Count(r.stderr, "evaluated element"))
		require.Contains(t, r.stderr, "index=0 keep=false")
		require.Contains(t, r.stderr, "index=2 keep=true")
	})

	t.Run("logging to stdout", func(t *testing.T) {
		path := writeFile(t, "filter.yaml", "logging:\n  type: text\n  level: info\n  to: stdout\noutput:\n  format: yaml\n")
		r := run(t, `[1, 2, 3]`, "--config", path, "-w", "> 2")
		require.NoError(t, r.err)
		require.Empty(t, r.stderr)
		require.Contains(t, r.stdout, "msg=\"filtered sequence\"")
		require.True(t, strings.HasSuffix(r.stdout, "- 3\n"))
	})

	t.Run("loggers do not leak between runs", func(t *testing.T) {
		path := writeFile(t, "filter.yaml", "logging:\n  type: text\n  level: info\n")
		first := run(t, `[1]`, "--config", path)
		require.NoError(t, first.err)
		require.Contains(t, first.stderr, "filtered sequence")

		second := run(t, `[1]`, "--log-level", "error")
		require.NoError(t, second.err)
		require.Empty(t, second.stderr)
	})

	t.Run("default logging quiet below warn", func(t *testing.T) {
		r := run(t, `[1, 2, 3]`, "-w", "> 2")
		require.NoError(t, r.err)
		require.Empty(t, r.stderr)
	})
}

func TestSchemaCommand(t *testing.T) {
	r := run(t, "", "schema")
	require.NoError(t, r.err)

	var s map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &s))
	require.Equal(t, config.SchemaId, s["$id"])
}

func TestFileNamedAfterSubcommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema"), []byte("[1, 5]\n"), 0o644))
	t.Chdir(dir)

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "relative", arg: "./schema", want: "[\n  5\n]\n"},
		{name: "absolute", arg: filepath.Join(dir, "schema"), want: "[\n  5\n]\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := run(t, "", test.arg, "-w", "> 1")
			require.NoError(t, r.err)
			require.Equal(t, test.want, r.stdout)
		})
	}

	t.Run("bare name runs the subcommand", func(t *testing.T) {
		r := run(t, "", "schema")
		require.NoError(t, r.err)
		require.Contains(t, r.stdout, config.SchemaId)
	})
}
