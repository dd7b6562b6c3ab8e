package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/msto63/cmdline/foundation/cmdline"
	"github.com/msto63/cmdline/internal/history/store"
	"github.com/msto63/cmdline/internal/render"
	"github.com/msto63/cmdline/pkg/core/logging"
	"github.com/msto63/cmdline/pkg/core/version"
)

const sampleLine = `copy -mode:read "two words" /q`

// setupCLI points the CLI at a config file inside a temp directory
func setupCLI(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	content := "[general]\n" +
		"log_level = \"error\"\n" +
		"data_dir = \"" + filepath.ToSlash(dir) + "\"\n\n" +
		"[history]\n" +
		"path = \"" + filepath.ToSlash(filepath.Join(dir, "history.db")) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CMDLINE_CONFIG", cfgPath)
	return dir
}

// resetFlags restores every flag of every command to its default
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI and returns stdout, stderr and the exit status
func run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	code := Execute()
	return stdout.String(), stderr.String(), code
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "args extended",
			args: []string{"parse", "-x", "-o", "plain", "--", sampleLine},
			want: "copy\n-mode:read\n\"two words\"\n-q\n",
		},
		{
			name: "args joined",
			args: []string{"parse", "-o", "plain", "--", "a", "/b"},
			want: "a\n-b\n",
		},
		{
			name: "discard first",
			args: []string{"parse", "--discard-first", "-o", "plain", "--", "prog.exe", "file"},
			want: "file\n",
		},
		{
			name:  "stdin line by line",
			stdin: "a b\n-c\n",
			args:  []string{"parse", "-o", "plain"},
			want:  "a\nb\n-c\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)

			stdout, stderr, code := run(t, tt.stdin, tt.args...)
			if code != 0 {
				t.Fatalf("exit status = %d, stderr = %q", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestParse_JSON(t *testing.T) {
	setupCLI(t)

	stdout, stderr, code := run(t, "", "parse", "-x", "-o", "json", "--", "-mode:read")
	if code != 0 {
		t.Fatalf("exit status = %d, stderr = %q", code, stderr)
	}

	var args cmdline.Arguments
	if err := json.Unmarshal([]byte(stdout), &args); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if len(args) != 1 || !args[0].IsFlag() || args[0].Value() != "mode" {
		t.Fatalf("unexpected arguments: %v", args)
	}
	if ext, ok := args[0].Extended(); !ok || ext != "read" {
		t.Errorf("Extended() = %q, %v, want read, true", ext, ok)
	}
}

func TestParse_UnknownFormat(t *testing.T) {
	setupCLI(t)

	_, stderr, code := run(t, "", "parse", "-o", "xml", "--", "a")
	if code != 1 {
		t.Fatalf("exit status = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr, "Fehler: ") {
		t.Errorf("stderr = %q, want error message", stderr)
	}
}

func TestJoinArgs_Hint(t *testing.T) {
	const hint = "quote the whole line"

	tests := []struct {
		name     string
		args     []string
		wantOut  string
		wantHint bool
	}{
		{"single quoted line", []string{"--verbose", "parse", "-o", "plain", "--", `a "b c"`}, "a\n\"b c\"\n", false},
		{"shell words", []string{"--verbose", "parse", "-o", "plain", "--", "a", "b c"}, "a\nb\nc\n", true},
		{"query shell words", []string{"--verbose", "query", "--has", "b", "--", "a", "b"}, "true\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)

			stdout, stderr, code := run(t, "", tt.args...)
			if code != 0 {
				t.Fatalf("exit status = %d, stderr = %q", code, stderr)
			}
			if stdout != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantOut)
			}
			if got := strings.Contains(stderr, hint); got != tt.wantHint {
				t.Errorf("hint logged = %v, want %v (stderr %q)", got, tt.wantHint, stderr)
			}
		})
	}
}

func TestServe_InvalidGRPCPort(t *testing.T) {
	setupCLI(t)

	_, stderr, code := run(t, "", "serve", "--grpc-port", "70000")
	if code != 1 {
		t.Fatalf("exit status = %d, want 1", code)
	}
	if !strings.Contains(stderr, "grpc port 70000 out of range") {
		t.Errorf("stderr = %q, want range error", stderr)
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOut  string
		wantCode int
	}{
		{"has flag", []string{"query", "--has-flag", "v", "--", "tool /v input.txt"}, "true\n", 0},
		{"has flag ignore case", []string{"query", "-i", "--has-flag", "V", "--", "tool /v"}, "true\n", 0},
		{"missing flag", []string{"query", "--has-flag", "x", "--", "tool /v"}, "false\n", 1},
		{"argument is not a flag", []string{"query", "--has", "v", "--", "tool /v"}, "false\n", 1},
		{"get flag", []string{"query", "-x", "-o", "plain", "--get-flag", "mode", "--", "-mode:read"}, "-mode:read\n", 0},
		{"get argument", []string{"query", "-o", "plain", "--get", "input.txt", "--", "tool /v input.txt"}, "input.txt\n", 0},
		{"get missing", []string{"query", "--get", "nope", "--", "tool"}, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)

			stdout, stderr, code := run(t, "", tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit status = %d, want %d (stderr %q)", code, tt.wantCode, stderr)
			}
			if stdout != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantOut)
			}
			if stderr != "" {
				t.Errorf("stderr = %q, want empty", stderr)
			}
		})
	}
}

func TestQuery_Stdin(t *testing.T) {
	setupCLI(t)

	stdout, _, code := run(t, "tool /v\r\n", "query", "--has-flag", "v")
	if code != 0 || stdout != "true\n" {
		t.Errorf("got %q, exit %d", stdout, code)
	}
}

func TestQuery_RequiresOneMode(t *testing.T) {
	setupCLI(t)

	_, stderr, code := run(t, "", "query", "--", "tool")
	if code != 1 {
		t.Fatalf("exit status = %d, want 1", code)
	}
	if stderr == "" {
		t.Error("expected an error message")
	}

	_, _, code = run(t, "", "query", "--has", "a", "--has-flag", "b", "--", "tool")
	if code != 1 {
		t.Errorf("exclusive flags: exit status = %d, want 1", code)
	}
}

func TestHistory(t *testing.T) {
	setupCLI(t)

	for _, line := range []string{"first /a", "second /b"} {
		if _, stderr, code := run(t, "", "parse", "--", line); code != 0 {
			t.Fatalf("parse %q failed: %s", line, stderr)
		}
	}
	if _, _, code := run(t, "", "parse", "--no-history", "--", "ignored"); code != 0 {
		t.Fatal("parse --no-history failed")
	}

	stdout, stderr, code := run(t, "", "history", "list", "-o", "json")
	if code != 0 {
		t.Fatalf("history list failed: %s", stderr)
	}
	var entries []store.Entry
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].CommandLine != "second /b" || entries[0].Source != store.SourceCLI {
		t.Errorf("newest entry = %+v", entries[0])
	}

	stdout, _, code = run(t, "", "history", "list", "-o", "plain", "--contains", "first")
	if code != 0 || !strings.Contains(stdout, "\tcli\tfirst /a") || strings.Contains(stdout, "second") {
		t.Errorf("filtered list = %q (exit %d)", stdout, code)
	}

	stdout, _, code = run(t, "", "history", "show", "-o", "json", entries[1].ID)
	if code != 0 {
		t.Fatalf("history show failed")
	}
	var shown store.Entry
	if err := json.Unmarshal([]byte(stdout), &shown); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if shown.ID != entries[1].ID || len(shown.Arguments) != 2 {
		t.Errorf("shown entry = %+v", shown)
	}

	if _, stderr, code = run(t, "", "history", "show", "does-not-exist"); code != 1 || stderr == "" {
		t.Errorf("show unknown id: exit %d, stderr %q", code, stderr)
	}

	if _, _, code = run(t, "", "history", "clear"); code != 1 {
		t.Errorf("clear without --yes: exit %d, want 1", code)
	}

	stdout, stderr, code = run(t, "", "history", "clear", "--yes")
	if code != 0 || stdout != "2 Einträge gelöscht\n" {
		t.Errorf("clear = %q (exit %d)", stdout, code)
	}
	if !strings.Contains(stderr, "History cleared") {
		t.Errorf("clear not audited at log level error: stderr %q", stderr)
	}

	stdout, _, _ = run(t, "", "history", "list", "-o", "json")
	if strings.TrimSpace(stdout) != "[]" {
		t.Errorf("list after clear = %q", stdout)
	}
}

func TestHistory_Prune(t *testing.T) {
	setupCLI(t)

	if _, _, code := run(t, "", "parse", "--", "recent"); code != 0 {
		t.Fatal("parse failed")
	}

	stdout, _, code := run(t, "", "history", "prune", "--older-than", "1h")
	if code != 0 || stdout != "0 Einträge gelöscht\n" {
		t.Errorf("prune = %q (exit %d)", stdout, code)
	}

	if _, _, code := run(t, "", "history", "prune", "--older-than", "0s"); code != 1 {
		t.Errorf("prune with zero age: exit %d, want 1", code)
	}
}

func TestVersion(t *testing.T) {
	setupCLI(t)

	stdout, _, code := run(t, "", "version")
	if code != 0 || !strings.HasPrefix(stdout, "cmdline v"+version.Platform+"\n") {
		t.Errorf("version = %q (exit %d)", stdout, code)
	}

	stdout, _, code = run(t, "", "version", "-o", "json")
	if code != 0 {
		t.Fatal("version -o json failed")
	}
	var info version.Info
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if info.Version != version.Platform || info.GoVersion == "" {
		t.Errorf("info = %+v", info)
	}
}

func TestREPL_Handle(t *testing.T) {
	renderer, err := render.New("plain")
	if err != nil {
		t.Fatal(err)
	}
	history := store.NewMemoryHistoryStore()
	var out bytes.Buffer
	session := &repl{
		renderer: renderer,
		recorder: store.NewRecorder(history, 0),
		logger: logging.Wrap(logging.NewLogger(logging.LoggerConfig{
			ServiceName: "repl-test",
			Level:       "error",
			Output:      io.Discard,
		})),
		out: &out,
	}
	ctx := context.Background()

	steps := []struct {
		line     string
		want     string
		wantQuit bool
	}{
		{"", "", false},
		{"-mode:read", "-\"mode:read\"\n", false},
		{":x", "Erweiterte Argumente: an\n", false},
		{"-mode:read", "-mode:read\n", false},
		{":f", "Erstes Token verwerfen: an\n", false},
		{"prog a", "a\n", false},
		{":q", "", true},
	}

	for _, s := range steps {
		out.Reset()
		quit, err := session.handle(ctx, s.line)
		if err != nil {
			t.Fatalf("handle(%q) error: %v", s.line, err)
		}
		if quit != s.wantQuit {
			t.Errorf("handle(%q) quit = %v, want %v", s.line, quit, s.wantQuit)
		}
		if out.String() != s.want {
			t.Errorf("handle(%q) output = %q, want %q", s.line, out.String(), s.want)
		}
	}

	if n, _ := history.Count(ctx); n != 3 {
		t.Errorf("recorded %d lines, want 3", n)
	}

	entries, _ := history.List(ctx, store.Filter{Source: store.SourceREPL})
	if len(entries) != 3 || !entries[0].Options.DiscardFirstToken {
		t.Errorf("newest REPL entry should carry the toggled options: %+v", entries)
	}
}

func TestComplete(t *testing.T) {
	if got := complete(":"); len(got) != len(replCommands) {
		t.Errorf("complete(\":\") = %v", got)
	}
	if got := complete(":q"); len(got) != 1 || got[0] != ":q" {
		t.Errorf("complete(\":q\") = %v", got)
	}
	if got := complete("abc"); len(got) != 0 {
		t.Errorf("complete(\"abc\") = %v", got)
	}
}
