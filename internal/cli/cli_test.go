package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/depmap/pkg/errors"
)

const testModule = "example.com/mod"

// testStream is captured `go list -deps -json` output: a imports b and c,
// b imports c, and a also pulls in one third-party and one stdlib package.
const testStream = `{"ImportPath":"example.com/mod/a","Deps":["example.com/mod/b","example.com/mod/c","fmt","github.com/x/y"]}
{"ImportPath":"example.com/mod/b","Deps":["example.com/mod/c","fmt"]}
{"ImportPath":"example.com/mod/c"}
{"ImportPath":"github.com/x/y","Deps":["fmt"]}
{"ImportPath":"fmt","Standard":true}
`

type cliResult struct {
	stdout string
	status string
	logs   string
}

// runCLI executes the root command with args and returns what it printed.
// Status output is captured by swapping uiOut for the duration of the test.
func runCLI(t *testing.T, stdin string, args ...string) (cliResult, error) {
	t.Helper()

	var stdout, status, logs bytes.Buffer
	prev := uiOut
	uiOut = &status
	t.Cleanup(func() { uiOut = prev })

	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&logs)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), status: status.String(), logs: logs.String()}, err
}

// writeInput stores testStream in a temp dir and returns the dir and file path.
func writeInput(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "golist.json")
	if err := os.WriteFile(path, []byte(testStream), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"gen", "graph", "browse", "serve", "export", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if cmd, _, err := root.Find([]string{"generate"}); err != nil || cmd.Name() != "gen" {
		t.Errorf("alias generate should resolve to gen")
	}
	if cmd, _, err := root.Find([]string{"export", "neo4j"}); err != nil || cmd.Name() != "neo4j" {
		t.Errorf("export neo4j not registered")
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for _, name := range []string{"config", "module", "dir", "input"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag --%s missing", name)
		}
	}
	if f := root.PersistentFlags().ShorthandLookup("m"); f == nil || f.Name != "module" {
		t.Error("-m should be shorthand for --module")
	}
}

func TestVersion(t *testing.T) {
	res, err := runCLI(t, "", "--version")
	if err != nil {
		t.Fatalf("--version error = %v", err)
	}
	if !strings.HasPrefix(res.stdout, "depmap version ") {
		t.Errorf("--version output = %q", res.stdout)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug output missing after SetLogLevel: %q", buf.String())
	}
}

func TestWriteOutputStdout(t *testing.T) {
	var out bytes.Buffer
	cmd := New(&bytes.Buffer{}, LogInfo).RootCommand()
	cmd.SetOut(&out)

	for _, path := range []string{"", "-"} {
		out.Reset()
		wrote, err := writeOutput(cmd, path, []byte("data"))
		if err != nil {
			t.Fatalf("writeOutput(%q) error = %v", path, err)
		}
		if wrote {
			t.Errorf("writeOutput(%q) reported a file write", path)
		}
		if out.String() != "data" {
			t.Errorf("stdout = %q, want %q", out.String(), "data")
		}
	}
}

func TestWriteOutputCreatesDirs(t *testing.T) {
	cmd := New(&bytes.Buffer{}, LogInfo).RootCommand()
	path := filepath.Join(t.TempDir(), "nested", "deep", "out.md")

	wrote, err := writeOutput(cmd, path, []byte("data"))
	if err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	if !wrote {
		t.Error("writeOutput() should report a file write")
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "data" {
		t.Errorf("file = %q, want %q", got, "data")
	}
}

func TestMissingInputFile(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "", "gen", "--dir", dir, "-m", testModule, "--input", filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestConfigFileInvalid(t *testing.T) {
	dir, input := writeInput(t)
	cfgPath := filepath.Join(dir, ".depmap.toml")
	if err := os.WriteFile(cfgPath, []byte("format = \"yaml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "", "gen", "--dir", dir, "--input", input, "-m", testModule)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}
