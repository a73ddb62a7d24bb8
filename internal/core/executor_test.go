package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeMCP struct {
	result string
	err    error
	server string
	name   string
	args   map[string]any
}

func (f *fakeMCP) CallTool(ctx context.Context, server, name string, arguments map[string]any) (string, error) {
	f.server, f.name, f.args = server, name, arguments
	return f.result, f.err
}

func TestExecuteRunCmd(t *testing.T) {
	e := NewExecutor(false, Screens{}, nil)
	e.Shell = "sh"

	res := e.Execute(context.Background(), ToolCall{Name: ToolRunCmd, Command: "echo hello"})

	if res.ExitCode != 0 || !res.Success {
		t.Fatalf("exit code = %d, success = %v, want 0/true", res.ExitCode, res.Success)
	}
	if res.Stdout != "hello\n" {
		t.Fatalf("stdout = %q, want %q", res.Stdout, "hello\n")
	}
}

func TestExecuteRunCmdNonZeroExit(t *testing.T) {
	e := NewExecutor(false, Screens{}, nil)
	e.Shell = "sh"

	res := e.Execute(context.Background(), ToolCall{Name: ToolRunCmd, Command: "exit 3"})

	if res.ExitCode != 3 || res.Success {
		t.Fatalf("exit code = %d, success = %v, want 3/false", res.ExitCode, res.Success)
	}
}

func TestExecuteSafeModeNeverRuns(t *testing.T) {
	e := NewExecutor(true, Screens{}, nil)

	res := e.Execute(context.Background(), ToolCall{Name: ToolRunCmd, Command: "rm -rf /tmp/should-not-run"})

	if res.ExitCode != 0 {
		t.Fatalf("safe mode exit code = %d, want 0", res.ExitCode)
	}
	if _, err := os.Stat("/tmp/should-not-run"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("safe mode must never touch the filesystem")
	}
}

func TestExecuteReadWriteFile(t *testing.T) {
	e := NewExecutor(false, Screens{}, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	writeRes := e.Execute(context.Background(), ToolCall{Name: ToolWriteFile, Path: path, Content: "hi there"})
	if writeRes.ExitCode != 0 {
		t.Fatalf("write_file failed: %+v", writeRes)
	}

	readRes := e.Execute(context.Background(), ToolCall{Name: ToolReadFile, Path: path})
	if readRes.ExitCode != 0 {
		t.Fatalf("read_file failed: %+v", readRes)
	}
	if readRes.Stdout != "hi there" {
		t.Fatalf("read_file stdout = %q, want %q", readRes.Stdout, "hi there")
	}
}

func TestExecuteReadFileMissing(t *testing.T) {
	e := NewExecutor(false, Screens{}, nil)
	res := e.Execute(context.Background(), ToolCall{Name: ToolReadFile, Path: "/nonexistent/path/x"})
	if res.ExitCode == 0 {
		t.Fatalf("expected a non-zero exit code reading a missing file")
	}
}

func TestExecuteSearchFindsMatches(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("contains NEEDLE here"), 0644)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("no match here"), 0644)

	e := NewExecutor(false, Screens{}, nil)
	res := e.Execute(context.Background(), ToolCall{Name: ToolSearch, Pattern: "NEEDLE", Directory: dir})

	if res.ExitCode != 0 {
		t.Fatalf("search failed: %+v", res)
	}
	if res.Stdout == "" {
		t.Fatalf("expected search to report the matching file, got empty output")
	}
}

func TestExecuteCancelledCommand(t *testing.T) {
	e := NewExecutor(false, Screens{}, nil)
	e.Shell = "sh"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := e.Execute(ctx, ToolCall{Name: ToolRunCmd, Command: "sleep 5"})

	if res.ExitCode != -1 || res.Stderr != "cancelled" {
		t.Fatalf("cancelled result = %+v, want ExitCode=-1 Stderr=cancelled", res)
	}
}

func TestExecuteMCPDelegatesToCaller(t *testing.T) {
	fake := &fakeMCP{result: "tool output"}
	e := NewExecutor(false, Screens{}, fake)

	res := e.Execute(context.Background(), ToolCall{
		Name: ToolMCP, Server: "filesystem", ToolMethod: "read_file",
		Arguments: map[string]any{"path": "/a"},
	})

	if res.ExitCode != 0 || res.Stdout != "tool output" {
		t.Fatalf("mcp result = %+v", res)
	}
	if fake.server != "filesystem" || fake.name != "read_file" {
		t.Fatalf("mcp caller received server=%q name=%q, want filesystem/read_file", fake.server, fake.name)
	}
}

func TestExecuteMCPWithNoSubclientConfigured(t *testing.T) {
	e := NewExecutor(false, Screens{}, nil)
	res := e.Execute(context.Background(), ToolCall{Name: ToolMCP, Server: "x", ToolMethod: "y"})
	if res.ExitCode == 0 {
		t.Fatalf("expected a failure with no MCP subclient configured")
	}
}
