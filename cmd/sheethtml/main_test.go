package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aerissecure/sheethtml/config"
)

func writeWorkbook(t *testing.T, dir, value string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", value)
	f.SetCellValue("Sheet1", "B1", "second")
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	f.SetCellValue("Notes", "A1", "note")

	path := filepath.Join(dir, "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	a := &app{stderr: io.Discard}
	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRoot_Stdout(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "hello")

	out, err := execute(t, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<table "))
	assert.True(t, strings.HasSuffix(out, "</table>\n"))
	assert.Contains(t, out, ">hello</td>")
	assert.NotContains(t, out, "note")
}

func TestRoot_OutputFile(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "hello")
	outPath := filepath.Join(dir, "out.html")

	stdout, err := execute(t, path, "-o", outPath, "--beautify", "--debug", "--sheet", "Notes", "--backend", "excelize")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n")
	assert.Contains(t, string(data), ">note</td>")
	assert.Contains(t, string(data), "border: 1px solid black;")
}

func TestRoot_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "hello")
	garbage := filepath.Join(dir, "garbage.xlsx")
	require.NoError(t, os.WriteFile(garbage, []byte("not a workbook"), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"missing file", []string{filepath.Join(dir, "missing.xlsx")}},
		{"directory", []string{dir}},
		{"bad backend", []string{path, "--backend", "nope"}},
		{"watch without output", []string{path, "--watch"}},
		{"too large", []string{path, "--max-file-bytes", "10"}},
		{"not a workbook", []string{garbage}},
		{"unknown sheet", []string{path, "--sheet", "Missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func testApp(t *testing.T) (*app, *test.Hook) {
	t.Helper()
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return &app{cfg: cfg, log: logger}, hook
}

func callTool(t *testing.T, a *app, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = toolConvert
	req.Params.Arguments = args
	res, err := a.handleConvert(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleConvert(t *testing.T) {
	a, _ := testApp(t)
	path := writeWorkbook(t, t.TempDir(), "from mcp")

	res := callTool(t, a, map[string]any{argPath: path})
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), ">from mcp</td>")

	res = callTool(t, a, map[string]any{argPath: path, argSheetName: "Notes", argDebug: true, argBeautify: true})
	assert.False(t, res.IsError)
	out := resultText(t, res)
	assert.Contains(t, out, ">note</td>")
	assert.Contains(t, out, "border: 1px solid black;")
	assert.Contains(t, out, "\n")
}

func TestHandleConvert_Errors(t *testing.T) {
	a, hook := testApp(t)

	res := callTool(t, a, map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), argPath)

	res = callTool(t, a, map[string]any{argPath: filepath.Join(t.TempDir(), "missing.xlsx")})
	assert.True(t, res.IsError)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestMCPServer_ListsTool(t *testing.T) {
	a, _ := testApp(t)
	s := a.mcpServer()

	msg := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp := s.HandleMessage(context.Background(), msg)
	require.NotNil(t, resp)

	rpc, ok := resp.(mcp.JSONRPCResponse)
	require.True(t, ok, "unexpected response %T", resp)
	var list mcp.ListToolsResult
	switch res := rpc.Result.(type) {
	case mcp.ListToolsResult:
		list = res
	case *mcp.ListToolsResult:
		list = *res
	default:
		t.Fatalf("unexpected result %T", rpc.Result)
	}
	require.Len(t, list.Tools, 1)
	assert.Equal(t, toolConvert, list.Tools[0].Name)
	assert.Contains(t, list.Tools[0].InputSchema.Required, argPath)
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "v1")

	var calls atomic.Int32
	changed := make(chan struct{}, 10)
	ready := make(chan struct{})
	logger, _ := test.NewNullLogger()
	w := &fileWatcher{
		path:     path,
		debounce: 20 * time.Millisecond,
		log:      logger,
		ready:    func() { close(ready) },
		onChange: func() error {
			calls.Add(1)
			changed <- struct{}{}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not start")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	writeWorkbook(t, dir, "v2")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no re-render after the workbook changed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestRoot_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "v1")
	outPath := filepath.Join(dir, "out.html")

	a := &app{stderr: io.Discard}
	cmd := a.command()
	cmd.SetArgs([]string{path, "--watch", "-o", outPath})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(outPath)
		return err == nil && strings.Contains(string(data), ">v1</td>")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
