package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"procinfo/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[
	{"name": "swapper/0", "pid": 0, "state": 0, "prio": 120, "static_prio": 120, "normal_prio": 120},
	{"name": "init", "pid": 1, "ppid": 0, "state": 1, "prio": 120, "static_prio": 120, "normal_prio": 120},
	{"name": "sh", "pid": 7, "ppid": 1, "state": 1, "prio": 120, "static_prio": 120, "normal_prio": 120}
]`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return path
}

func TestExecuteStaticSource(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute([]string{"--source=static", "--from", writeFixture(t), "--min-pid=1"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, report.Header, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "sh "))
	assert.Equal(t, "PARENT", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "init "))
	assert.Empty(t, stderr.String())
}

func TestExecuteEnumerationFailed(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute([]string{"--source=static", "--from", filepath.Join(t.TempDir(), "missing.json")}, &stdout, &stderr)
	assert.Equal(t, exitEnumeration, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "process enumeration failed")
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n"))
}

func TestExecuteConfigErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--sink=syslog"},
		{"--min-pid=abc"},
		{"--source=static"},
		{"unexpected"},
	} {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitConfig, execute(args, &stdout, &stderr), "args %v", args)
		assert.Empty(t, stdout.String())
	}
}

func TestExecuteEnvFloor(t *testing.T) {
	t.Setenv("PROCINFO_MIN_PID", "7")
	var stdout, stderr bytes.Buffer
	code := execute([]string{"--source=static", "--from", writeFixture(t)}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Empty(t, stdout.String())
}
