package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOpening(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run("testdata/opening.yaml", &buf))

	out := buf.String()
	assert.Contains(t, out, "5 of 5 moves replayed")
	assert.Contains(t, out, "Black  ada        left=11 captured=1")
	assert.Contains(t, out, "White  ben        left=11 captured=1")
	assert.Contains(t, out, "turn: ben")
	assert.Contains(t, out, "winner: no winner yet")
}

func TestRunReportsMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	body := "black: ada\nwhite: ben\nmoves:\n  - {player: ben, from: [2, 1], to: [3, 0]}\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	var buf bytes.Buffer
	err := run(path, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of turn")
	assert.Contains(t, buf.String(), "1 of 1 moves replayed")
}

func TestRunMissingFile(t *testing.T) {
	assert.Error(t, run(filepath.Join(t.TempDir(), "nope.yaml"), &bytes.Buffer{}))
}
