package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/director"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/timeline"
)

const deck = `
version: "1"
viewboxes:
  - name: halves
    direction: vertical
    constraints: ["1:2", "1:2"]
objects:
  - name: bar
    kind: rect
    height: 50
slides:
  - objects:
      - object: bar
        from: halves[0]..
        to: halves[1]..
  - time: 1
    objects:
      - object: bar
        to: halves[1]..
`

func writeDeck(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(deck), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	deckPath := writeDeck(t)
	dump := filepath.Join(t.TempDir(), "resolved.yaml")

	out, err := run(t, "resolve", filepath.Dir(deckPath), "-o", dump, "--width", "1280", "--height", "720")
	require.NoError(t, err)
	assert.Contains(t, out, "Resolved 2 slide(s)")

	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	var dumps []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &dumps))
	require.Len(t, dumps, 2)
	assert.Equal(t, 1, dumps[1]["slide"])

	_, err = run(t, "resolve", deckPath, "-o", dump, "--slide", "7")
	assert.ErrorContains(t, err, "out of range")
}

func TestSampleCommand(t *testing.T) {
	deckPath := writeDeck(t)
	dump := filepath.Join(t.TempDir(), "samples.yaml")

	out, err := run(t, "sample", deckPath, "-o", dump, "--fps", "10", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Sampled 2 slide(s) at 10 FPS")

	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	var samples []director.Samples
	require.NoError(t, yaml.Unmarshal(data, &samples))
	require.Len(t, samples, 2)
	assert.Len(t, samples[0].Frames, 6)
	assert.Len(t, samples[1].Frames, 11)
}

func TestFrameCommand(t *testing.T) {
	deckPath := writeDeck(t)

	out, err := run(t, "frame", deckPath, "--slide", "0", "--time", "0.5")
	require.NoError(t, err)

	var f timeline.Frame
	require.NoError(t, yaml.Unmarshal([]byte(out), &f))
	require.Len(t, f.Objects, 1)
	assert.Equal(t, 1.0, f.Objects[0].Opacity)
	assert.True(t, f.Settled)
}

func TestMissingDeck(t *testing.T) {
	_, err := run(t, "resolve", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, "frame", writeDeck(t), "--fps=-1")
	assert.ErrorContains(t, err, "invalid configuration")
}
