package script

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/designboard/internal/export"
	"github.com/example/designboard/internal/scene"
	"github.com/example/designboard/internal/tool"
)

const session = `
canvas: {width: 800, height: 600, background: "#fafafa"}
steps:
  - tool: rectangle
  - color: "#ff0000"
  - drag: [[100, 100], [70, 60], [40, 30]]
  - drop: {category: database, label: Users DB, at: [300, 200]}
  - text: {at: [50, 50], content: "Hello"}
  - tool: arrow
  - drag: [[0, 0], [100, 0]]
  - undo: 2
  - redo: 1
  - export: true
`

func run(t *testing.T, src string, opts ...tool.Option) (*tool.Controller, Report) {
	t.Helper()
	s, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	sc, err := s.NewScene(scene.DefaultWidth, scene.DefaultHeight, scene.DefaultBackground)
	require.NoError(t, err)
	c, err := tool.New(sc, opts...)
	require.NoError(t, err)
	rep, err := s.Run(context.Background(), c)
	require.NoError(t, err)
	return c, rep
}

func TestReplaySession(t *testing.T) {
	svc := &export.Service{Dir: t.TempDir(), Scale: 1, Now: func() time.Time { return time.UnixMilli(7) }}
	c, rep := run(t, session, tool.WithExporter(svc))

	assert.Equal(t, 10, rep.Steps)
	assert.Equal(t, 800, c.Scene().Width())
	assert.Equal(t, scene.MustColor("#fafafa"), c.Scene().Background())
	// rect, icon, text placed, text typed, arrow; undo 2 then redo 1
	assert.Equal(t, 6, rep.History)
	assert.Equal(t, 4, rep.Cursor)
	assert.Equal(t, 3, rep.Objects)
	require.Len(t, rep.Exports, 1)
	assert.Equal(t, 800, rep.Exports[0].Width)

	first, ok := c.Scene().At(0)
	require.True(t, ok)
	assert.Equal(t, scene.Pt(40, 30), first.Pos)
	assert.Equal(t, scene.MustColor("#ff0000"), first.Color)
	txt, _ := c.Scene().At(2)
	assert.Equal(t, "Hello", txt.Text)
}

func TestClickSelectAndDelete(t *testing.T) {
	c, rep := run(t, `
steps:
  - drop: {category: cache, label: Redis, at: [10, 10]}
  - tool: select
  - click: [20, 20]
  - delete: true
`)
	assert.Equal(t, 0, rep.Objects)
	assert.True(t, c.CanUndo())
}

func TestLoadRejectsAmbiguousSteps(t *testing.T) {
	for name, src := range map[string]string{
		"two actions":   "steps:\n  - {tool: draw, clear: true}\n",
		"no action":     "steps:\n  - {}\n",
		"short drag":    "steps:\n  - drag: [[1, 1]]\n",
		"unknown field": "steps:\n  - wiggle: true\n",
		"bad colour":    "canvas: {background: mauve-ish}\n",
		"empty":         "",
	} {
		_, err := Load(strings.NewReader(src))
		assert.Error(t, err, name)
	}
}

func TestRunStopsAtFailingStep(t *testing.T) {
	s, err := Load(strings.NewReader("steps:\n  - tool: draw\n  - color: nope\n  - clear: true\n"))
	require.NoError(t, err)
	c, err := tool.New(scene.New(0, 0, scene.DefaultBackground))
	require.NoError(t, err)
	rep, err := s.Run(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
	assert.Equal(t, 1, rep.Steps)
}

func TestExportWithoutExporterFails(t *testing.T) {
	s, err := Load(strings.NewReader("steps:\n  - export: true\n"))
	require.NoError(t, err)
	c, err := tool.New(scene.New(0, 0, scene.DefaultBackground))
	require.NoError(t, err)
	_, err = s.Run(context.Background(), c)
	assert.ErrorIs(t, err, tool.ErrNoExporter)
}
