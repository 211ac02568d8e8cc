package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/designboard/internal/scene"
)

func addRect(s *scene.Scene, x float64) {
	r := scene.NewShape(scene.KindRect, scene.Pt(x, x), scene.DefaultInk)
	r.Resize(scene.Pt(x+10, x+10))
	s.Add(r)
}

func snap(t *testing.T, s *scene.Scene) string {
	t.Helper()
	b, err := s.Serialize()
	require.NoError(t, err)
	return string(b)
}

func TestNewPushesInitialEntry(t *testing.T) {
	s := scene.New(0, 0, scene.DefaultBackground)
	m, err := New(s)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Cursor())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}

func TestUndoRedoInverse(t *testing.T) {
	s := scene.New(0, 0, scene.DefaultBackground)
	m, err := New(s)
	require.NoError(t, err)
	addRect(s, 10)
	require.NoError(t, m.Commit())
	before := snap(t, s)

	addRect(s, 50)
	require.NoError(t, m.Commit())
	after := snap(t, s)

	ok, err := m.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, before, snap(t, s))

	ok, err = m.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, after, snap(t, s))
}

func TestBoundariesAreNoOps(t *testing.T) {
	s := scene.New(0, 0, scene.DefaultBackground)
	m, err := New(s)
	require.NoError(t, err)
	ok, err := m.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = m.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Cursor())
}

func TestBranchPruning(t *testing.T) {
	s := scene.New(0, 0, scene.DefaultBackground)
	m, err := New(s)
	require.NoError(t, err)
	var states []string
	states = append(states, snap(t, s))
	for i := 1; i <= 3; i++ {
		addRect(s, float64(i*20))
		require.NoError(t, m.Commit())
		states = append(states, snap(t, s))
	}
	require.Equal(t, 4, m.Len())
	require.Equal(t, 3, m.Cursor())

	_, err = m.Undo()
	require.NoError(t, err)
	_, err = m.Undo()
	require.NoError(t, err)
	require.Equal(t, 1, m.Cursor())

	addRect(s, 200)
	require.NoError(t, m.Commit())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Cursor())
	assert.False(t, m.CanRedo())

	e0, _ := m.Entry(0)
	e1, _ := m.Entry(1)
	assert.Equal(t, states[0], string(e0))
	assert.Equal(t, states[1], string(e1))
	assert.Equal(t, snap(t, s), string(m.Current()))
	_, ok := m.Entry(3)
	assert.False(t, ok)
}

func TestLimitKeepsCursorValid(t *testing.T) {
	s := scene.New(0, 0, scene.DefaultBackground)
	m, err := New(s, WithLimit(3))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		addRect(s, float64(i))
		require.NoError(t, m.Commit())
	}
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Cursor())
	for m.CanUndo() {
		_, err := m.Undo()
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.Len())
}

type failing struct {
	scene.Scene
	failRestore bool
}

func (f *failing) Restore(scene.Snapshot) error {
	if f.failRestore {
		return errors.New("boom")
	}
	return nil
}

func TestFailedRestoreKeepsCursor(t *testing.T) {
	f := &failing{Scene: *scene.New(0, 0, scene.DefaultBackground)}
	m, err := New(f)
	require.NoError(t, err)
	require.NoError(t, m.Commit())
	f.failRestore = true
	ok, err := m.Undo()
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Cursor())
}
