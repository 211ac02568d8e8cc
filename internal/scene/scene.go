// Package scene holds the in-memory model of a design board: an ordered list
// of drawable objects plus canvas size and background.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
)

// ErrBadSnapshot is returned by Restore when a snapshot cannot be decoded.
var ErrBadSnapshot = errors.New("bad snapshot")

// Handle addresses an object by its position in the scene.
type Handle int

// NoHandle is the zero value for "no object".
const NoHandle Handle = -1

// Snapshot is an opaque, immutable serialization of a scene.
type Snapshot []byte

// Scene is an ordered sequence of objects. Later objects paint over earlier
// ones.
type Scene struct {
	width      int
	height     int
	background Color
	initialBG  Color
	objects    []Object
}

// New creates an empty scene. Zero dimensions fall back to the defaults.
func New(width, height int, background Color) *Scene {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Scene{width: width, height: height, background: background, initialBG: background}
}

func (s *Scene) Width() int        { return s.width }
func (s *Scene) Height() int       { return s.height }
func (s *Scene) Background() Color { return s.background }
func (s *Scene) Len() int          { return len(s.objects) }

// Add appends o at the top of the z-order. An empty ID is filled in.
func (s *Scene) Add(o Object) Handle {
	if o.ID == "" {
		o.ID = newID()
	}
	s.objects = append(s.objects, o)
	return Handle(len(s.objects) - 1)
}

// At returns the object at h for in-place mutation. The pointer is only valid
// until the next structural change (Add, Remove, RemoveAll, Restore).
func (s *Scene) At(h Handle) (*Object, bool) {
	if h < 0 || int(h) >= len(s.objects) {
		return nil, false
	}
	return &s.objects[h], true
}

// Find returns the handle of the object with the given ID.
func (s *Scene) Find(id string) (Handle, bool) {
	for i := range s.objects {
		if s.objects[i].ID == id {
			return Handle(i), true
		}
	}
	return NoHandle, false
}

// All iterates objects bottom to top.
func (s *Scene) All() iter.Seq2[Handle, Object] {
	return func(yield func(Handle, Object) bool) {
		for i, o := range s.objects {
			if !yield(Handle(i), o) {
				return
			}
		}
	}
}

// RemoveAll drops every object and resets the background to the one the
// scene was created with.
func (s *Scene) RemoveAll() {
	s.objects = nil
	s.background = s.initialBG
}

// Remove deletes the object at h together with any objects whose Parent is
// its ID. Handles above h shift down.
func (s *Scene) Remove(h Handle) bool {
	target, ok := s.At(h)
	if !ok {
		return false
	}
	id := target.ID
	kept := s.objects[:0]
	for i, o := range s.objects {
		if Handle(i) == h || (id != "" && o.Parent == id) {
			continue
		}
		kept = append(kept, o)
	}
	clear(s.objects[len(kept):])
	s.objects = kept
	return true
}

// SetSelectable toggles whether objects take part in hit-testing.
func (s *Scene) SetSelectable(on bool) {
	for i := range s.objects {
		s.objects[i].Selectable = on
	}
}

// HitTest returns the topmost selectable object under p.
func (s *Scene) HitTest(p Point) (Handle, bool) {
	for i := len(s.objects) - 1; i >= 0; i-- {
		o := &s.objects[i]
		if o.Selectable && o.Hit(p) {
			return Handle(i), true
		}
	}
	return NoHandle, false
}

type document struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Background Color    `json:"background"`
	Objects    []Object `json:"objects"`
}

// Serialize captures the complete visual state of the scene.
func (s *Scene) Serialize() (Snapshot, error) {
	doc := document{
		Width:      s.width,
		Height:     s.height,
		Background: s.background,
		Objects:    make([]Object, 0, len(s.objects)),
	}
	doc.Objects = append(doc.Objects, s.objects...)
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("serialize scene: %w", err)
	}
	return Snapshot(b), nil
}

// Restore replaces the scene contents with snap. On error the scene is left
// unchanged.
func (s *Scene) Restore(snap Snapshot) error {
	var doc document
	if err := json.Unmarshal(snap, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrBadSnapshot, doc.Width, doc.Height)
	}
	objects := make([]Object, len(doc.Objects))
	for i, o := range doc.Objects {
		objects[i] = o.clone()
	}
	s.width, s.height, s.background, s.objects = doc.Width, doc.Height, doc.Background, objects
	return nil
}

// Clone returns a deep copy of the scene.
func (s *Scene) Clone() *Scene {
	c := *s
	c.objects = make([]Object, len(s.objects))
	for i, o := range s.objects {
		c.objects[i] = o.clone()
	}
	return &c
}
