// Package selection holds the mode-scoped element selection: vertex
// indices, canonical edges, or face indices. A single change callback fires
// exactly once per observable mutation; membership no-ops never fire.
package selection

import (
	"github.com/Faultbox/meshedit/internal/engine/mesh"
)

// Mode selects which element kind the active set refers to.
type Mode int

const (
	ModeVertex Mode = iota
	ModeEdge
	ModeFace
)

// String implements fmt.Stringer for logs and UI labels.
func (m Mode) String() string {
	switch m {
	case ModeVertex:
		return "vertex"
	case ModeEdge:
		return "edge"
	case ModeFace:
		return "face"
	}
	return "unknown"
}

// State is a plain-list snapshot of a selection for serialization.
type State struct {
	Mode     Mode     `yaml:"mode"`
	Vertices []int    `yaml:"vertices"`
	Edges    []string `yaml:"edges"`
	Faces    []int    `yaml:"faces"`
}

// Selection is the persistent multi-mode selection container. Only the set
// matching the active mode is meaningful; switching modes clears all three.
type Selection struct {
	mode     Mode
	vertices map[int]struct{}
	edges    map[mesh.Edge]struct{}
	faces    map[int]struct{}
	onChange func()
}

// New creates an empty selection in vertex mode.
func New() *Selection {
	return &Selection{
		vertices: make(map[int]struct{}),
		edges:    make(map[mesh.Edge]struct{}),
		faces:    make(map[int]struct{}),
	}
}

// SetOnChange registers the change callback; nil clears it.
func (s *Selection) SetOnChange(fn func()) {
	s.onChange = fn
}

func (s *Selection) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Mode returns the active mode.
func (s *Selection) Mode() Mode {
	return s.mode
}

// SetMode switches the active mode, clearing all three sets. Setting the
// current mode again is a no-op.
func (s *Selection) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	s.mode = m
	s.clearSets()
	s.notify()
}

func (s *Selection) clearSets() {
	clear(s.vertices)
	clear(s.edges)
	clear(s.faces)
}

// AddVertex selects a vertex. No event when already selected.
func (s *Selection) AddVertex(idx int) {
	if _, ok := s.vertices[idx]; ok {
		return
	}
	s.vertices[idx] = struct{}{}
	s.notify()
}

// AddVertices bulk-selects vertices, firing at most one event.
func (s *Selection) AddVertices(indices []int) {
	changed := false
	for _, idx := range indices {
		if _, ok := s.vertices[idx]; !ok {
			s.vertices[idx] = struct{}{}
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// RemoveVertex deselects a vertex. No event when absent.
func (s *Selection) RemoveVertex(idx int) {
	if _, ok := s.vertices[idx]; !ok {
		return
	}
	delete(s.vertices, idx)
	s.notify()
}

// ToggleVertex flips a vertex's membership.
func (s *Selection) ToggleVertex(idx int) {
	if _, ok := s.vertices[idx]; ok {
		delete(s.vertices, idx)
	} else {
		s.vertices[idx] = struct{}{}
	}
	s.notify()
}

// SetVertices replaces the vertex set.
func (s *Selection) SetVertices(indices []int) {
	clear(s.vertices)
	for _, idx := range indices {
		s.vertices[idx] = struct{}{}
	}
	s.notify()
}

// HasVertex reports vertex membership.
func (s *Selection) HasVertex(idx int) bool {
	_, ok := s.vertices[idx]
	return ok
}

// Vertices returns the selected vertex indices in unspecified order.
func (s *Selection) Vertices() []int {
	out := make([]int, 0, len(s.vertices))
	for idx := range s.vertices {
		out = append(out, idx)
	}
	return out
}

// AddEdge selects the canonical edge for the vertex pair.
func (s *Selection) AddEdge(v0, v1 int) {
	e := mesh.NewEdge(v0, v1)
	if _, ok := s.edges[e]; ok {
		return
	}
	s.edges[e] = struct{}{}
	s.notify()
}

// AddEdgeByKey selects an edge from its canonical string key. Malformed
// keys are ignored without an event.
func (s *Selection) AddEdgeByKey(key string) {
	e, ok := mesh.ParseEdgeKey(key)
	if !ok {
		return
	}
	s.AddEdge(e.V0, e.V1)
}

// RemoveEdge deselects the canonical edge for the pair. No event when
// absent.
func (s *Selection) RemoveEdge(v0, v1 int) {
	e := mesh.NewEdge(v0, v1)
	if _, ok := s.edges[e]; !ok {
		return
	}
	delete(s.edges, e)
	s.notify()
}

// ToggleEdge flips the edge's membership.
func (s *Selection) ToggleEdge(v0, v1 int) {
	e := mesh.NewEdge(v0, v1)
	if _, ok := s.edges[e]; ok {
		delete(s.edges, e)
	} else {
		s.edges[e] = struct{}{}
	}
	s.notify()
}

// HasEdge reports membership for the canonical edge of the pair.
func (s *Selection) HasEdge(v0, v1 int) bool {
	_, ok := s.edges[mesh.NewEdge(v0, v1)]
	return ok
}

// Edges returns the selected edges in unspecified order.
func (s *Selection) Edges() []mesh.Edge {
	out := make([]mesh.Edge, 0, len(s.edges))
	for e := range s.edges {
		out = append(out, e)
	}
	return out
}

// AddFace selects a face. No event when already selected.
func (s *Selection) AddFace(idx int) {
	if _, ok := s.faces[idx]; ok {
		return
	}
	s.faces[idx] = struct{}{}
	s.notify()
}

// AddFaces bulk-selects faces, firing at most one event.
func (s *Selection) AddFaces(indices []int) {
	changed := false
	for _, idx := range indices {
		if _, ok := s.faces[idx]; !ok {
			s.faces[idx] = struct{}{}
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// RemoveFace deselects a face. No event when absent.
func (s *Selection) RemoveFace(idx int) {
	if _, ok := s.faces[idx]; !ok {
		return
	}
	delete(s.faces, idx)
	s.notify()
}

// ToggleFace flips a face's membership.
func (s *Selection) ToggleFace(idx int) {
	if _, ok := s.faces[idx]; ok {
		delete(s.faces, idx)
	} else {
		s.faces[idx] = struct{}{}
	}
	s.notify()
}

// SetFaces replaces the face set.
func (s *Selection) SetFaces(indices []int) {
	clear(s.faces)
	for _, idx := range indices {
		s.faces[idx] = struct{}{}
	}
	s.notify()
}

// HasFace reports face membership.
func (s *Selection) HasFace(idx int) bool {
	_, ok := s.faces[idx]
	return ok
}

// Faces returns the selected face indices in unspecified order.
func (s *Selection) Faces() []int {
	out := make([]int, 0, len(s.faces))
	for idx := range s.faces {
		out = append(out, idx)
	}
	return out
}

// SelectAll fills the active mode's set from the mesh: every vertex, every
// real (diagonal-filtered) edge, or every logical face.
func (s *Selection) SelectAll(m *mesh.Mesh) {
	changed := false
	switch s.mode {
	case ModeVertex:
		for i := range m.Vertices {
			if _, ok := s.vertices[i]; !ok {
				s.vertices[i] = struct{}{}
				changed = true
			}
		}
	case ModeEdge:
		for _, e := range mesh.Edges(m, true) {
			if _, ok := s.edges[e]; !ok {
				s.edges[e] = struct{}{}
				changed = true
			}
		}
	case ModeFace:
		for i := range m.Faces {
			if _, ok := s.faces[i]; !ok {
				s.faces[i] = struct{}{}
				changed = true
			}
		}
	}
	if changed {
		s.notify()
	}
}

// ClearAll empties all three sets. No event when nothing was selected.
func (s *Selection) ClearAll() {
	if !s.HasSelection() {
		return
	}
	s.clearSets()
	s.notify()
}

// HasSelection reports whether any set is non-empty.
func (s *Selection) HasSelection() bool {
	return len(s.vertices) > 0 || len(s.edges) > 0 || len(s.faces) > 0
}

// Count returns the size of the active mode's set.
func (s *Selection) Count() int {
	switch s.mode {
	case ModeVertex:
		return len(s.vertices)
	case ModeEdge:
		return len(s.edges)
	case ModeFace:
		return len(s.faces)
	}
	return 0
}

// State snapshots the selection into plain lists.
func (s *Selection) State() State {
	st := State{
		Mode:     s.mode,
		Vertices: s.Vertices(),
		Faces:    s.Faces(),
	}
	for e := range s.edges {
		st.Edges = append(st.Edges, e.Key())
	}
	return st
}

// SetState restores a snapshot, replacing mode and all three sets, and
// fires a single event. Malformed edge keys are dropped.
func (s *Selection) SetState(st State) {
	s.mode = st.Mode
	s.clearSets()
	for _, idx := range st.Vertices {
		s.vertices[idx] = struct{}{}
	}
	for _, key := range st.Edges {
		if e, ok := mesh.ParseEdgeKey(key); ok {
			s.edges[e] = struct{}{}
		}
	}
	for _, idx := range st.Faces {
		s.faces[idx] = struct{}{}
	}
	s.notify()
}
