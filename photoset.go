package evergreen

import "sync"

// PhotoSet is the shared set of photo ornaments. Decode completions append
// from any goroutine; the frame loop reads a snapshot every tick.
type PhotoSet struct {
	mu      sync.RWMutex
	photos  []PhotoOrnament
	spiral  SpiralConfig
	version uint64
}

// NewPhotoSet creates an empty set laid out on spiral.
func NewPhotoSet(spiral SpiralConfig) *PhotoSet {
	return &PhotoSet{spiral: spiral}
}

// Append adds batch in order and recomputes the spiral for every member,
// since both rank fraction and count shift. Returns the new size. An empty
// batch changes nothing.
func (s *PhotoSet) Append(batch []PhotoOrnament) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(batch) == 0 {
		return len(s.photos)
	}
	s.photos = append(s.photos, batch...)
	RelayoutSpiral(s.photos, s.spiral)
	s.version++
	return len(s.photos)
}

// Len returns the number of photos.
func (s *PhotoSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.photos)
}

// Version increments on every change; readers can skip work when it hasn't moved.
func (s *PhotoSet) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot copies the photos into buf (reusing its capacity) and returns it.
func (s *PhotoSet) Snapshot(buf []PhotoOrnament) []PhotoOrnament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(buf[:0], s.photos...)
}
