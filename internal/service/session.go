package service

import "sync"

// ViewSession guards against stale async responses overwriting fresher
// state. Each Select bumps a generation; a result may only be
// committed with the generation its fetch started under. When the
// viewer has moved on, the late result is discarded.
type ViewSession struct {
	mu   sync.Mutex
	gen  uint64
	slug string
}

func NewViewSession() *ViewSession {
	return &ViewSession{}
}

// Select records that the viewer switched to slug and returns the
// generation token the eventual result must present.
func (v *ViewSession) Select(slug string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.slug = slug
	return v.gen
}

// Commit reports whether a result fetched under gen may be applied.
// False means a later Select superseded the fetch.
func (v *ViewSession) Commit(gen uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return gen == v.gen
}

// Current returns the selected slug and its generation.
func (v *ViewSession) Current() (string, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slug, v.gen
}
