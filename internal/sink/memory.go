package sink

import (
	"sync"

	"github.com/muurk/haxomatic/internal/analysis"
)

// MemorySink keeps artifacts in memory.
type MemorySink struct {
	mu        sync.Mutex
	artifacts map[string]string
	order     []string
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{artifacts: make(map[string]string)}
}

// Exists implements analysis.Sink
func (s *MemorySink) Exists() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.artifacts[FinishArtifact]
	return ok, nil
}

// Emit implements analysis.Sink
func (s *MemorySink) Emit(result *analysis.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range Artifacts(result) {
		s.artifacts[a.Name] = a.Content
		s.order = append(s.order, a.Name)
	}
	return nil
}

// Get returns the content of the named artifact.
func (s *MemorySink) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.artifacts[name]
	return v, ok
}

// Len returns the number of stored artifacts.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.artifacts)
}

// Order returns artifact names in the order they were written.
func (s *MemorySink) Order() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
