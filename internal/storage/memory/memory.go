// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"sync"

	"github.com/meteorwatch/simulator/internal/config"
	"github.com/meteorwatch/simulator/pkg/core"
)

// Backend stages run data in memory and exports the final report to JSON
type Backend struct {
	cfg config.MemoryConfig

	run    *core.Run
	events []core.NearMissEvent

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartRun begins recording a new run
func (b *Backend) StartRun(run *core.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	run.ID = 1
	b.run = run
	b.events = nil
	return nil
}

// RecordNearMiss stages an event. Staged events are a consistency check
// against the report passed to EndRun, nothing more.
func (b *Backend) RecordNearMiss(e *core.NearMissEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, *e)
	return nil
}

// EventCount returns the number of staged events.
func (b *Backend) EventCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.events)
}

// EndRun writes the report to disk
func (b *Backend) EndRun(result core.RunResult, report core.Report) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no run in progress")
	}
	return b.exportJSON(report)
}

// GetExportedFilePath returns the path of the last written report
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
