// internal/storage/storage.go
package storage

import "github.com/meteorwatch/simulator/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Run management
	StartRun(run *core.Run) error
	// EndRun persists the final report. The report passed in is
	// authoritative; incremental state held by the backend is only a
	// staging area.
	EndRun(result core.RunResult, report core.Report) error

	// Event recording
	RecordNearMiss(e *core.NearMissEvent) error
}

// Exportable is an optional interface for storage backends that produce
// report files on disk.
type Exportable interface {
	GetExportedFilePath() string
}
