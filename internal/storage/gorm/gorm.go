// Package gormstorage implements the storage.Backend interface on top of a
// GORM database handle, Postgres or SQLite alike.
package gormstorage

import (
	"fmt"
	"sync"

	"github.com/meteorwatch/simulator/internal/logging"
	"github.com/meteorwatch/simulator/internal/model"
	"github.com/meteorwatch/simulator/internal/model/convert"
	"github.com/meteorwatch/simulator/pkg/core"
	"gorm.io/gorm"
)

// Dependencies wires the backend to its collaborators.
type Dependencies struct {
	DB         *gorm.DB
	LogManager *logging.SlogManager
	// CriticalThreshold is the distance below which a stored near miss is
	// tagged CRITICAL.
	CriticalThreshold float64
}

// Backend persists runs and near misses through GORM.
type Backend struct {
	deps Dependencies

	mu  sync.Mutex
	run *model.Run
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.LogManager == nil {
		deps.LogManager = logging.NewSlogManager()
	}
	return &Backend{deps: deps}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("no database handle")
	}
	return b.deps.DB.AutoMigrate(model.DatabaseModels...)
}

// Close is a no-op; the database connection is owned by the caller.
func (b *Backend) Close() error {
	return nil
}

// StartRun inserts the run row and assigns its ID to the passed pointer.
func (b *Backend) StartRun(run *core.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := convert.CoreToRun(*run)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	run.ID = row.ID
	b.run = &row

	b.deps.LogManager.Logger().Info("Run started", "runId", row.ID, "name", row.Name)
	return nil
}

// RecordNearMiss inserts one near-miss row for the active run.
func (b *Backend) RecordNearMiss(e *core.NearMissEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no run in progress")
	}

	severity := core.ClassifySeverity(e.Distance, b.deps.CriticalThreshold)
	row := convert.CoreToNearMiss(*e, b.run.ID, severity)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert near miss: %w", err)
	}
	return nil
}

// EndRun stamps the run row with the final totals. The report is already
// represented row by row; only its totals are checked.
func (b *Backend) EndRun(result core.RunResult, report core.Report) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no run in progress")
	}

	var stored int64
	if err := b.deps.DB.Model(&model.NearMiss{}).
		Where("run_id = ?", b.run.ID).Count(&stored).Error; err == nil {
		if int(stored) != report.TotalNearMisses {
			b.deps.LogManager.Logger().Warn("Stored near-miss rows disagree with report",
				"stored", stored, "report", report.TotalNearMisses)
		}
	}

	convert.ResultToRun(b.run, result)
	if err := b.deps.DB.Save(b.run).Error; err != nil {
		return fmt.Errorf("failed to finalize run: %w", err)
	}

	b.deps.LogManager.Logger().Info("Run finalized",
		"runId", b.run.ID,
		"ticks", result.Ticks,
		"nearMisses", result.NearMisses,
		"collided", result.Collided,
	)
	b.run = nil
	return nil
}

// RecordPerformance inserts one loop-performance sample for the active run.
func (b *Backend) RecordPerformance(p *model.RunPerformance) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run != nil {
		p.RunID = b.run.ID
	}
	if err := b.deps.DB.Create(p).Error; err != nil {
		return fmt.Errorf("failed to insert performance sample: %w", err)
	}
	return nil
}
