// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/meteorwatch/simulator/internal/config"
	"github.com/meteorwatch/simulator/internal/logging"
	gormstorage "github.com/meteorwatch/simulator/internal/storage/gorm"
	"github.com/meteorwatch/simulator/internal/storage/memory"
	"gorm.io/gorm"
)

// Dependencies holds collaborators a backend may need. DB is only required
// for the database backend.
type Dependencies struct {
	DB                *gorm.DB
	LogManager        *logging.SlogManager
	CriticalThreshold float64
}

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, deps Dependencies) (Backend, error) {
	switch cfg.Type {
	case "database":
		if deps.DB == nil {
			return nil, fmt.Errorf("database storage requires a connected database")
		}
		return gormstorage.New(gormstorage.Dependencies{
			DB:                deps.DB,
			LogManager:        deps.LogManager,
			CriticalThreshold: deps.CriticalThreshold,
		}), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
