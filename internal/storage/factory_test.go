// internal/storage/factory_test.go
package storage

import (
	"testing"

	"github.com/meteorwatch/simulator/internal/config"
	"github.com/meteorwatch/simulator/internal/database"
	gormstorage "github.com/meteorwatch/simulator/internal/storage/gorm"
	"github.com/meteorwatch/simulator/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface checks
var (
	_ Backend    = (*memory.Backend)(nil)
	_ Backend    = (*gormstorage.Backend)(nil)
	_ Exportable = (*memory.Backend)(nil)
)

func TestNewBackend_Memory(t *testing.T) {
	b, err := NewBackend(config.StorageConfig{Type: "memory"}, Dependencies{})
	require.NoError(t, err)
	assert.IsType(t, (*memory.Backend)(nil), b)
}

func TestNewBackend_DatabaseRequiresDB(t *testing.T) {
	_, err := NewBackend(config.StorageConfig{Type: "database"}, Dependencies{})
	assert.Error(t, err)
}

func TestNewBackend_Database(t *testing.T) {
	db, err := database.GetSqliteDBStandalone("")
	require.NoError(t, err)

	b, err := NewBackend(config.StorageConfig{Type: "database"}, Dependencies{DB: db, CriticalThreshold: 35})
	require.NoError(t, err)
	assert.IsType(t, (*gormstorage.Backend)(nil), b)
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := NewBackend(config.StorageConfig{Type: "carrier-pigeon"}, Dependencies{})
	assert.Error(t, err)
}
