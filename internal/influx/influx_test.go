package influx

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/meteorwatch/simulator/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager(zerolog.Nop(), "/tmp/backup.gz")

	assert.False(t, m.IsValid)
	assert.Equal(t, []string{"run_data", "sim_performance"}, m.BucketNames)
	assert.Equal(t, "/tmp/backup.gz", m.BackupPath)
}

func TestConnectRefusesWhenDisabled(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, config.Load(t.TempDir()))

	m := NewManager(zerolog.Nop(), filepath.Join(t.TempDir(), "backup.gz"))
	err := m.Connect()

	assert.Error(t, err)
	assert.False(t, m.IsValid)
}

func TestWritePointFallsBackToBackupWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.gz")
	m := NewManager(zerolog.Nop(), path)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	m.BackupWriter = gzip.NewWriter(file)

	p := NewNearMissPoint("test run", 1.5, 42, "WARNING")
	require.NoError(t, m.WritePoint(context.Background(), BucketRunData, p))
	m.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePointWithoutClientOrBackupFails(t *testing.T) {
	m := NewManager(zerolog.Nop(), "")
	err := m.WritePoint(context.Background(), BucketRunData, NewNearMissPoint("x", 0, 0, "WARNING"))
	assert.Error(t, err)
}

func TestNewPerformancePoint(t *testing.T) {
	p := NewPerformancePoint("run one", 600, 4, 2, 1500*time.Microsecond)

	line := influxdb2_write.PointToLineProtocol(p, time.Nanosecond)
	assert.True(t, strings.HasPrefix(line, "loop,run=run\\ one"), line)
	assert.Contains(t, line, "tick=600i")
	assert.Contains(t, line, "liveMeteors=4i")
	assert.Contains(t, line, "writeQueueLength=2i")
	assert.Contains(t, line, "lastWriteDurationMs=1.5")
}

func TestNewNearMissPoint(t *testing.T) {
	p := NewNearMissPoint("run one", 2.5, 38.25, "CRITICAL")

	line := influxdb2_write.PointToLineProtocol(p, time.Nanosecond)
	assert.True(t, strings.HasPrefix(line, "near_miss,"), line)
	assert.Contains(t, line, "severity=CRITICAL")
	assert.Contains(t, line, "distance=38.25")
	assert.Contains(t, line, "timestamp=2.5")
}
