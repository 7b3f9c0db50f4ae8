package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"sim": { "spawnChance": 0.1, "seed": 42 },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meteorsim.cfg.json"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 0.1, viper.GetFloat64("sim.spawnChance"))
	assert.Equal(t, int64(42), viper.GetInt64("sim.seed"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meteorsim.cfg.json"), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./meteorlogs", viper.GetString("logsDir"))
	assert.Equal(t, 800.0, viper.GetFloat64("sim.fieldWidth"))
	assert.Equal(t, 600.0, viper.GetFloat64("sim.fieldHeight"))
	assert.Equal(t, 110.0, viper.GetFloat64("sim.detectionRadius"))
	assert.Equal(t, 0.05, viper.GetFloat64("sim.spawnChance"))
	assert.Equal(t, 60, viper.GetInt("sim.tickRate"))
	assert.Equal(t, 50.0, viper.GetFloat64("tracker.dangerThreshold"))
	assert.Equal(t, 35.0, viper.GetFloat64("tracker.criticalThreshold"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "./reports", viper.GetString("storage.memory.outputDir"))
	assert.Equal(t, false, viper.GetBool("storage.memory.compressOutput"))
	assert.Equal(t, false, viper.GetBool("db.enabled"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "meteorwatch-metrics", viper.GetString("influx.org"))
	assert.Equal(t, true, viper.GetBool("monitor.enabled"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "info", viper.GetString("logLevel"))
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meteorsim.cfg.json"), []byte(`{not json`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetSimConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	sc := GetSimConfig()
	assert.Equal(t, 800.0, sc.FieldWidth)
	assert.Equal(t, 600.0, sc.FieldHeight)
	assert.Equal(t, 10.0, sc.CraftHalfSize)
	assert.Equal(t, 25.0, sc.MeteorRadius)
	assert.Equal(t, 5.0, sc.MaxSpeed)
	assert.Equal(t, 0.5, sc.AvoidanceStrength)
	assert.Equal(t, 0.1, sc.CenteringStrength)
	assert.Equal(t, false, sc.Realtime)
	assert.Equal(t, uint64(0), sc.MaxTicks)
	assert.Equal(t, int64(0), sc.Seed)
}

func TestGetInfluxConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meteorsim.cfg.json"),
		[]byte(`{"influx": {"enabled": true, "host": "influx.local", "token": "secret"}}`), 0644))
	require.NoError(t, Load(dir))

	ic := GetInfluxConfig()
	assert.True(t, ic.Enabled)
	assert.Equal(t, "influx.local", ic.Host)
	assert.Equal(t, "8086", ic.Port)
	assert.Equal(t, "http", ic.Protocol)
	assert.Equal(t, "secret", ic.Token)
	assert.Equal(t, "meteorwatch-metrics", ic.Org)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"storage": {
			"type": "database",
			"memory": { "outputDir": "/tmp/out", "compressOutput": true }
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meteorsim.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	sc := GetStorageConfig()
	assert.Equal(t, "database", sc.Type)
	assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
	assert.Equal(t, true, sc.Memory.CompressOutput)
}

func TestGetMonitorConfig_Interval(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{ "monitor": { "interval": "30s" } }`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meteorsim.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	mc := GetMonitorConfig()
	assert.Equal(t, true, mc.Enabled)
	assert.Equal(t, 30*time.Second, mc.Interval)
}
