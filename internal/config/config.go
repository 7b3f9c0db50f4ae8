package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// StorageConfig selects and configures the report storage backend.
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
}

// SimConfig holds the simulation tunables.
type SimConfig struct {
	FieldWidth        float64
	FieldHeight       float64
	CraftHalfSize     float64
	MeteorRadius      float64
	MaxSpeed          float64
	DetectionRadius   float64
	AvoidanceStrength float64
	CenteringStrength float64
	SpawnChance       float64
	TickRate          int
	Realtime          bool
	MaxTicks          uint64
	Seed              int64
}

// TrackerConfig holds the proximity classification thresholds.
type TrackerConfig struct {
	DangerThreshold   float64
	CriticalThreshold float64
}

// DBConfig holds the relational database settings.
type DBConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// InfluxConfig holds the time-series metrics settings.
type InfluxConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Protocol string
	Token    string
	Org      string
}

// MonitorConfig holds the periodic status reporter settings.
type MonitorConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// not an error; defaults apply.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./meteorlogs")

	viper.SetDefault("sim.fieldWidth", 800.0)
	viper.SetDefault("sim.fieldHeight", 600.0)
	viper.SetDefault("sim.craftHalfSize", 10.0)
	viper.SetDefault("sim.meteorRadius", 25.0)
	viper.SetDefault("sim.maxSpeed", 5.0)
	viper.SetDefault("sim.detectionRadius", 110.0)
	viper.SetDefault("sim.avoidanceStrength", 0.5)
	viper.SetDefault("sim.centeringStrength", 0.1)
	viper.SetDefault("sim.spawnChance", 0.05)
	viper.SetDefault("sim.tickRate", 60)
	viper.SetDefault("sim.realtime", false)
	viper.SetDefault("sim.maxTicks", 0)
	viper.SetDefault("sim.seed", 0)

	viper.SetDefault("tracker.dangerThreshold", 50.0)
	viper.SetDefault("tracker.criticalThreshold", 35.0)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./reports")
	viper.SetDefault("storage.memory.compressOutput", false)

	viper.SetDefault("db.enabled", false)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "meteorwatch")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "meteorwatch-metrics")

	viper.SetDefault("monitor.enabled", true)
	viper.SetDefault("monitor.interval", "5s")

	viper.SetConfigName("meteorsim.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetSimConfig returns the simulation tunables.
func GetSimConfig() SimConfig {
	return SimConfig{
		FieldWidth:        viper.GetFloat64("sim.fieldWidth"),
		FieldHeight:       viper.GetFloat64("sim.fieldHeight"),
		CraftHalfSize:     viper.GetFloat64("sim.craftHalfSize"),
		MeteorRadius:      viper.GetFloat64("sim.meteorRadius"),
		MaxSpeed:          viper.GetFloat64("sim.maxSpeed"),
		DetectionRadius:   viper.GetFloat64("sim.detectionRadius"),
		AvoidanceStrength: viper.GetFloat64("sim.avoidanceStrength"),
		CenteringStrength: viper.GetFloat64("sim.centeringStrength"),
		SpawnChance:       viper.GetFloat64("sim.spawnChance"),
		TickRate:          viper.GetInt("sim.tickRate"),
		Realtime:          viper.GetBool("sim.realtime"),
		MaxTicks:          viper.GetUint64("sim.maxTicks"),
		Seed:              viper.GetInt64("sim.seed"),
	}
}

// GetTrackerConfig returns the classification thresholds.
func GetTrackerConfig() TrackerConfig {
	return TrackerConfig{
		DangerThreshold:   viper.GetFloat64("tracker.dangerThreshold"),
		CriticalThreshold: viper.GetFloat64("tracker.criticalThreshold"),
	}
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
	}
}

// GetDBConfig returns the relational database settings.
func GetDBConfig() DBConfig {
	return DBConfig{
		Enabled:  viper.GetBool("db.enabled"),
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetInfluxConfig returns the time-series metrics settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
	}
}

// GetMonitorConfig returns the status reporter settings.
func GetMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Enabled:  viper.GetBool("monitor.enabled"),
		Interval: viper.GetDuration("monitor.interval"),
	}
}
