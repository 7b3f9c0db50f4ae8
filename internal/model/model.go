package model

import (
	"database/sql"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Run{},
	&NearMiss{},
	&RunPerformance{},
}

// Run is one simulation run from start to collision or shutdown
type Run struct {
	gorm.Model
	Name      string    `json:"name" gorm:"size:127"`
	Seed      int64     `json:"seed"`
	StartTime time.Time `json:"startTime" gorm:"type:timestamptz"`

	// Populated at end of run
	EndTime         sql.NullTime `json:"endTime" gorm:"type:timestamptz;default:NULL"`
	Ticks           uint64       `json:"ticks" gorm:"default:0"`
	Score           uint64       `json:"score" gorm:"default:0"`
	Collided        bool         `json:"collided" gorm:"default:false"`
	TotalRuntime    float64      `json:"totalRuntime" gorm:"default:0"` // elapsed simulation seconds
	TotalNearMisses int          `json:"totalNearMisses" gorm:"default:0"`
}

func (*Run) TableName() string {
	return "runs"
}

// NearMiss is one close pass between the craft and a meteor
type NearMiss struct {
	ID    uint `json:"id" gorm:"primarykey;autoIncrement;"`
	RunID uint `json:"runId" gorm:"index:idx_nearmiss_run_id"`
	Run   Run  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`

	Timestamp      float64        `json:"timestamp" gorm:"index:idx_nearmiss_timestamp"` // elapsed simulation seconds
	Distance       float64        `json:"distance"`
	Severity       string         `json:"severity" gorm:"size:16;index:idx_nearmiss_severity"`
	ShipPosition   geom.Point     `json:"shipPosition"`   // craft position as 2D point
	MeteorPosition geom.Point     `json:"meteorPosition"` // meteor position as 2D point
	ShipVelocity   datatypes.JSON `json:"shipVelocity"`   // [vx, vy]
	MeteorVelocity datatypes.JSON `json:"meteorVelocity"` // [vx, vy]
}

func (*NearMiss) TableName() string {
	return "near_misses"
}

// RunPerformance is the model for simulation loop performance metrics
type RunPerformance struct {
	Time                time.Time `json:"time" gorm:"type:timestamptz;index:idx_time"`
	RunID               uint      `json:"runId" gorm:"index:idx_runperformance_run_id"`
	Run                 Run       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`
	Tick                uint64    `json:"tick"`
	LiveMeteors         uint16    `json:"liveMeteors"`
	WriteQueueLength    uint16    `json:"writeQueueLength"`
	LastWriteDurationMs float32   `json:"lastWriteDurationMs"`
}

func (*RunPerformance) TableName() string {
	return "run_performances"
}
