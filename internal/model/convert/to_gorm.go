// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"database/sql"
	"encoding/json"

	"github.com/meteorwatch/simulator/internal/model"
	"github.com/meteorwatch/simulator/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// xyToPoint converts a core.XY to a geom.Point. NaN and Inf coordinates
// are not representable as a point and collapse to the empty point.
func xyToPoint(p core.XY) geom.Point {
	point, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}})
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXY)
	}
	return point
}

// xyToJSON converts a core.XY to its [x, y] JSON form for DB storage.
func xyToJSON(p core.XY) datatypes.JSON {
	data, _ := json.Marshal(p)
	return datatypes.JSON(data)
}

// CoreToRun converts a core.Run to a GORM model.Run.
func CoreToRun(r core.Run) model.Run {
	m := model.Run{
		Name:      r.Name,
		Seed:      r.Seed,
		StartTime: r.StartTime,
	}
	m.ID = r.ID
	return m
}

// CoreToNearMiss converts a core.NearMissEvent to a GORM model.NearMiss.
// Severity is derived here; the core event does not carry it.
func CoreToNearMiss(e core.NearMissEvent, runID uint, severity core.Severity) model.NearMiss {
	return model.NearMiss{
		RunID:          runID,
		Timestamp:      e.Timestamp,
		Distance:       e.Distance,
		Severity:       string(severity),
		ShipPosition:   xyToPoint(e.ShipPosition),
		MeteorPosition: xyToPoint(e.MeteorPosition),
		ShipVelocity:   xyToJSON(e.ShipVelocity),
		MeteorVelocity: xyToJSON(e.MeteorVelocity),
	}
}

// ResultToRun applies a core.RunResult to an existing model.Run.
func ResultToRun(m *model.Run, result core.RunResult) {
	m.EndTime = sql.NullTime{Time: result.EndTime, Valid: true}
	m.Ticks = result.Ticks
	m.Score = result.Score
	m.Collided = result.Collided
	m.TotalRuntime = result.TotalRuntime
	m.TotalNearMisses = result.NearMisses
}
