// pkg/core/report.go
package core

// Report is the persisted analytics summary for a run. Field names and the
// [x, y] array encoding of positions/velocities are a stable contract with
// downstream tooling, do not rename.
type Report struct {
	TotalRuntime    float64       `json:"total_runtime"`
	TotalNearMisses int           `json:"total_near_misses"`
	NearMisses      []ReportEvent `json:"near_misses"`
}

// ReportEvent is a NearMissEvent with its derived severity tag, as it
// appears in the serialized report.
type ReportEvent struct {
	Timestamp      float64  `json:"timestamp"`
	Distance       float64  `json:"distance"`
	ShipPosition   XY       `json:"ship_position"`
	MeteorPosition XY       `json:"meteor_position"`
	ShipVelocity   XY       `json:"ship_velocity"`
	MeteorVelocity XY       `json:"meteor_velocity"`
	Severity       Severity `json:"severity"`
}
