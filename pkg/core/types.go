// pkg/core/types.go
package core

import "encoding/json"

// XY represents a 2D coordinate or velocity on the simulation field.
// It marshals as a two-element array to match the report contract.
type XY struct {
	X float64
	Y float64
}

// MarshalJSON encodes the pair as [x, y].
func (p XY) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes a [x, y] array.
func (p *XY) UnmarshalJSON(data []byte) error {
	var arr [2]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	p.X, p.Y = arr[0], arr[1]
	return nil
}

// Severity classifies how close a near miss came to a collision.
type Severity string

const (
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// ClassifySeverity derives the severity of a near miss from its distance.
// Distances below the critical threshold are CRITICAL, everything else
// that qualified as a near miss is WARNING.
func ClassifySeverity(distance, criticalThreshold float64) Severity {
	if distance < criticalThreshold {
		return SeverityCritical
	}
	return SeverityWarning
}
