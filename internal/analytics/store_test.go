package analytics

import (
	"encoding/json"
	"testing"

	"github.com/meteorwatch/simulator/pkg/core"
)

func event(ts, distance float64) core.NearMissEvent {
	return core.NearMissEvent{
		Timestamp:      ts,
		Distance:       distance,
		ShipPosition:   core.XY{X: 400, Y: 300},
		MeteorPosition: core.XY{X: 400 + distance, Y: 300},
		ShipVelocity:   core.XY{X: 5, Y: 0},
		MeteorVelocity: core.XY{X: -2, Y: 0},
	}
}

func TestRecordPreservesArrivalOrder(t *testing.T) {
	s := NewStore(35)
	s.Record(event(1.0, 48))
	s.Record(event(0.5, 40)) // out-of-order timestamp stays where it landed
	s.Record(event(2.0, 44))

	if s.Count() != 3 {
		t.Fatalf("count %d", s.Count())
	}
	got := s.Events()
	if got[0].Timestamp != 1.0 || got[1].Timestamp != 0.5 || got[2].Timestamp != 2.0 {
		t.Errorf("arrival order not preserved: %v %v %v",
			got[0].Timestamp, got[1].Timestamp, got[2].Timestamp)
	}
}

func TestFinalizeFirstCallWins(t *testing.T) {
	s := NewStore(35)
	if s.Finalized() {
		t.Fatal("new store must not be finalized")
	}

	s.Finalize(12.5)
	s.Finalize(99)

	if !s.Finalized() {
		t.Fatal("not finalized")
	}
	if s.Runtime() != 12.5 {
		t.Errorf("runtime %f, want 12.5", s.Runtime())
	}
}

func TestBuildReportDerivesSeverity(t *testing.T) {
	s := NewStore(35)
	s.Record(event(1.0, 48))   // WARNING
	s.Record(event(2.0, 34.9)) // CRITICAL
	s.Record(event(3.0, 35))   // boundary: not below the threshold
	s.Finalize(10)

	r := s.BuildReport()
	if r.TotalRuntime != 10 {
		t.Errorf("runtime %f", r.TotalRuntime)
	}
	if r.TotalNearMisses != 3 {
		t.Errorf("total %d", r.TotalNearMisses)
	}
	want := []core.Severity{core.SeverityWarning, core.SeverityCritical, core.SeverityWarning}
	for i, w := range want {
		if r.NearMisses[i].Severity != w {
			t.Errorf("event %d severity %s, want %s", i, r.NearMisses[i].Severity, w)
		}
	}
}

func TestBuildReportIdempotent(t *testing.T) {
	s := NewStore(35)
	s.Record(event(1.0, 40))
	s.Record(event(2.0, 30))
	s.Finalize(7.25)

	first, err := json.Marshal(s.BuildReport())
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(s.BuildReport())
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("repeated BuildReport calls produced different output")
	}
}

func TestBuildReportEmptyRun(t *testing.T) {
	s := NewStore(35)
	s.Finalize(3)

	data, err := json.Marshal(s.BuildReport())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"total_runtime":3,"total_near_misses":0,"near_misses":[]}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestReportEventEncoding(t *testing.T) {
	s := NewStore(35)
	s.Record(event(1.5, 40))
	s.Finalize(2)

	data, err := json.Marshal(s.BuildReport().NearMisses[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"timestamp":1.5,"distance":40,"ship_position":[400,300],` +
		`"meteor_position":[440,300],"ship_velocity":[5,0],` +
		`"meteor_velocity":[-2,0],"severity":"WARNING"}`
	if string(data) != want {
		t.Errorf("got %s", data)
	}
}
