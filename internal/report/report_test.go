package report

import (
	"strings"
	"testing"

	"github.com/sensorlab/shuntscope/internal/domain"
)

func sampleOutcomes() []domain.ChannelOutcome {
	good := domain.ChannelOutcome{
		Channel: domain.ChannelConfig{ID: "dev1/ai0", ShuntOhms: 0.01},
		Record: &domain.CalibrationRecord{
			ChannelID:           "dev1/ai0",
			DeviceMilliamps:     1.3,
			ReferenceMilliamps:  0.409,
			ConfiguredShuntOhms: 0.01,
			DerivedShuntOhms:    0.0318,
			Ratio:               3.178,
			RatioDefined:        true,
			Anomaly:             domain.AnomalyUnclassified,
		},
		Range: &domain.RangeRecommendation{
			Candidate:     domain.RangeCandidate{MinVolt: -0.01, MaxVolt: 0.01},
			HeadroomRatio: 2.5,
		},
	}
	noRef := domain.ChannelOutcome{
		Channel: domain.ChannelConfig{ID: "dev1/ai1", ShuntOhms: 0.005},
		Record: &domain.CalibrationRecord{
			ChannelID:           "dev1/ai1",
			DeviceMilliamps:     0.2,
			ConfiguredShuntOhms: 0.005,
			Anomaly:             domain.AnomalyNoReference,
		},
		Err: domain.ErrNoReferenceSignal,
	}
	failed := domain.ChannelOutcome{
		Channel: domain.ChannelConfig{ID: "dev1/ai2", ShuntOhms: 0.1},
		Err:     domain.ErrDeviceUnavailable,
	}
	return []domain.ChannelOutcome{good, noRef, failed}
}

func TestBuildKeepsRequestOrder(t *testing.T) {
	rep := Build("dev1", sampleOutcomes())
	if len(rep.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rep.Rows))
	}
	want := []string{"dev1/ai0", "dev1/ai1", "dev1/ai2"}
	for i, id := range want {
		if rep.Rows[i].ChannelID != id {
			t.Fatalf("row %d channel = %s, want %s", i, rep.Rows[i].ChannelID, id)
		}
	}
}

func TestBuildPartialOutcome(t *testing.T) {
	rep := Build("dev1", sampleOutcomes())

	noRef := rep.Rows[1]
	if !noRef.HasRecord {
		t.Fatal("no-reference channel should still carry its record")
	}
	if noRef.RatioDefined {
		t.Fatal("no-reference channel must not have a defined ratio")
	}
	if noRef.Failure == "" {
		t.Fatal("no-reference channel should name its condition")
	}

	failed := rep.Rows[2]
	if failed.HasRecord || failed.HasRange {
		t.Fatalf("failed channel should carry no results: %+v", failed)
	}
	if !strings.Contains(failed.Failure, "device unavailable") {
		t.Fatalf("failed channel note = %q, want the device error", failed.Failure)
	}
}

func TestRenderText(t *testing.T) {
	var sb strings.Builder
	rep := Build("dev1", sampleOutcomes())
	if err := RenderText(&sb, rep); err != nil {
		t.Fatalf("RenderText returned error: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"dev1/ai0",
		"UNCLASSIFIED_DEVIATION",
		"3.178",
		"0.01 / 0.0318",
		"[-0.01, 0.01] V",
		"NO_REFERENCE_SIGNAL",
		"device unavailable",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered report missing %q:\n%s", want, out)
		}
	}

	if lines := strings.Count(out, "\n"); lines < 5 {
		t.Fatalf("report too short:\n%s", out)
	}
}
