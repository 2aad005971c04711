package static

import (
	"context"
	"errors"
	"testing"

	"github.com/sensorlab/shuntscope/internal/domain"
)

func TestSourceReplaysTrace(t *testing.T) {
	source := NewSource(map[string]ChannelTrace{
		"ai0": {Samples: []float64{1e-5, 2e-5}},
	})

	batch, err := source.Acquire(context.Background(), "ai0", 5, 1000)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	want := []float64{1e-5, 2e-5, 1e-5, 2e-5, 1e-5}
	if len(batch.Samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(batch.Samples), len(want))
	}
	for i, s := range batch.Samples {
		if s != want[i] {
			t.Fatalf("sample %d = %g, want %g", i, s, want[i])
		}
	}
	if batch.SampleRateHz != 1000 {
		t.Fatalf("rate = %g, want 1000", batch.SampleRateHz)
	}
}

func TestSourceUnknownChannel(t *testing.T) {
	source := NewSource(nil)
	_, err := source.Acquire(context.Background(), "ai9", 10, 1000)
	if !errors.Is(err, domain.ErrDeviceUnavailable) {
		t.Fatalf("err = %v, want ErrDeviceUnavailable", err)
	}
}

func TestSourceHonorsCancellation(t *testing.T) {
	source := NewSource(map[string]ChannelTrace{"ai0": {Samples: []float64{1}}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := source.Acquire(ctx, "ai0", 1, 1000); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSourceTerminalModes(t *testing.T) {
	source := NewSource(map[string]ChannelTrace{
		"ai0": {Samples: []float64{1}, Modes: []domain.TerminalMode{domain.TerminalDifferential}},
	})
	modes := source.SupportedTerminalModes("ai0")
	if len(modes) != 1 || modes[0] != domain.TerminalDifferential {
		t.Fatalf("modes = %v, want [differential]", modes)
	}
	if got := source.SupportedTerminalModes("ai9"); len(got) != 0 {
		t.Fatalf("unknown channel modes = %v, want none", got)
	}
}

func TestReferenceLookup(t *testing.T) {
	refs := NewReference(
		map[string]float64{"ai0": 0.409},
		map[string][]domain.SweepPoint{"ai0": {{ReferenceMilliamps: 0.2, MeasuredVolt: 6.4e-6}}},
	)

	ma, err := refs.ReferenceCurrentMilliamps("ai0")
	if err != nil || ma != 0.409 {
		t.Fatalf("got (%g, %v), want (0.409, nil)", ma, err)
	}
	if _, err := refs.ReferenceCurrentMilliamps("ai1"); !errors.Is(err, domain.ErrNoReferenceSignal) {
		t.Fatalf("err = %v, want ErrNoReferenceSignal", err)
	}

	if sweep, ok := refs.CalibrationSweep("ai0"); !ok || len(sweep) != 1 {
		t.Fatalf("sweep = (%v, %v), want one point", sweep, ok)
	}
	if _, ok := refs.CalibrationSweep("ai1"); ok {
		t.Fatal("unexpected sweep for unconfigured channel")
	}
}

func TestCatalogFallsBackToDefaultLadder(t *testing.T) {
	catalog := NewCatalog(map[string][]domain.RangeCandidate{
		"tiny": {{MinVolt: -0.001, MaxVolt: 0.001}},
	})

	if got := catalog.SupportedRanges("tiny"); len(got) != 1 {
		t.Fatalf("ranges = %v, want the configured table", got)
	}
	def := catalog.SupportedRanges("other")
	if len(def) != 4 || def[0].MaxVolt != 10 || def[3].MaxVolt != 0.01 {
		t.Fatalf("default ladder = %v", def)
	}
}
