package analysis

import (
	"testing"

	"github.com/sensorlab/shuntscope/internal/domain"
)

func TestClassifyKnownPatterns(t *testing.T) {
	var c Classifier

	cases := []struct {
		ratio float64
		want  domain.AnomalyClass
	}{
		{1.0, domain.AnomalyConsistent},
		{0.95, domain.AnomalyConsistent},
		{1.1, domain.AnomalyConsistent},
		{10.0, domain.AnomalyDecadeScale},
		{9.2, domain.AnomalyDecadeScale},
		{10.9, domain.AnomalyDecadeScale},
		{0.1, domain.AnomalyDecadeScale},
		{0.095, domain.AnomalyDecadeScale},
		{1000.0, domain.AnomalyUnitConversion},
		{1099.0, domain.AnomalyUnitConversion},
		{0.001, domain.AnomalyUnitConversion},
		{0.00105, domain.AnomalyUnitConversion},
		{3.18, domain.AnomalyUnclassified},
		{5.73, domain.AnomalyUnclassified},
		{42, domain.AnomalyUnclassified},
		{0.5, domain.AnomalyUnclassified},
		{-1.0, domain.AnomalyConsistent}, // magnitude rule
	}
	for _, tc := range cases {
		if got := c.Classify(tc.ratio); got != tc.want {
			t.Fatalf("Classify(%g) = %s, want %s", tc.ratio, got, tc.want)
		}
	}
}

func TestClassifyBandEdges(t *testing.T) {
	c := Classifier{Tolerance: 0.10}

	// Just inside and just outside the decade band.
	if got := c.Classify(9.0); got != domain.AnomalyDecadeScale {
		t.Fatalf("Classify(9.0) = %s, want DECADE_SCALE_ERROR", got)
	}
	if got := c.Classify(8.99); got != domain.AnomalyUnclassified {
		t.Fatalf("Classify(8.99) = %s, want UNCLASSIFIED_DEVIATION", got)
	}
	if got := c.Classify(11.01); got != domain.AnomalyUnclassified {
		t.Fatalf("Classify(11.01) = %s, want UNCLASSIFIED_DEVIATION", got)
	}
}

func TestClassifyTotality(t *testing.T) {
	// Every finite ratio maps to exactly one class; sweep a broad range of
	// magnitudes and check the mapping is never UNKNOWN.
	var c Classifier
	for r := 1e-6; r < 1e7; r *= 1.37 {
		got := c.Classify(r)
		switch got {
		case domain.AnomalyConsistent, domain.AnomalyDecadeScale,
			domain.AnomalyUnitConversion, domain.AnomalyUnclassified:
		default:
			t.Fatalf("Classify(%g) = %s, outside the ratio classes", r, got)
		}
	}
}

func TestClassifyConfigurableTolerance(t *testing.T) {
	tight := Classifier{Tolerance: 0.01}
	if got := tight.Classify(1.05); got != domain.AnomalyUnclassified {
		t.Fatalf("tight Classify(1.05) = %s, want UNCLASSIFIED_DEVIATION", got)
	}
	loose := Classifier{Tolerance: 0.2}
	if got := loose.Classify(1.15); got != domain.AnomalyConsistent {
		t.Fatalf("loose Classify(1.15) = %s, want CONSISTENT", got)
	}
}
