package motion

import (
	"math"
	"testing"
)

const acceleration = 1800000.0

func TestLeadIn(t *testing.T) {
	cases := []struct {
		requested, feedrate, expected float64
	}{
		{requested: 2.5, feedrate: 6000, expected: 2.5},
		{requested: 500, feedrate: 6000, expected: 10 + 300},
		{requested: 500, feedrate: 600, expected: 0.1 + 30},
		{requested: 0, feedrate: 6000, expected: 0},
	}
	for _, c := range cases {
		if actual := LeadIn(c.requested, c.feedrate, acceleration); math.Abs(actual-c.expected) > 1e-9 {
			t.Errorf("LeadIn(%v, %v) = %v, expected %v", c.requested, c.feedrate, actual, c.expected)
		}
	}
}

func TestLineDurationCruising(t *testing.T) {
	// 6000 mm/min needs 10mm to accelerate, so a 40mm line cruises for 20mm.
	actual := LineDuration(6000, 0, 40, acceleration)
	expected := 20.0/6000 + 2*math.Sqrt(2*10.0/acceleration)
	if math.Abs(actual-expected) > 1e-12 {
		t.Fatalf("LineDuration = %v, expected %v", actual, expected)
	}
}

func TestLineDurationNoCruise(t *testing.T) {
	// A 4mm line never reaches 6000 mm/min: it accelerates over 2mm and decelerates over 2mm.
	actual := LineDuration(6000, 1, 2, acceleration)
	expected := 2 * math.Sqrt(2*2.0/acceleration)
	if math.Abs(actual-expected) > 1e-12 {
		t.Fatalf("LineDuration = %v, expected %v", actual, expected)
	}
}

func TestEstimateDirectionality(t *testing.T) {
	bidirectional := Estimate(171, 6000, 2.5, 20, acceleration, true)
	unidirectional := Estimate(171, 6000, 2.5, 20, acceleration, false)
	if unidirectional != 2*bidirectional {
		t.Fatalf("unidirectional estimate %v is not twice the bidirectional estimate %v", unidirectional, bidirectional)
	}

	expected := LineDuration(6000, 2.5, 20, acceleration) * 171 * 60
	if math.Abs(bidirectional-expected) > 1e-9 {
		t.Fatalf("Estimate = %v, expected %v", bidirectional, expected)
	}
}

func TestEstimateEmpty(t *testing.T) {
	if actual := Estimate(0, 6000, 2.5, 20, acceleration, false); actual != 0 {
		t.Fatalf("Estimate of an empty job = %v", actual)
	}
}
