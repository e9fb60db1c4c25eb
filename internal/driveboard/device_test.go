package driveboard

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(b []byte) (int, error) {
	w.writes++
	return 0, errors.New("link down")
}

func TestDeviceRun(t *testing.T) {
	program, err := Generate(pulsesFromRows([]byte{0, 3, 3, 0}), testParams(nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var buf bytes.Buffer
	if err := New(&buf).Run(program, 6000); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expected := "M80\n" + program.String() + "G0 X0.000 Y0.000 F6000.00\nM81\n"
	if buf.String() != expected {
		t.Fatalf("unexpected output:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestDeviceStopsOnError(t *testing.T) {
	program, err := Generate(pulsesFromRows([]byte{1, 1}, []byte{1, 1}), testParams(nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := &failingWriter{}
	if err := New(w).Send(program); err == nil {
		t.Fatal("expected an error")
	}
	if w.writes != 1 {
		t.Fatalf("expected a single write attempt, got %d", w.writes)
	}
}

func TestCommandText(t *testing.T) {
	cases := []struct {
		command  Command
		expected string
	}{
		{SetIntensity{}, "S0"},
		{SetFeedrate{Feedrate: 1234.5678}, "G0 F1234.568"},
		{Move{X: -0.0, Y: 1.5}, "G0 X0.000 Y1.500"},
		{Move{X: 1, Y: 2, Feedrate: 8000}, "G0 X1.000 Y2.000 F8000.00"},
		{RasterMove{X: 1, Y: 2, Data: []byte{127, 0, 3}}, "G7 X1.000 Y2.000V1 DfwAD"},
		{Air{On: true}, "M80"},
		{Air{}, "M81"},
	}
	for _, c := range cases {
		if actual := string(c.command.AppendText(nil)); actual != c.expected {
			t.Errorf("%#v: expected %q, got %q", c.command, c.expected, actual)
		}
	}
}

func TestSimulate(t *testing.T) {
	program, err := Generate(pulsesFromRows([]byte{0, 3, 3, 0}), testParams(nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	report := Simulate(program, 8000)
	// Origin to the lead-in point, then 2 + 0.2 + 2 mm along the line.
	distance := math.Hypot(8.1, 10) + 4.2
	if math.Abs(report.Distance-distance) > 1e-9 {
		t.Errorf("Distance = %v, expected %v", report.Distance, distance)
	}
	if math.Abs(report.Minutes-distance/6000) > 1e-12 {
		t.Errorf("Minutes = %v, expected %v", report.Minutes, distance/6000)
	}
	if report.RasterBytes != 2 || report.Commands != 6 {
		t.Errorf("unexpected report %+v", report)
	}
	if !strings.HasPrefix(program.String(), "S0\n") {
		t.Errorf("program does not start with S0")
	}
}
