package driveboard

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/pgavlin/lilraster/internal/bitmap"
	"github.com/pgavlin/lilraster/internal/laser"
)

func testParams(f func(p *laser.Params)) laser.Params {
	p := laser.Params{
		Settings:        laser.Settings{PosX: 10, PosY: 10, SkipEmpty: true},
		Machine:         laser.Lasersaur,
		Pulse:           3,
		ActualPPMM:      10,
		Feedrate:        6000,
		EffectiveLeadIn: 2,
	}
	if f != nil {
		f(&p)
	}
	return p
}

func pulsesFromRows(rows ...[]byte) *bitmap.Pulses {
	p := bitmap.NewPulses(len(rows[0]), len(rows))
	for y, row := range rows {
		copy(p.Row(y), row)
	}
	return p
}

// scanLine is the raster portion of one emitted line.
type scanLine struct {
	start   Move // the move immediately preceding the first raster chunk
	chunks  []RasterMove
	forward bool
}

func (l scanLine) data() []byte {
	var data []byte
	for _, c := range l.chunks {
		data = append(data, c.Data...)
	}
	return data
}

func scanLines(p *Program) []scanLine {
	var lines []scanLine
	var last Move
	for _, c := range p.Commands() {
		switch c := c.(type) {
		case Move:
			last = c
		case RasterMove:
			if len(lines) == 0 || lines[len(lines)-1].start != last {
				lines = append(lines, scanLine{start: last, forward: c.X > last.X})
			}
			l := &lines[len(lines)-1]
			l.chunks = append(l.chunks, c)
		}
	}
	return lines
}

func TestGenerateText(t *testing.T) {
	program, err := Generate(pulsesFromRows([]byte{0, 3, 3, 0}), testParams(nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	expected := strings.Join([]string{
		"S0",
		"G0 F6000.000",
		"G0 X8.100 Y10.000",
		"G0 X10.100 Y10.000",
		"G7 X10.300 Y10.000V1 DAwM=",
		"G0 X12.300 Y10.000",
	}, "\n") + "\n"
	if actual := program.String(); actual != expected {
		t.Fatalf("unexpected program:\n%s\nexpected:\n%s", actual, expected)
	}
}

func TestGenerateEmpty(t *testing.T) {
	program, err := Generate(bitmap.NewPulses(0, 0), testParams(nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if program.Len() != 0 {
		t.Fatalf("expected an empty program, got %q", program.String())
	}
}

func TestGenerateRejectsInfeasiblePulses(t *testing.T) {
	_, err := Generate(pulsesFromRows([]byte{0, 128, 3}), testParams(nil))
	if !errors.Is(err, laser.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestGenerateSkipEmpty(t *testing.T) {
	pulses := pulsesFromRows(
		[]byte{0, 0, 3, 0},
		[]byte{0, 0, 0, 0},
		[]byte{3, 0, 0, 0},
	)
	program, err := Generate(pulses, testParams(nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, c := range program.Commands() {
		var y float64
		switch c := c.(type) {
		case Move:
			y = c.Y
		case RasterMove:
			y = c.Y
		default:
			continue
		}
		if math.Abs(y-10.1) < 1e-9 {
			t.Fatalf("empty line emitted %q", string(c.AppendText(nil)))
		}
	}

	lines := scanLines(program)
	if len(lines) != 2 {
		t.Fatalf("expected 2 scan lines, got %d", len(lines))
	}
	// A single pulse at index k starts at x0 + k/ppmm.
	if x := lines[0].start.X; math.Abs(x-(10+2.0/10)) > 1e-9 {
		t.Errorf("first line starts at %v, expected 10.2", x)
	}
	if x := lines[1].start.X; math.Abs(x-10) > 1e-9 {
		t.Errorf("second line starts at %v, expected 10", x)
	}
}

func TestGenerateWithoutSkipEmpty(t *testing.T) {
	pulses := pulsesFromRows([]byte{0, 0, 0}, []byte{0, 3, 0})
	program, err := Generate(pulses, testParams(func(p *laser.Params) {
		p.SkipEmpty = false
		p.EffectiveLeadIn = 0
	}))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	expected := []string{
		"S0",
		"G0 F6000.000",
		"G0 X10.000 Y10.000",
		"G7 X10.300 Y10.000V1 DAAAA",
		"G0 X10.000 Y10.100",
		"G7 X10.300 Y10.100V1 DAAMA",
	}
	if actual := program.Lines(); strings.Join(actual, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("unexpected program %q, expected %q", actual, expected)
	}
}

func TestGenerateBidirectional(t *testing.T) {
	rows := make([][]byte, 6)
	for i := range rows {
		rows[i] = []byte{0, 1, 2, 3, 0}
	}
	rows[3] = []byte{0, 0, 0, 0, 0}
	pulses := pulsesFromRows(rows...)

	program, err := Generate(pulses, testParams(func(p *laser.Params) { p.Bidirectional = true }))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	lines := scanLines(program)
	if len(lines) != 5 {
		t.Fatalf("expected 5 scan lines, got %d", len(lines))
	}
	// Lines 0, 1, 2, 4 and 5 are emitted. The skipped line 3 still advances the direction, so every line
	// scans forward exactly when its index is even.
	for i, index := range []int{0, 1, 2, 4, 5} {
		if lines[i].forward != (index%2 == 0) {
			t.Errorf("line %d: forward = %v", index, lines[i].forward)
		}
	}

	// A reversed line starts on its last pulse and ends one dot before its first.
	reverse := lines[1]
	if math.Abs(reverse.start.X-10.3) > 1e-9 {
		t.Errorf("reverse line starts at %v, expected 10.3", reverse.start.X)
	}
	if end := reverse.chunks[len(reverse.chunks)-1].X; math.Abs(end-10.0) > 1e-9 {
		t.Errorf("reverse line ends at %v, expected 10.0", end)
	}
	if data := reverse.data(); !bytes.Equal(data, []byte{3, 2, 1}) {
		t.Errorf("reverse line data = %v", data)
	}
}

func TestGenerateUnidirectional(t *testing.T) {
	pulses := pulsesFromRows([]byte{1, 1}, []byte{1, 1}, []byte{1, 1})
	program, err := Generate(pulses, testParams(nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, l := range scanLines(program) {
		if !l.forward {
			t.Errorf("line %d is not scanned forward", i)
		}
	}
}

func TestGenerateChunking(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const width, height = 157, 6
	pulses := bitmap.NewPulses(width, height)
	for i := range pulses.Pix {
		pulses.Pix[i] = byte(1 + rng.Intn(127))
	}

	for _, chunkSize := range []int{1, 7, 60, 200} {
		params := testParams(func(p *laser.Params) {
			p.Bidirectional = true
			p.Machine.RasterBytesMax = chunkSize
		})
		program, err := Generate(pulses, params)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		lines := scanLines(program)
		if len(lines) != height {
			t.Fatalf("chunk size %d: expected %d lines, got %d", chunkSize, height, len(lines))
		}
		for y, l := range lines {
			for _, c := range l.chunks {
				if len(c.Data) > chunkSize {
					t.Fatalf("chunk size %d: raster move carries %d bytes", chunkSize, len(c.Data))
				}
			}

			data := l.data()
			if !l.forward {
				data = reversed(data)
			}
			if !bytes.Equal(data, pulses.Row(y)) {
				t.Fatalf("chunk size %d: line %d does not reconstruct its pulses", chunkSize, y)
			}

			// Chunk end points advance monotonically and the last one reaches the end of the line.
			step := 1.0 / params.ActualPPMM
			end := l.start.X + float64(width)*step
			if !l.forward {
				end = l.start.X - float64(width)*step
			}
			if last := l.chunks[len(l.chunks)-1].X; math.Abs(last-end) > 1e-9 {
				t.Fatalf("chunk size %d: line %d ends at %v, expected %v", chunkSize, y, last, end)
			}
			consumed := 0
			for _, c := range l.chunks {
				consumed += len(c.Data)
				expected := l.start.X + float64(consumed)/float64(width)*(end-l.start.X)
				if math.Abs(c.X-expected) > 1e-9 {
					t.Fatalf("chunk size %d: chunk ends at %v, expected %v", chunkSize, c.X, expected)
				}
			}
		}
	}
}

func TestGenerateDoesNotAliasPulses(t *testing.T) {
	pulses := pulsesFromRows([]byte{5, 6, 7})
	program, err := Generate(pulses, testParams(func(p *laser.Params) { p.SkipEmpty = false }))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	before := program.String()
	pulses.Row(0)[1] = 9
	if program.String() != before {
		t.Fatal("program changed after the pulse buffer was modified")
	}
}
