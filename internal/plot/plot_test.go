package plot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/outbreak/internal/epidemic"
	"github.com/vovakirdan/outbreak/internal/runner"
)

func sampleCurve() []runner.Sample {
	var curve []runner.Sample
	for tick := 0; tick <= 40; tick++ {
		infected := 1 + tick%10
		curve = append(curve, runner.Sample{
			Tick: tick,
			Counts: epidemic.Counts{
				Alive:       50 - tick/10,
				Susceptible: 50 - tick/10 - infected - tick/2,
				Infected:    infected,
				Recovered:   tick / 2,
				Dead:        tick / 10,
			},
		})
	}
	return curve
}

func TestCurveRendersPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Curve(&buf, sampleCurve(), Options{Title: "test", Width: 400, Height: 200}); err != nil {
		t.Fatalf("Curve() failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("image size = %dx%d, expected 400x200", b.Dx(), b.Dy())
	}
}

func TestCurveNeedsTwoSamples(t *testing.T) {
	var buf bytes.Buffer
	if err := Curve(&buf, sampleCurve()[:1], Options{}); err == nil {
		t.Error("Curve() with one sample returned nil error")
	}
}

func TestCurveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "curve.png")
	if err := CurveFile(path, sampleCurve(), Options{}); err != nil {
		t.Fatalf("CurveFile() failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("CurveFile() wrote an empty file")
	}
}
