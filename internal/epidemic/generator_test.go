package epidemic

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateTwoRowScenario(t *testing.T) {
	region := Region{Center: Point{X: 15, Y: 15}, Width: 30, Height: 30}

	pop, err := Generate(region, 15)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len(pop) != 2 {
		t.Fatalf("len(pop) = %d, expected 2", len(pop))
	}

	expected := []Point{{X: 15, Y: 0}, {X: 15, Y: 30}}
	for i, a := range pop {
		if a.Status.Kind != Susceptible {
			t.Errorf("agent %d status = %s, expected Susceptible", i, a.Status.Kind)
		}
		if a.Pos != expected[i] {
			t.Errorf("agent %d pos = %+v, expected %+v", i, a.Pos, expected[i])
		}
	}
	if pop[0].ID == pop[1].ID {
		t.Errorf("agents share id %d", pop[0].ID)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		region  Region
		spacing float64
		field   string
	}{
		{"zero width", Region{Width: 0, Height: 30}, 15, "width"},
		{"negative height", Region{Width: 30, Height: -1}, 15, "height"},
		{"zero spacing", Region{Width: 30, Height: 30}, 0, "spacing"},
		{"nan spacing", Region{Width: 30, Height: 30}, math.NaN(), "spacing"},
		{"infinite width", Region{Width: math.Inf(1), Height: 30}, 15, "width"},
		{"narrower than spacing", Region{Width: 10, Height: 10}, 15, "region"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pop, err := Generate(tc.region, tc.spacing)
			if err == nil {
				t.Fatalf("Generate() = %d agents, expected error", len(pop))
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("errors.Is(err, ErrConfiguration) = false for %v", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error %T is not *ConfigurationError", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("Field = %q, expected %q", cfgErr.Field, tc.field)
			}
		})
	}
}

func TestGenerateSilhouette(t *testing.T) {
	region := Region{Center: Point{X: 300, Y: 300}, Width: 585, Height: 585}

	pop, err := Generate(region, DefaultSpacing)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	rows := make(map[float64]int)
	var order []float64
	for _, a := range pop {
		if _, ok := rows[a.Pos.Y]; !ok {
			order = append(order, a.Pos.Y)
		}
		rows[a.Pos.Y]++

		if a.Pos.X < region.Center.X-region.Width/2-layoutEpsilon ||
			a.Pos.X > region.Center.X+region.Width/2+layoutEpsilon ||
			a.Pos.Y < region.Center.Y-region.Height/2-layoutEpsilon ||
			a.Pos.Y > region.Center.Y+region.Height/2+layoutEpsilon {
			t.Errorf("agent %d at %+v is outside the region", a.ID, a.Pos)
		}
	}

	if len(order) != 39 {
		t.Fatalf("row count = %d, expected 39", len(order))
	}
	if got := rows[order[0]]; got != 1 {
		t.Errorf("first row = %d agents, expected 1", got)
	}
	if got := rows[order[len(order)-1]]; got != 1 {
		t.Errorf("last row = %d agents, expected 1", got)
	}
	if got := rows[order[19]]; got != 39 {
		t.Errorf("middle row = %d agents, expected 39", got)
	}
	for i := range order {
		mirror := order[len(order)-1-i]
		if rows[order[i]] != rows[mirror] {
			t.Errorf("row %d has %d agents, mirror row has %d", i, rows[order[i]], rows[mirror])
		}
	}
}

func TestGenerateIsRepeatable(t *testing.T) {
	region := RegionForCanvas(200, 120, DefaultSpacing)

	a, err := Generate(region, DefaultSpacing)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	b, err := Generate(region, DefaultSpacing)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("len = %d and %d, expected equal", len(a), len(b))
	}

	ids := make(map[AgentID]bool)
	for i := range a {
		if a[i].Pos != b[i].Pos {
			t.Errorf("agent %d pos = %+v and %+v, expected equal", i, a[i].Pos, b[i].Pos)
		}
		if ids[a[i].ID] || ids[b[i].ID] {
			t.Errorf("duplicate id at index %d", i)
		}
		ids[a[i].ID] = true
		ids[b[i].ID] = true
	}
}
