package scoring

import (
	"testing"

	"github.com/huddleai/huddle/pkg/models"
)

func TestSettingsPrefersLeague(t *testing.T) {
	league := &models.League{
		ScoringSettings: map[string]float64{"receptions": 0.5},
	}
	s := Settings(league)
	if s["receptions"] != 0.5 {
		t.Errorf("expected league half-PPR setting, got %v", s["receptions"])
	}
}

func TestSettingsFallsBackToPPR(t *testing.T) {
	s := Settings(&models.League{})
	if s["receptions"] != 1.0 {
		t.Errorf("expected PPR fallback, got %v", s["receptions"])
	}
	if s["passing_td"] != 4 {
		t.Errorf("expected 4-point passing TD, got %v", s["passing_td"])
	}

	// Fallback is a copy; callers must not mutate the defaults.
	s["receptions"] = 99
	if again := Settings(nil); again["receptions"] != 1.0 {
		t.Error("mutating a returned settings map must not affect the defaults")
	}
}

func TestProjections(t *testing.T) {
	catalog := map[string]models.Player{
		"qb1": {Position: "QB"},
		"rb1": {Position: "RB"},
		"xx1": {Position: "LS"}, // no baseline for long snappers
	}

	projections := Projections([]string{"qb1", "rb1", "xx1", "ghost"}, catalog, 2, "2026")
	if len(projections) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(projections))
	}
	if got := projections["qb1"].Points; got != 19.0 {
		t.Errorf("early-season QB baseline: expected 19.0, got %v", got)
	}

	late := Projections([]string{"qb1"}, catalog, 12, "2026")
	if got := late["qb1"].Points; got != 17.0 {
		t.Errorf("late-season QB baseline: expected 17.0, got %v", got)
	}
	if late["qb1"].Week != 12 || late["qb1"].Season != "2026" {
		t.Errorf("projection metadata mismatch: %+v", late["qb1"])
	}
}

func TestValueScore(t *testing.T) {
	cases := []struct {
		position string
		points   float64
		want     float64
	}{
		{"RB", 10, 12},
		{"TE", 10, 13},
		{"K", 10, 8},
		{"FB", 10, 10}, // unknown position gets no multiplier
	}
	for _, tc := range cases {
		if got := ValueScore(tc.position, tc.points); got != tc.want {
			t.Errorf("ValueScore(%s, %v) = %v, want %v", tc.position, tc.points, got, tc.want)
		}
	}
}

func TestRecommendation(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{16, "Must Start"},
		{13, "Strong Start"},
		{10, "Start"},
		{7, "Flex Consideration"},
		{3, "Bench"},
	}
	for _, tc := range cases {
		if got := Recommendation(tc.score); got != tc.want {
			t.Errorf("Recommendation(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
