package proposal

import (
	"math"
	"testing"
)

func TestMonthlyRequests(t *testing.T) {
	if got := MonthlyRequests(100); got != 3000 {
		t.Errorf("MonthlyRequests(100) = %v, want 3000", got)
	}
	if got := MonthlyRequests(0); got != 0 {
		t.Errorf("MonthlyRequests(0) = %v, want 0", got)
	}
}

func TestMonthlyCost(t *testing.T) {
	tests := []struct {
		name     string
		requests float64
		cost     float64
		want     float64
	}{
		{"simple", 3000, 0.01, 30},
		{"rounds to cents", 3000, 0.0033333, 10},
		{"zero volume", 0, 0.5, 0},
		{"zero cost", 3000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyCost(tt.requests, tt.cost); got != tt.want {
				t.Errorf("MonthlyCost(%v, %v) = %v, want %v", tt.requests, tt.cost, got, tt.want)
			}
		})
	}
}

func TestInfrastructureTotals(t *testing.T) {
	inf := Infrastructure{
		Services: []InfrastructureService{
			{Costs: Costs{MonthlyCost: 120.50}},
			{Costs: Costs{MonthlyCost: 79.50}},
		},
	}
	if got := inf.MonthlyTotal(); got != 200 {
		t.Errorf("MonthlyTotal = %v, want 200", got)
	}
	if got := inf.AnnualTotal(); got != 2400 {
		t.Errorf("AnnualTotal = %v, want 2400", got)
	}
}

func TestTimelineTotalWeeks(t *testing.T) {
	tests := []struct {
		name       string
		phases     []Phase
		wantWeeks  int
		wantMonths int
	}{
		{
			name:      "empty",
			wantWeeks: 0, wantMonths: 0,
		},
		{
			name: "weeks and months mixed",
			phases: []Phase{
				{Duration: 2, DurationUnit: UnitWeek},
				{Duration: 1, DurationUnit: UnitMonth},
			},
			wantWeeks: 6, wantMonths: 2,
		},
		{
			name: "below one month hides months",
			phases: []Phase{
				{Duration: 3, DurationUnit: UnitWeek},
			},
			wantWeeks: 3, wantMonths: 0,
		},
		{
			name: "unknown unit falls back to weeks",
			phases: []Phase{
				{Duration: 5, DurationUnit: "fortnight"},
			},
			wantWeeks: 5, wantMonths: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Timeline{Phases: tt.phases}
			if got := tl.TotalWeeks(); got != tt.wantWeeks {
				t.Errorf("TotalWeeks = %d, want %d", got, tt.wantWeeks)
			}
			if got := tl.TotalMonths(); got != tt.wantMonths {
				t.Errorf("TotalMonths = %d, want %d", got, tt.wantMonths)
			}
		})
	}
}

func TestSelectTier(t *testing.T) {
	tiers := []PricingTier{
		{Name: "MVP", Enabled: true, Value: 15000},
		{Name: "Smart", Enabled: true, Value: 20000, IsRecommended: true},
		{Name: "Premium", Enabled: true, Value: 30000},
	}

	got := SelectTier(tiers)
	if got == nil || got.Name != "Smart" || got.Value != 20000 {
		t.Fatalf("SelectTier = %+v, want Smart/20000", got)
	}

	// Selection is idempotent on an unchanged list.
	again := SelectTier(tiers)
	if again == nil || again.Name != got.Name {
		t.Errorf("second SelectTier = %+v, want %q again", again, got.Name)
	}

	// Removing the recommended flag falls back to the first enabled tier.
	tiers[1].IsRecommended = false
	got = SelectTier(tiers)
	if got == nil || got.Name != "MVP" || got.Value != 15000 {
		t.Errorf("SelectTier without recommended = %+v, want MVP/15000", got)
	}

	// A recommended but disabled tier does not win.
	tiers[2].IsRecommended = true
	tiers[2].Enabled = false
	got = SelectTier(tiers)
	if got == nil || got.Name != "MVP" {
		t.Errorf("SelectTier with disabled recommended = %+v, want MVP", got)
	}

	// No enabled tier yields nil.
	if got := SelectTier([]PricingTier{{Name: "Off"}}); got != nil {
		t.Errorf("SelectTier all disabled = %+v, want nil", got)
	}
	if got := SelectTier(nil); got != nil {
		t.Errorf("SelectTier(nil) = %+v, want nil", got)
	}
}

func TestNormalizeRecomputesDerivedFields(t *testing.T) {
	doc := DefaultDocument()
	doc.Infrastructure.Services = []InfrastructureService{
		{
			Name:   "LLM API",
			Volume: Volume{RequestsPerDay: 100, RequestsPerMonth: 999}, // stale cached value
			Costs:  Costs{CostPerRequest: 0.002, MonthlyCost: 123.45},  // stale cached value
		},
	}

	doc.Normalize()

	svc := doc.Infrastructure.Services[0]
	if svc.Volume.RequestsPerMonth != 3000 {
		t.Errorf("RequestsPerMonth = %v, want 3000", svc.Volume.RequestsPerMonth)
	}
	if svc.Costs.MonthlyCost != 6 {
		t.Errorf("MonthlyCost = %v, want 6", svc.Costs.MonthlyCost)
	}
}

func TestNormalizeFallsBackUnknownEnums(t *testing.T) {
	doc := DefaultDocument()
	doc.Context.Challenges = []Challenge{
		{Title: "Slow", Icon: "no-such-icon", Color: "magenta"},
	}
	doc.Solution.Features = []Feature{
		{Title: "Fast", Icon: "also-unknown", Color: "cyan"},
	}

	doc.Normalize()

	c := doc.Context.Challenges[0]
	if c.Icon != IconSparkles {
		t.Errorf("challenge icon = %q, want fallback %q", c.Icon, IconSparkles)
	}
	if c.Color != ColorRed {
		t.Errorf("challenge color = %q, want fallback %q", c.Color, ColorRed)
	}
	f := doc.Solution.Features[0]
	if f.Color != ColorIndigo {
		t.Errorf("feature color = %q, want fallback %q", f.Color, ColorIndigo)
	}
}

func TestRound2(t *testing.T) {
	if got := round2(10.0 / 3.0); math.Abs(got-3.33) > 1e-9 {
		t.Errorf("round2(10/3) = %v, want 3.33", got)
	}
	if got := round2(9.999); math.Abs(got-10.0) > 1e-9 {
		t.Errorf("round2(9.999) = %v, want 10", got)
	}
}
