package proposal

import "math"

// daysPerMonth is the fixed month approximation used for volume roll-ups.
// Not calendar-accurate; a documented limitation of the cost model.
const daysPerMonth = 30

// weeksPerMonth converts month-denominated phase durations to weeks.
const weeksPerMonth = 4

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthlyRequests derives requests/month from requests/day.
func MonthlyRequests(requestsPerDay float64) float64 {
	return requestsPerDay * daysPerMonth
}

// MonthlyCost derives the monthly cost of a service from its monthly
// request volume and per-request cost, rounded to cents.
func MonthlyCost(requestsPerMonth, costPerRequest float64) float64 {
	return round2(requestsPerMonth * costPerRequest)
}

// MonthlyTotal sums the derived monthly cost over all services.
func (inf Infrastructure) MonthlyTotal() float64 {
	var total float64
	for i := range inf.Services {
		total += inf.Services[i].Costs.MonthlyCost
	}
	return round2(total)
}

// AnnualTotal is the monthly total projected over twelve months.
func (inf Infrastructure) AnnualTotal() float64 {
	return round2(inf.MonthlyTotal() * 12)
}

// TotalWeeks sums phase durations converted to weeks.
func (t Timeline) TotalWeeks() int {
	var weeks int
	for _, p := range t.Phases {
		switch NormalizeUnit(p.DurationUnit) {
		case UnitMonth:
			weeks += p.Duration * weeksPerMonth
		default:
			weeks += p.Duration
		}
	}
	return weeks
}

// TotalMonths is the months-equivalent of TotalWeeks, shown alongside the
// week count only when the total reaches a full month. Returns 0 below
// four weeks.
func (t Timeline) TotalMonths() int {
	weeks := t.TotalWeeks()
	if weeks < weeksPerMonth {
		return 0
	}
	return int(math.Round(float64(weeks) / weeksPerMonth))
}

// SelectTier resolves the tier a saved proposal is summarized by: the first
// tier that is both enabled and recommended wins; otherwise the first
// enabled tier in list order; nil when no tier is enabled.
func SelectTier(tiers []PricingTier) *PricingTier {
	for i := range tiers {
		if tiers[i].Enabled && tiers[i].IsRecommended {
			return &tiers[i]
		}
	}
	for i := range tiers {
		if tiers[i].Enabled {
			return &tiers[i]
		}
	}
	return nil
}

// Normalize recomputes every derived field in place and maps unknown enum
// tokens to their fallbacks. The stored copies of derived values are a
// snapshot cache, never a source of truth: this must run on every save.
func (d *Document) Normalize() {
	for i := range d.Context.Challenges {
		c := &d.Context.Challenges[i]
		c.Icon = NormalizeIcon(c.Icon)
		c.Color = NormalizeChallengeColor(c.Color)
	}
	for i := range d.Context.Impact.Assumptions {
		a := &d.Context.Impact.Assumptions[i]
		a.Icon = NormalizeIcon(a.Icon)
	}
	d.Context.Impact.ProvenImpactBox.Color = NormalizeImpactBoxColor(d.Context.Impact.ProvenImpactBox.Color)

	for i := range d.Solution.Features {
		f := &d.Solution.Features[i]
		f.Icon = NormalizeIcon(f.Icon)
		f.Color = NormalizeFeatureColor(f.Color)
	}

	d.Financial.RecommendationBox.Color = NormalizeRecommendationColor(d.Financial.RecommendationBox.Color)

	for i := range d.Infrastructure.Services {
		s := &d.Infrastructure.Services[i]
		s.Volume.RequestsPerMonth = MonthlyRequests(s.Volume.RequestsPerDay)
		s.Costs.MonthlyCost = MonthlyCost(s.Volume.RequestsPerMonth, s.Costs.CostPerRequest)
	}

	if d.Support != nil && d.Support.RecommendationBox != nil {
		d.Support.RecommendationBox.Color = NormalizeRecommendationColor(d.Support.RecommendationBox.Color)
	}

	for i := range d.Timeline.Phases {
		p := &d.Timeline.Phases[i]
		p.DurationUnit = NormalizeUnit(p.DurationUnit)
	}
}
