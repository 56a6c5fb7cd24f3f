// Package render turns a Proposal Document into a paginated visual tree.
// Rendering is pure: no I/O, no mutation of the input. Pagination hints
// (BreakBefore on sections, KeepTogether on blocks) are plain data the
// export adapter maps onto its pagination policy.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlriva/proposalforge/internal/domain/proposal"
)

// SectionKind identifies the template a section renders with.
type SectionKind string

const (
	KindCover          SectionKind = "cover"
	KindContext        SectionKind = "context"
	KindSolution       SectionKind = "solution"
	KindROI            SectionKind = "roi"
	KindTiers          SectionKind = "tiers"
	KindPayments       SectionKind = "payments"
	KindInfrastructure SectionKind = "infrastructure"
	KindSupport        SectionKind = "support"
	KindTimeline       SectionKind = "timeline"
	KindNextSteps      SectionKind = "next_steps"
	KindNarrative      SectionKind = "narrative"
	KindCTA            SectionKind = "cta"
)

// BlockKind identifies the visual unit a block renders as.
type BlockKind string

const (
	BlockRichText BlockKind = "richtext" // pre-sanitized markup, embedded as-is
	BlockText     BlockKind = "text"
	BlockCard     BlockKind = "card"
	BlockCallout  BlockKind = "callout"
	BlockMetric   BlockKind = "metric"
	BlockTier     BlockKind = "tier"
	BlockService  BlockKind = "service"
	BlockTotal    BlockKind = "total"
	BlockPhase    BlockKind = "phase"
	BlockStep     BlockKind = "step"
)

// Metric is one label/value pair inside a block.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Block is one atomic visual unit. Blocks with KeepTogether set must not
// be split across pages by the exporter.
type Block struct {
	Kind         BlockKind      `json:"kind"`
	KeepTogether bool           `json:"keepTogether,omitempty"`
	Icon         proposal.Icon  `json:"icon,omitempty"`
	Color        proposal.Color `json:"color,omitempty"`
	Title        string         `json:"title,omitempty"`
	Body         string         `json:"body,omitempty"` // rich text for BlockRichText/BlockTier
	Value        string         `json:"value,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Items        []string       `json:"items,omitempty"`
	Metrics      []Metric       `json:"metrics,omitempty"`
	Highlight    bool           `json:"highlight,omitempty"`
	Recommended  bool           `json:"recommended,omitempty"`
	LogoURL      string         `json:"logoUrl,omitempty"`
	LinkURL      string         `json:"linkUrl,omitempty"`
}

// Section is one independently-omittable part of the rendered document.
type Section struct {
	Kind        SectionKind `json:"kind"`
	Title       string      `json:"title,omitempty"`
	Subtitle    string      `json:"subtitle,omitempty"`
	BreakBefore bool        `json:"breakBefore,omitempty"`
	Blocks      []Block     `json:"blocks"`
}

// Document is the fully rendered visual tree.
type Document struct {
	ClientName   string    `json:"clientName"`
	ProjectTitle string    `json:"projectTitle"`
	Consultancy  string    `json:"consultancy"`
	Contact      string    `json:"contact"`
	Sections     []Section `json:"sections"`
}

// Render produces the paginated visual tree for a document. Each section
// is rendered independently and omitted entirely when its enable flag is
// off or its backing list is empty; no empty headers appear in the output.
func Render(doc proposal.Document) Document {
	out := Document{
		ClientName:   doc.Basic.ClientName,
		ProjectTitle: doc.Basic.ProjectTitle,
		Consultancy:  doc.Basic.ConsultancyName,
		Contact:      doc.Basic.ConsultancyEmail,
	}

	add := func(s Section, ok bool) {
		if ok {
			out.Sections = append(out.Sections, s)
		}
	}

	out.Sections = append(out.Sections, renderCover(doc.Basic))
	add(renderContext(doc.Context))
	add(renderSolution(doc.Solution))
	add(renderROI(doc.Financial.ROI))
	add(renderTiers(doc.Financial))
	add(renderPayments(doc.Financial.PaymentMethods))
	add(renderInfrastructure(doc.Infrastructure))
	add(renderSupport(doc.Support))
	add(renderTimeline(doc.Timeline))
	add(renderNextSteps(doc.Timeline.NextSteps))
	for _, s := range renderNarratives(doc.Timeline.Sections) {
		out.Sections = append(out.Sections, s)
	}
	add(renderCTA(doc.Timeline.CTA))

	return out
}

func renderCover(b proposal.Basic) Section {
	s := Section{
		Kind:     KindCover,
		Title:    b.ProjectTitle,
		Subtitle: b.ClientName,
	}
	if b.ProjectType != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockText, Body: b.ProjectType})
	}
	s.Blocks = append(s.Blocks, Block{
		Kind:  BlockText,
		Title: b.ConsultancyName,
		Body:  b.ConsultancyEmail,
	})
	return s
}

func renderContext(c proposal.Context) (Section, bool) {
	hasImpact := c.Impact.AnnualCost > 0 || len(c.Impact.Assumptions) > 0 ||
		c.Impact.ProvenImpactBox.Enabled
	if c.CurrentSituation == "" && len(c.Challenges) == 0 && !hasImpact {
		return Section{}, false
	}

	s := Section{Kind: KindContext, Title: "Current Situation", BreakBefore: true}

	if c.CurrentSituation != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockRichText, Body: c.CurrentSituation})
	}
	for _, ch := range c.Challenges {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockCard,
			KeepTogether: true,
			Icon:         proposal.NormalizeIcon(ch.Icon),
			Color:        proposal.NormalizeChallengeColor(ch.Color),
			Title:        ch.Title,
			Body:         ch.Description,
		})
	}

	if c.Impact.IntroText != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockText, Body: c.Impact.IntroText})
	}
	if c.Impact.AnnualCost > 0 {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockCallout,
			KeepTogether: true,
			Color:        proposal.ColorRed,
			Title:        "Estimated Annual Cost of the Status Quo",
			Value:        formatMoney(c.Impact.AnnualCost),
			Body:         c.Impact.CostDescription,
		})
	}
	for _, a := range c.Impact.Assumptions {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockCard,
			KeepTogether: true,
			Icon:         proposal.NormalizeIcon(a.Icon),
			Title:        a.Value,
			Body:         a.Description,
		})
	}
	if box := c.Impact.ProvenImpactBox; box.Enabled {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockCallout,
			KeepTogether: true,
			Color:        proposal.NormalizeImpactBoxColor(box.Color),
			Title:        box.Title,
			Body:         box.MainMessage,
			Value:        box.SecondaryMessage,
		})
	}
	return s, true
}

func renderSolution(sol proposal.Solution) (Section, bool) {
	if sol.Description == "" && len(sol.Features) == 0 {
		return Section{}, false
	}

	s := Section{Kind: KindSolution, Title: "Proposed Solution", BreakBefore: true}
	if sol.IntroText != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockText, Body: sol.IntroText})
	}
	if sol.Description != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockRichText, Body: sol.Description})
	}
	for _, f := range sol.Features {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockCard,
			KeepTogether: true,
			Icon:         proposal.NormalizeIcon(f.Icon),
			Color:        proposal.NormalizeFeatureColor(f.Color),
			Title:        f.Title,
			Body:         f.Description,
			Tags:         f.Tags,
		})
	}
	return s, true
}

func renderROI(roi proposal.ROI) (Section, bool) {
	s := Section{Kind: KindROI, Title: "Expected Return", BreakBefore: true}
	metric := func(label, value string) {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockMetric,
			KeepTogether: true,
			Metrics:      []Metric{{Label: label, Value: value}},
		})
	}
	if roi.Savings > 0 {
		metric("Annual Savings", formatMoney(roi.Savings))
	}
	if roi.Gain > 0 {
		metric("Year 1 Gain", formatMoney(roi.Gain))
	}
	if roi.GainYear2 > 0 {
		metric("Year 2 Gain", formatMoney(roi.GainYear2))
	}
	if roi.ReturnMultiplier > 0 {
		metric("Return on Investment", formatMultiplier(roi.ReturnMultiplier))
	}
	if roi.PaybackMonths > 0 {
		metric("Payback", formatMonths(roi.PaybackMonths))
	}
	// Zero and negative metrics emit nothing; a section with no blocks
	// would be a bare header, so it is dropped entirely.
	if len(s.Blocks) == 0 {
		return Section{}, false
	}
	return s, true
}

func renderTiers(f proposal.Financial) (Section, bool) {
	enabled := enabledTiers(f.Tiers)
	if len(enabled) == 0 {
		return Section{}, false
	}

	s := Section{Kind: KindTiers, Title: "Investment Options", BreakBefore: true}
	for _, t := range enabled {
		b := Block{
			Kind:         BlockTier,
			KeepTogether: true,
			Title:        t.Name,
			Value:        formatMoney(t.Value),
			Body:         t.Description,
			Items:        t.Items,
			Recommended:  t.Recommended,
			Metrics:      t.Metrics,
		}
		s.Blocks = append(s.Blocks, b)
	}

	if box := f.RecommendationBox; box.Enabled && box.Text != "" {
		title := "Our Recommendation"
		if resolveTier(f.Tiers, box.RecommendedTier) != nil {
			title = "Our Recommendation: " + box.RecommendedTier
		}
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockCallout,
			KeepTogether: true,
			Color:        proposal.NormalizeRecommendationColor(box.Color),
			Title:        title,
			Body:         box.Text,
		})
	}
	return s, true
}

// tierView is the common projection of pricing and support tiers.
type tierView struct {
	Name        string
	Value       float64
	Description string
	Items       []string
	Recommended bool
	Metrics     []Metric
}

func enabledTiers(tiers []proposal.PricingTier) []tierView {
	var out []tierView
	for _, t := range tiers {
		if !t.Enabled {
			continue
		}
		v := tierView{
			Name:        t.Name,
			Value:       t.Value,
			Description: t.Description,
			Items:       t.Features,
			Recommended: t.IsRecommended,
		}
		if t.ROI > 0 {
			v.Metrics = append(v.Metrics, Metric{Label: "ROI", Value: formatMultiplier(t.ROI)})
		}
		if t.Payback > 0 {
			v.Metrics = append(v.Metrics, Metric{Label: "Payback", Value: formatMonths(t.Payback)})
		}
		if t.Reduction > 0 {
			v.Metrics = append(v.Metrics, Metric{Label: "Cost Reduction", Value: formatPercent(t.Reduction)})
		}
		out = append(out, v)
	}
	return out
}

// resolveTier finds an enabled tier by name, or nil. The recommendation
// box's reference is free text; a dangling name degrades to plain text.
func resolveTier(tiers []proposal.PricingTier, name string) *proposal.PricingTier {
	if name == "" {
		return nil
	}
	for i := range tiers {
		if tiers[i].Enabled && strings.EqualFold(tiers[i].Name, name) {
			return &tiers[i]
		}
	}
	return nil
}

func renderPayments(methods []proposal.PaymentMethod) (Section, bool) {
	var blocks []Block
	for _, m := range methods {
		if !m.Enabled {
			continue
		}
		blocks = append(blocks, Block{
			Kind:         BlockCard,
			KeepTogether: true,
			Title:        m.Title,
			Body:         m.Description,
			Highlight:    m.Highlighted,
		})
	}
	if len(blocks) == 0 {
		return Section{}, false
	}
	return Section{
		Kind:        KindPayments,
		Title:       "Payment Terms",
		BreakBefore: false,
		Blocks:      blocks,
	}, true
}

func renderInfrastructure(inf proposal.Infrastructure) (Section, bool) {
	if !inf.Enabled || len(inf.Services) == 0 {
		return Section{}, false
	}

	s := Section{Kind: KindInfrastructure, Title: "Recurring Infrastructure Costs", BreakBefore: true}
	if inf.Introduction != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockText, Body: inf.Introduction})
	}
	for _, svc := range inf.Services {
		b := Block{
			Kind:         BlockService,
			KeepTogether: true,
			Title:        svc.Name,
			Body:         svc.Description,
			Metrics: []Metric{
				{Label: "Model", Value: svc.Model},
				{Label: "Requests/day", Value: formatCount(svc.Volume.RequestsPerDay)},
				{Label: "Requests/month", Value: formatCount(svc.Volume.RequestsPerMonth)},
				{Label: "Cost/request", Value: formatMoneyPrecise(svc.Costs.CostPerRequest)},
				{Label: "Monthly cost", Value: formatMoney(svc.Costs.MonthlyCost)},
			},
		}
		if svc.Logo != nil {
			b.LogoURL = svc.Logo.Value
		}
		s.Blocks = append(s.Blocks, b)
	}

	s.Blocks = append(s.Blocks, Block{
		Kind:         BlockTotal,
		KeepTogether: true,
		Metrics: []Metric{
			{Label: "Total Monthly", Value: formatMoney(inf.MonthlyTotal())},
			{Label: "Total Annual", Value: formatMoney(inf.AnnualTotal())},
		},
	})
	if inf.ClientNote != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockCallout, KeepTogether: true, Body: inf.ClientNote})
	}
	return s, true
}

func renderSupport(sup *proposal.Support) (Section, bool) {
	if sup == nil || !sup.Enabled || len(sup.Tiers) == 0 {
		return Section{}, false
	}

	anyEnabled := false
	for _, t := range sup.Tiers {
		if t.Enabled {
			anyEnabled = true
			break
		}
	}
	if !anyEnabled {
		return Section{}, false
	}

	s := Section{Kind: KindSupport, Title: "Support Plans", BreakBefore: true}
	if sup.Introduction != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockText, Body: sup.Introduction})
	}
	for _, t := range sup.Tiers {
		if !t.Enabled {
			continue
		}
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockTier,
			KeepTogether: true,
			Title:        t.Name,
			Value:        formatMoney(t.Value),
			Body:         t.Description,
			Items:        t.Features,
			Recommended:  t.IsRecommended,
			Metrics: []Metric{
				{Label: "Response Time", Value: t.ResponseTime},
				{Label: "Availability", Value: t.Availability},
			},
		})
	}
	if box := sup.RecommendationBox; box != nil && box.Enabled && box.Text != "" {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockCallout,
			KeepTogether: true,
			Color:        proposal.NormalizeRecommendationColor(box.Color),
			Title:        "Recommended Plan: " + box.RecommendedTier,
			Body:         box.Text,
		})
	}
	return s, true
}

func renderTimeline(t proposal.Timeline) (Section, bool) {
	if len(t.Phases) == 0 {
		return Section{}, false
	}

	s := Section{Kind: KindTimeline, Title: "Project Timeline", BreakBefore: true}
	for _, p := range t.Phases {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockPhase,
			KeepTogether: true,
			Title:        p.Name,
			Value:        formatDuration(p.Duration, p.DurationUnit),
			Body:         p.Description,
		})
	}

	weeks := t.TotalWeeks()
	total := Block{
		Kind:         BlockTotal,
		KeepTogether: true,
		Metrics:      []Metric{{Label: "Total Duration", Value: pluralWeeks(weeks)}},
	}
	if months := t.TotalMonths(); months > 0 {
		total.Metrics = append(total.Metrics, Metric{Label: "Approximately", Value: pluralMonths(months)})
	}
	s.Blocks = append(s.Blocks, total)
	return s, true
}

func renderNextSteps(steps []proposal.NextStep) (Section, bool) {
	if len(steps) == 0 {
		return Section{}, false
	}
	s := Section{Kind: KindNextSteps, Title: "Next Steps", BreakBefore: true}
	for _, st := range steps {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockStep,
			KeepTogether: true,
			Value:        strconv.Itoa(st.Number),
			Title:        st.Title,
			Body:         st.Description,
		})
	}
	return s, true
}

// narrativeCopy holds the fixed closing narrative blocks toggled by the
// timeline section flags.
var narrativeCopy = []struct {
	flag  func(proposal.SectionFlags) bool
	title string
	body  string
}{
	{
		flag:  func(f proposal.SectionFlags) bool { return f.Support },
		title: "Ongoing Support",
		body:  "Every delivery includes a stabilization window with direct access to the team that built the solution, so issues found in real use are fixed at the source.",
	},
	{
		flag:  func(f proposal.SectionFlags) bool { return f.Training },
		title: "Training & Handover",
		body:  "Your team receives hands-on training and written runbooks covering operation, monitoring, and the most common adjustments, so the solution is yours to run.",
	},
	{
		flag:  func(f proposal.SectionFlags) bool { return f.WhyUs },
		title: "Why Work With Us",
		body:  "We ship in small increments with measurable checkpoints, keep communication asynchronous-first, and price by outcome rather than hours.",
	},
}

func renderNarratives(flags proposal.SectionFlags) []Section {
	var out []Section
	for _, n := range narrativeCopy {
		if !n.flag(flags) {
			continue
		}
		out = append(out, Section{
			Kind:  KindNarrative,
			Title: n.title,
			Blocks: []Block{
				{Kind: BlockText, KeepTogether: true, Body: n.body},
			},
		})
	}
	return out
}

func renderCTA(cta proposal.CTA) (Section, bool) {
	if cta.Title == "" && cta.ButtonText == "" {
		return Section{}, false
	}
	s := Section{
		Kind:        KindCTA,
		Title:       cta.Title,
		Subtitle:    cta.Subtitle,
		BreakBefore: true,
	}
	if cta.ButtonText != "" {
		s.Blocks = append(s.Blocks, Block{
			Kind:         BlockCallout,
			KeepTogether: true,
			Title:        cta.ButtonText,
			LinkURL:      cta.WhatsappLink,
		})
	}
	return s, true
}

// --- Formatting helpers ---

// formatMoney renders a currency amount with thousands separators and no
// trailing cents when the value is whole.
func formatMoney(v float64) string {
	whole := v == float64(int64(v))
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if !whole {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return "$" + out
}

// formatMoneyPrecise keeps up to 6 decimal places for per-request costs.
func formatMoneyPrecise(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCount(v float64) string {
	return strings.TrimPrefix(formatMoney(v), "$")
}

func formatMultiplier(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "x"
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func formatMonths(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " months"
}

func formatDuration(n int, unit proposal.DurationUnit) string {
	switch proposal.NormalizeUnit(unit) {
	case proposal.UnitMonth:
		if n == 1 {
			return "1 month"
		}
		return fmt.Sprintf("%d months", n)
	default:
		if n == 1 {
			return "1 week"
		}
		return fmt.Sprintf("%d weeks", n)
	}
}

func pluralWeeks(n int) string {
	if n == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", n)
}

func pluralMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}
