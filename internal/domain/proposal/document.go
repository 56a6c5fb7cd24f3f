// Package proposal defines the Proposal Document model: the tree of named
// sections assembled by the multi-step editor and consumed by the renderer.
package proposal

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a persisted proposal. The system itself
// only ever writes StatusDraft; the remaining values are set externally.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatuses is the set of all valid proposal statuses.
var ValidStatuses = map[Status]bool{
	StatusDraft:    true,
	StatusSent:     true,
	StatusApproved: true,
	StatusRejected: true,
}

// SectionKey names a top-level section of the document. Each editor step
// owns exactly one section.
type SectionKey string

const (
	SectionBasic          SectionKey = "basic"
	SectionContext        SectionKey = "context"
	SectionSolution       SectionKey = "solution"
	SectionFinancial      SectionKey = "financial"
	SectionInfrastructure SectionKey = "infrastructure"
	SectionSupport        SectionKey = "support"
	SectionTimeline       SectionKey = "timeline"
)

// Basic holds the client and consultancy identification fields.
type Basic struct {
	ClientName       string `json:"clientName"`
	ProjectTitle     string `json:"projectTitle"`
	ProjectType      string `json:"projectType"`
	ConsultancyName  string `json:"consultancyName"`
	ConsultancyEmail string `json:"consultancyEmail"`
}

// Challenge is one pain point in the Context section.
type Challenge struct {
	Icon        Icon   `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       Color  `json:"color"`
}

// Assumption is one line item backing the annual-cost estimate.
type Assumption struct {
	Icon        Icon   `json:"icon"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// ProvenImpactBox is an optional highlighted callout in the Context section.
type ProvenImpactBox struct {
	Enabled          bool   `json:"enabled"`
	Title            string `json:"title"`
	MainMessage      string `json:"mainMessage"`
	SecondaryMessage string `json:"secondaryMessage,omitempty"`
	Color            Color  `json:"color"`
}

// Impact quantifies the cost of the status quo.
type Impact struct {
	IntroText       string          `json:"introText,omitempty"`
	AnnualCost      float64         `json:"annualCost"`
	CostDescription string          `json:"costDescription,omitempty"`
	Assumptions     []Assumption    `json:"assumptions"`
	ProvenImpactBox ProvenImpactBox `json:"provenImpactBox"`
}

// Context is the "current situation" section. CurrentSituation carries
// pre-sanitized rich-text markup.
type Context struct {
	CurrentSituation string      `json:"currentSituation"`
	Challenges       []Challenge `json:"challenges"`
	Impact           Impact      `json:"impact"`
}

// Feature is one capability card in the Solution section.
type Feature struct {
	Icon        Icon     `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Color       Color    `json:"color"`
}

// Solution describes the proposed work. Description carries pre-sanitized
// rich-text markup.
type Solution struct {
	IntroText   string    `json:"introText,omitempty"`
	Description string    `json:"description"`
	Features    []Feature `json:"features"`
}

// ROI holds the headline financial metrics. All fields are independently
// optional and default to zero.
type ROI struct {
	Savings          float64 `json:"savings"`
	Gain             float64 `json:"gain"`
	GainYear2        float64 `json:"gainYear2,omitempty"`
	ReturnMultiplier float64 `json:"returnMultiplier"`
	PaybackMonths    float64 `json:"paybackMonths"`
}

// PricingTier is one priced offering option. Description carries
// pre-sanitized rich-text markup.
type PricingTier struct {
	Enabled       bool     `json:"enabled"`
	Name          string   `json:"name"`
	Value         float64  `json:"value"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	IsRecommended bool     `json:"isRecommended"`
	ROI           float64  `json:"roi"`
	Payback       float64  `json:"payback"`
	Reduction     float64  `json:"reduction"`
}

// RecommendationBox points at a tier by name. The reference is free text;
// nothing guarantees it matches an enabled tier (the renderer degrades to
// plain text when it does not resolve).
type RecommendationBox struct {
	Enabled         bool   `json:"enabled"`
	RecommendedTier string `json:"recommendedTier"`
	Text            string `json:"text"`
	Color           Color  `json:"color"`
}

// PaymentMethod is one payment option card.
type PaymentMethod struct {
	Enabled     bool   `json:"enabled"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Highlighted bool   `json:"highlighted"`
}

// Financial is the pricing section.
type Financial struct {
	ROI               ROI               `json:"roi"`
	Tiers             []PricingTier     `json:"tiers"`
	RecommendationBox RecommendationBox `json:"recommendationBox"`
	PaymentMethods    []PaymentMethod   `json:"paymentMethods"`
}

// LogoKind distinguishes how a service logo is referenced.
type LogoKind string

const (
	LogoUpload LogoKind = "upload" // durable object-storage URL or inline data URI
	LogoURL    LogoKind = "url"    // external URL provided by the user
)

// Logo is an optional image reference on an infrastructure service.
type Logo struct {
	Kind  LogoKind `json:"type"`
	Value string   `json:"value"`
}

// Volume holds request-volume figures for a service. RequestsPerMonth is
// derived (RequestsPerDay * 30) and stored as part of the snapshot; it is
// recomputed on every save.
type Volume struct {
	RequestsPerDay   float64 `json:"requestsPerDay"`
	RequestsPerMonth float64 `json:"requestsPerMonth"`
}

// Costs holds per-request and derived monthly cost for a service.
// MonthlyCost is derived and recomputed on every save.
type Costs struct {
	CostPerRequest float64 `json:"costPerRequest"`
	MonthlyCost    float64 `json:"monthlyCost"`
}

// InfrastructureService is one third-party service line item. Order in the
// slice is the user-controlled display order.
type InfrastructureService struct {
	Name        string `json:"name"`
	Logo        *Logo  `json:"logo,omitempty"`
	Model       string `json:"model"`
	Volume      Volume `json:"volume"`
	Costs       Costs  `json:"costs"`
	Description string `json:"description,omitempty"`
}

// Infrastructure is the recurring third-party cost section.
type Infrastructure struct {
	Enabled      bool                    `json:"enabled"`
	Introduction string                  `json:"introduction,omitempty"`
	Services     []InfrastructureService `json:"services"`
	ClientNote   string                  `json:"clientNote,omitempty"`
}

// SupportTier is one support plan. Same shape as PricingTier with
// response-time and availability strings instead of ROI metrics.
type SupportTier struct {
	Enabled       bool     `json:"enabled"`
	Name          string   `json:"name"`
	Value         float64  `json:"value"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	IsRecommended bool     `json:"isRecommended"`
	ResponseTime  string   `json:"responseTime"`
	Availability  string   `json:"availability"`
}

// Support is the optional post-delivery support section.
type Support struct {
	Enabled           bool               `json:"enabled"`
	Introduction      string             `json:"introduction,omitempty"`
	Tiers             []SupportTier      `json:"tiers"`
	RecommendationBox *RecommendationBox `json:"recommendationBox,omitempty"`
}

// DurationUnit is the unit of a timeline phase duration.
type DurationUnit string

const (
	UnitWeek  DurationUnit = "week"
	UnitMonth DurationUnit = "month"
)

// Phase is one project phase in the timeline.
type Phase struct {
	Name         string       `json:"name"`
	Duration     int          `json:"duration"`
	DurationUnit DurationUnit `json:"durationUnit"`
	Description  string       `json:"description"`
}

// NextStep is one numbered step in the closing checklist.
type NextStep struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CTA is the closing call-to-action block.
type CTA struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	ButtonText   string `json:"buttonText"`
	WhatsappLink string `json:"whatsappLink,omitempty"`
}

// SectionFlags toggles the narrative blocks in the rendered output.
type SectionFlags struct {
	Support  bool `json:"support"`
	Training bool `json:"training"`
	WhyUs    bool `json:"whyUs"`
}

// Timeline is the schedule and closing section.
type Timeline struct {
	Phases    []Phase      `json:"phases"`
	NextSteps []NextStep   `json:"nextSteps"`
	CTA       CTA          `json:"cta"`
	Sections  SectionFlags `json:"sections"`
}

// Document is the full Proposal Document tree. Every list preserves
// user-controlled ordering; reordering is an explicit operation performed
// by the editor, never a side effect of edits.
type Document struct {
	Basic          Basic          `json:"basic"`
	Context        Context        `json:"context"`
	Solution       Solution       `json:"solution"`
	Financial      Financial      `json:"financial"`
	Infrastructure Infrastructure `json:"infrastructure"`
	Support        *Support       `json:"support,omitempty"`
	Timeline       Timeline       `json:"timeline"`
}

// Clone returns a deep copy of the document. A value copy is not enough:
// the section lists share backing arrays, so in-place normalization on a
// copy would still write through to the original. The document is plain
// data with JSON tags throughout, so a marshal round-trip copies every
// nested slice and pointer.
func (d Document) Clone() Document {
	data, err := json.Marshal(d)
	if err != nil {
		return d
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		return d
	}
	return out
}

// Proposal is one persisted row: the document snapshot plus denormalized
// summary columns derived at save time.
type Proposal struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	ClientName   string    `json:"client_name"`
	ProjectTitle string    `json:"project_title"`
	Status       Status    `json:"status"`
	SelectedTier string    `json:"selected_tier,omitempty"`
	TotalValue   *float64  `json:"total_value,omitempty"`
	Document     Document  `json:"data"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary is the listing row shown on the dashboard.
type Summary struct {
	ID           string    `json:"id"`
	ClientName   string    `json:"client_name"`
	ProjectTitle string    `json:"project_title"`
	Status       Status    `json:"status"`
	SelectedTier string    `json:"selected_tier,omitempty"`
	TotalValue   *float64  `json:"total_value,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CopyMarker is appended to the client name when a proposal is duplicated.
const CopyMarker = " (Copy)"
