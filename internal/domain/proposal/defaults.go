package proposal

// DefaultDocument returns a new empty document pre-filled with the defaults
// a fresh editing session starts from: an enabled impact box and
// recommendation box, three seeded payment methods, three seeded next
// steps, CTA copy, and all narrative section flags on. Infrastructure
// starts disabled.
func DefaultDocument() Document {
	return Document{
		Basic: Basic{},
		Context: Context{
			Challenges: []Challenge{},
			Impact: Impact{
				Assumptions: []Assumption{},
				ProvenImpactBox: ProvenImpactBox{
					Enabled: true,
					Title:   "Proven Impact",
					Color:   ColorIndigoPurple,
				},
			},
		},
		Solution: Solution{
			Features: []Feature{},
		},
		Financial: Financial{
			Tiers: []PricingTier{},
			RecommendationBox: RecommendationBox{
				Enabled: true,
				Color:   ColorGreen,
			},
			PaymentMethods: []PaymentMethod{
				{
					Enabled:     true,
					Title:       "Upfront with 5% Discount",
					Description: "Single payment with a 5% discount on the total project value.",
					Highlighted: true,
				},
				{
					Enabled:     true,
					Title:       "Split in 2 Installments",
					Description: "50% on proposal acceptance and 50% on final delivery. No interest.",
				},
				{
					Enabled:     true,
					Title:       "Up to 5 Installments",
					Description: "30% on acceptance and the remainder split into up to 4 monthly installments, interest free.",
				},
			},
		},
		Infrastructure: Infrastructure{
			Services:   []InfrastructureService{},
			ClientNote: "These costs are the client's responsibility and are billed directly by the service providers.",
		},
		Timeline: Timeline{
			Phases: []Phase{},
			NextSteps: []NextStep{
				{
					Number:      1,
					Title:       "Choose the Preferred Option",
					Description: "Select the tier that best matches your needs and available budget.",
				},
				{
					Number:      2,
					Title:       "Sign the Proposal and Contract",
					Description: "Formalize the agreement through electronic signature, fixing scope and deadlines.",
				},
				{
					Number:      3,
					Title:       "Project Kickoff",
					Description: "Kickoff with the team, start of the discovery phase and first deliveries.",
				},
			},
			CTA: CTA{
				Title:      "Ready to get started?",
				Subtitle:   "Let's schedule the next conversation and take the first step.",
				ButtonText: "Let's Talk",
			},
			Sections: SectionFlags{
				Support:  true,
				Training: true,
				WhyUs:    true,
			},
		},
	}
}
