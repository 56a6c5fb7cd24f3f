package proposal

import (
	"fmt"

	"github.com/dlriva/proposalforge/internal/domain"
)

// Validate checks the whole document against the save-time rules. A failed
// validation never produces a persisted row.
func (d *Document) Validate() error {
	if d.Basic.ClientName == "" {
		return fmt.Errorf("basic: client name is required: %w", domain.ErrValidation)
	}
	if d.Basic.ProjectTitle == "" {
		return fmt.Errorf("basic: project title is required: %w", domain.ErrValidation)
	}

	for _, key := range []SectionKey{
		SectionContext, SectionSolution, SectionFinancial,
		SectionInfrastructure, SectionSupport, SectionTimeline,
	} {
		if err := d.ValidateSection(key); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSection checks one named section's rules. Step modules run this
// against their section before patching the draft; validation errors never
// leave the step boundary.
func (d *Document) ValidateSection(key SectionKey) error {
	switch key {
	case SectionBasic:
		if d.Basic.ClientName == "" {
			return fmt.Errorf("basic: client name is required: %w", domain.ErrValidation)
		}
		if d.Basic.ProjectTitle == "" {
			return fmt.Errorf("basic: project title is required: %w", domain.ErrValidation)
		}
		if d.Basic.ConsultancyName == "" {
			return fmt.Errorf("basic: consultancy name is required: %w", domain.ErrValidation)
		}
		if d.Basic.ConsultancyEmail == "" {
			return fmt.Errorf("basic: consultancy contact is required: %w", domain.ErrValidation)
		}

	case SectionContext:
		for i, c := range d.Context.Challenges {
			if c.Title == "" {
				return fmt.Errorf("context: challenge %d: title is required: %w", i+1, domain.ErrValidation)
			}
		}

	case SectionSolution:
		for i, f := range d.Solution.Features {
			if f.Title == "" {
				return fmt.Errorf("solution: feature %d: title is required: %w", i+1, domain.ErrValidation)
			}
		}

	case SectionFinancial:
		if err := validateTierNames(d.Financial.Tiers); err != nil {
			return err
		}
		if err := validateSingleRecommended(countRecommendedPricing(d.Financial.Tiers), "financial"); err != nil {
			return err
		}

	case SectionInfrastructure:
		for i, s := range d.Infrastructure.Services {
			if s.Name == "" {
				return fmt.Errorf("infrastructure: service %d: name is required: %w", i+1, domain.ErrValidation)
			}
			if s.Volume.RequestsPerDay < 0 || s.Costs.CostPerRequest < 0 {
				return fmt.Errorf("infrastructure: service %d: volumes and costs must not be negative: %w", i+1, domain.ErrValidation)
			}
		}

	case SectionSupport:
		if d.Support == nil {
			return nil
		}
		recommended := 0
		for i, t := range d.Support.Tiers {
			if t.Name == "" {
				return fmt.Errorf("support: tier %d: name is required: %w", i+1, domain.ErrValidation)
			}
			if t.IsRecommended {
				recommended++
			}
		}
		if err := validateSingleRecommended(recommended, "support"); err != nil {
			return err
		}

	case SectionTimeline:
		for i, p := range d.Timeline.Phases {
			if p.Name == "" {
				return fmt.Errorf("timeline: phase %d: name is required: %w", i+1, domain.ErrValidation)
			}
			if p.Duration < 0 {
				return fmt.Errorf("timeline: phase %d: duration must not be negative: %w", i+1, domain.ErrValidation)
			}
		}

	default:
		return fmt.Errorf("unknown section %q: %w", key, domain.ErrValidation)
	}
	return nil
}

func validateTierNames(tiers []PricingTier) error {
	for i, t := range tiers {
		if t.Name == "" {
			return fmt.Errorf("financial: tier %d: name is required: %w", i+1, domain.ErrValidation)
		}
	}
	return nil
}

func countRecommendedPricing(tiers []PricingTier) int {
	n := 0
	for _, t := range tiers {
		if t.IsRecommended {
			n++
		}
	}
	return n
}

// validateSingleRecommended enforces at most one recommended tier per list.
// Selection logic is first-match-in-order, so allowing more than one flag
// would silently ignore the rest.
func validateSingleRecommended(count int, section string) error {
	if count > 1 {
		return fmt.Errorf("%s: at most one tier may be recommended: %w", section, domain.ErrValidation)
	}
	return nil
}
