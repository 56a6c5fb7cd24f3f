package proposal

import (
	"encoding/json"
	"fmt"

	"github.com/dlriva/proposalforge/internal/domain"
)

// Draft holds the partial document being edited in one session. Patch
// replaces a named section wholesale; it performs no validation, which is
// the step module's job before it patches. Draft is a plain holder with
// no locking of its own; the session that owns it serializes access.
type Draft struct {
	doc Document
}

// NewDraft creates a draft seeded with the default document.
func NewDraft() *Draft {
	return &Draft{doc: DefaultDocument()}
}

// NewDraftFrom creates a draft rehydrated from an existing document.
func NewDraftFrom(doc Document) *Draft {
	return &Draft{doc: doc}
}

// Get returns a copy of the current document.
func (d *Draft) Get() Document {
	return d.doc
}

// Set replaces the whole document.
func (d *Draft) Set(doc Document) {
	d.doc = doc
}

// Patch decodes raw JSON into the named section and replaces that section,
// leaving all other sections untouched.
func (d *Draft) Patch(key SectionKey, raw json.RawMessage) error {
	switch key {
	case SectionBasic:
		return patchSection(raw, &d.doc.Basic)
	case SectionContext:
		return patchSection(raw, &d.doc.Context)
	case SectionSolution:
		return patchSection(raw, &d.doc.Solution)
	case SectionFinancial:
		return patchSection(raw, &d.doc.Financial)
	case SectionInfrastructure:
		return patchSection(raw, &d.doc.Infrastructure)
	case SectionSupport:
		var s Support
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode section %q: %w", key, domain.ErrValidation)
		}
		d.doc.Support = &s
		return nil
	case SectionTimeline:
		return patchSection(raw, &d.doc.Timeline)
	default:
		return fmt.Errorf("unknown section %q: %w", key, domain.ErrValidation)
	}
}

func patchSection[T any](raw json.RawMessage, dst *T) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode section: %w", domain.ErrValidation)
	}
	*dst = v
	return nil
}
