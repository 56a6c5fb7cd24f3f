package proposal

// StepCount is the number of steps in the edit flow.
const StepCount = 6

// stepSections maps step numbers to the section each step owns. Support is
// edited inside the financial step alongside pricing, mirroring the edit
// flow's grouping; it is still a distinct section key for patching.
var stepSections = map[int]SectionKey{
	1: SectionBasic,
	2: SectionContext,
	3: SectionSolution,
	4: SectionFinancial,
	5: SectionInfrastructure,
	6: SectionTimeline,
}

// StepSection returns the section owned by the given step, or "" when the
// step is out of range.
func StepSection(step int) SectionKey {
	return stepSections[step]
}

// Sequencer tracks the active step of the edit flow. Forward movement is
// one step at a time; direct jumps are allowed only to steps already
// reached. Out-of-range jumps are no-ops.
type Sequencer struct {
	current    int
	maxReached int
}

// NewSequencer starts at step 1.
func NewSequencer() *Sequencer {
	return &Sequencer{current: 1, maxReached: 1}
}

// Current returns the active step.
func (s *Sequencer) Current() int {
	return s.current
}

// MaxReached returns the highest step reached so far.
func (s *Sequencer) MaxReached() int {
	return s.maxReached
}

// Advance moves to the next step, clamped at StepCount. The final step's
// submit triggers persistence instead of advancing.
func (s *Sequencer) Advance() int {
	if s.current < StepCount {
		s.current++
	}
	if s.current > s.maxReached {
		s.maxReached = s.current
	}
	return s.current
}

// GoTo jumps to a previously-reached step (or re-enters the current one).
// Returns false and leaves the position unchanged when the target is out
// of bounds or beyond the high-water mark.
func (s *Sequencer) GoTo(step int) bool {
	if step < 1 || step > StepCount {
		return false
	}
	if step != s.current && step > s.maxReached {
		return false
	}
	s.current = step
	return true
}

// IsFinal reports whether the active step is the last one.
func (s *Sequencer) IsFinal() bool {
	return s.current == StepCount
}
