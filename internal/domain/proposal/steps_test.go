package proposal

import "testing"

func TestSequencerAdvanceClampsAtFinal(t *testing.T) {
	s := NewSequencer()
	if s.Current() != 1 {
		t.Fatalf("initial step = %d, want 1", s.Current())
	}

	for range StepCount + 3 {
		s.Advance()
	}
	if s.Current() != StepCount {
		t.Errorf("step after over-advancing = %d, want %d", s.Current(), StepCount)
	}
	if !s.IsFinal() {
		t.Error("expected final step")
	}
}

func TestSequencerGoToBounds(t *testing.T) {
	s := NewSequencer()
	s.Advance()
	s.Advance() // now at 3, maxReached 3

	tests := []struct {
		name    string
		target  int
		want    bool
		wantPos int
	}{
		{"zero is a no-op", 0, false, 3},
		{"past N is a no-op", StepCount + 1, false, 3},
		{"beyond high-water mark is a no-op", 5, false, 3},
		{"re-entrant current", 3, true, 3},
		{"back to reached step", 1, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.GoTo(tt.target); got != tt.want {
				t.Errorf("GoTo(%d) = %v, want %v", tt.target, got, tt.want)
			}
			if s.Current() != tt.wantPos {
				t.Errorf("current = %d, want %d", s.Current(), tt.wantPos)
			}
		})
	}
}

func TestSequencerReturningKeepsHighWaterMark(t *testing.T) {
	s := NewSequencer()
	s.Advance()
	s.Advance()
	s.Advance() // at 4

	if !s.GoTo(2) {
		t.Fatal("GoTo(2) should succeed")
	}
	// Going back does not forfeit the right to jump forward again.
	if !s.GoTo(4) {
		t.Error("GoTo(4) should succeed after returning to an earlier step")
	}
	if s.MaxReached() != 4 {
		t.Errorf("maxReached = %d, want 4", s.MaxReached())
	}
}

func TestStepSection(t *testing.T) {
	if got := StepSection(1); got != SectionBasic {
		t.Errorf("StepSection(1) = %q, want %q", got, SectionBasic)
	}
	if got := StepSection(6); got != SectionTimeline {
		t.Errorf("StepSection(6) = %q, want %q", got, SectionTimeline)
	}
	if got := StepSection(7); got != "" {
		t.Errorf("StepSection(7) = %q, want empty", got)
	}
}
