/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"slices"
	"testing"
)

func newTestTurn(mode WordMode, seq Sequencer, words []string, seed uint64) *Turn {
	cfg := DefaultConfig()
	cfg.WordMode = mode
	cfg.TurnSeconds = 30

	return newTurn(0, Category{Name: "Test", Words: words}, cfg, seq, NewRand(seed))
}

func TestAccumulateSingleWord(t *testing.T) {
	turn := newTestTurn(WordModeSingle, Accumulate(), []string{"a", "b", "c"}, 1)

	if more := turn.Advance(); more {
		t.Fatalf("Advance() = true, want false in single-word mode")
	}
	if turn.Points() != 1 {
		t.Fatalf("points = %d, want 1", turn.Points())
	}

	if more := turn.Advance(); more || turn.Points() != 1 {
		t.Fatalf("second Advance() = %v with %d points, want false with 1", more, turn.Points())
	}

	if len(turn.Words()) != 1 || turn.Index() != 0 {
		t.Fatalf("single-word advance changed sequence: words=%v index=%d", turn.Words(), turn.Index())
	}

	if !turn.Back() || turn.Points() != 0 {
		t.Fatalf("Back() left %d points, want 0", turn.Points())
	}

	if turn.Back() || turn.Points() != 0 {
		t.Fatalf("Back() at zero changed state: points=%d", turn.Points())
	}
}

func TestAccumulateMultipleDrawsWithoutRepeats(t *testing.T) {
	words := []string{"a", "b", "c"}

	for seed := uint64(1); seed <= 25; seed++ {
		turn := newTestTurn(WordModeMultiple, Accumulate(), words, seed)

		for i := 0; i < len(words)-1; i++ {
			if !turn.Advance() {
				t.Fatalf("seed %d: Advance() = false in multiple-word mode", seed)
			}
		}

		seen := turn.Words()
		sorted := slices.Clone(seen)
		slices.Sort(sorted)
		if !slices.Equal(sorted, words) {
			t.Fatalf("seed %d: first %d words %v repeat before the category is used up", seed, len(words), seen)
		}

		// Category exhausted: the next draw recycles it without ending the turn.
		if !turn.Advance() {
			t.Fatalf("seed %d: Advance() after exhaustion = false", seed)
		}

		all := turn.Words()
		if len(all) != 4 || !slices.Contains(words, all[3]) {
			t.Fatalf("seed %d: recycled draw produced %v", seed, all)
		}
		if turn.Points() != 3 || turn.Index() != 3 {
			t.Fatalf("seed %d: points=%d index=%d, want 3 and 3", seed, turn.Points(), turn.Index())
		}
		if w, ok := turn.CurrentWord(); !ok || w != all[3] {
			t.Fatalf("seed %d: CurrentWord() = %q, %v", seed, w, ok)
		}
	}
}

func TestAccumulateBackKeepsWords(t *testing.T) {
	turn := newTestTurn(WordModeMultiple, Accumulate(), []string{"a", "b", "c", "d"}, 9)

	turn.Advance()
	turn.Advance()

	words := turn.Words()

	if !turn.Back() {
		t.Fatal("Back() = false with index 2")
	}
	if turn.Index() != 1 || turn.Points() != 1 {
		t.Fatalf("after Back(): index=%d points=%d, want 1 and 1", turn.Index(), turn.Points())
	}
	if !slices.Equal(turn.Words(), words) {
		t.Fatalf("Back() changed words from %v to %v", words, turn.Words())
	}

	turn.Back()
	if turn.Back() {
		t.Fatal("Back() at index 0 = true")
	}
	if turn.Index() != 0 || turn.Points() != 0 {
		t.Fatalf("index=%d points=%d, want 0 and 0", turn.Index(), turn.Points())
	}
}

func TestPreDrawnMultiple(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	turn := newTestTurn(WordModeMultiple, PreDrawn(MaxPreDrawn), words, 4)

	drawn := turn.Words()
	if len(drawn) != MaxPreDrawn {
		t.Fatalf("len(words) = %d, want %d", len(drawn), MaxPreDrawn)
	}

	unique := slices.Compact(slices.Sorted(slices.Values(drawn)))
	if len(unique) != MaxPreDrawn {
		t.Fatalf("pre-drawn words %v are not distinct", drawn)
	}

	for i := 1; i < MaxPreDrawn; i++ {
		if !turn.Advance() {
			t.Fatalf("Advance() %d = false before the last word", i)
		}
		if w, _ := turn.CurrentWord(); w != drawn[i] {
			t.Fatalf("CurrentWord() = %q, want %q", w, drawn[i])
		}
	}

	if !slices.Equal(turn.Words(), drawn) {
		t.Fatalf("sequence changed during turn: %v -> %v", drawn, turn.Words())
	}

	for range 2 {
		if turn.Advance() {
			t.Fatal("Advance() on the last word = true")
		}
		if turn.Points() != MaxPreDrawn-1 || turn.Index() != MaxPreDrawn-1 {
			t.Fatalf("Advance() on the last word changed state: points=%d index=%d, want %d and %d",
				turn.Points(), turn.Index(), MaxPreDrawn-1, MaxPreDrawn-1)
		}
	}

	if !turn.Back() || turn.Points() != MaxPreDrawn-2 || turn.Index() != MaxPreDrawn-2 {
		t.Fatalf("Back() from the last word: points=%d index=%d, want %d and %d",
			turn.Points(), turn.Index(), MaxPreDrawn-2, MaxPreDrawn-2)
	}
}

func TestPreDrawnAdvanceCountsOnlyMoves(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	turn := newTestTurn(WordModeMultiple, PreDrawn(MaxPreDrawn), words, 11)

	moved := 0
	for range 6 {
		if turn.Advance() {
			moved++
		}
	}

	if moved != MaxPreDrawn-1 || turn.Points() != moved || turn.Index() != MaxPreDrawn-1 {
		t.Fatalf("six advances: moved=%d points=%d index=%d, want %d each",
			moved, turn.Points(), turn.Index(), MaxPreDrawn-1)
	}
}

func TestPreDrawnShortCategory(t *testing.T) {
	turn := newTestTurn(WordModeMultiple, PreDrawn(MaxPreDrawn), []string{"x", "y", "x", "z"}, 2)

	got := slices.Sorted(slices.Values(turn.Words()))
	if !slices.Equal(got, []string{"x", "y", "z"}) {
		t.Fatalf("words = %v, want the 3 distinct words", turn.Words())
	}
}

func TestPreDrawnSingle(t *testing.T) {
	turn := newTestTurn(WordModeSingle, PreDrawn(MaxPreDrawn), []string{"a", "b", "c"}, 3)

	if len(turn.Words()) != 1 {
		t.Fatalf("len(words) = %d, want 1", len(turn.Words()))
	}
	if turn.Advance() {
		t.Fatal("Advance() = true in single-word mode")
	}
	if turn.Points() != 0 || turn.Index() != 0 {
		t.Fatalf("Advance() on the only word: points=%d index=%d, want 0 and 0", turn.Points(), turn.Index())
	}
	if turn.Back() {
		t.Fatal("Back() on the only word = true")
	}
}

func TestTurnTick(t *testing.T) {
	turn := newTestTurn(WordModeSingle, Accumulate(), []string{"a"}, 1)
	turn.remaining = 1

	remaining, expired := turn.Tick()
	if remaining != 0 || !expired {
		t.Fatalf("Tick() = (%d, %v), want (0, true)", remaining, expired)
	}

	for range 3 {
		remaining, expired = turn.Tick()
		if remaining != 0 || expired {
			t.Fatalf("Tick() after expiry = (%d, %v), want (0, false)", remaining, expired)
		}
	}
}

func TestCurrentWordOutOfRange(t *testing.T) {
	var turn Turn

	if w, ok := turn.CurrentWord(); ok || w != "" {
		t.Fatalf("CurrentWord() on empty turn = (%q, %v)", w, ok)
	}
}

func TestSequencerFor(t *testing.T) {
	for _, p := range []Policy{PolicyAccumulate, PolicyPreDrawn} {
		seq, err := SequencerFor(p)
		if err != nil || seq.Policy() != p {
			t.Errorf("SequencerFor(%q) = %v, %v", p, seq, err)
		}
	}

	if _, err := SequencerFor("shuffle"); err == nil {
		t.Error("SequencerFor(unknown) returned no error")
	}
}
