/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import "fmt"

// MaxPreDrawn caps the word sequence of a multiple-word PreDrawn turn.
const MaxPreDrawn = 5

// Sequencer is a word-sequencing strategy. It picks the words a turn starts
// with and decides what a correct guess does.
type Sequencer interface {
	Policy() Policy
	begin(t *Turn)
	advance(t *Turn) bool
}

// SequencerFor maps a configured policy to its strategy.
func SequencerFor(p Policy) (Sequencer, error) {
	switch p {
	case PolicyAccumulate:
		return Accumulate(), nil
	case PolicyPreDrawn:
		return PreDrawn(MaxPreDrawn), nil
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, p)
	}
}

type accumulate struct{}

// Accumulate starts with one word and draws a fresh, unused word from the
// category on every correct guess, recycling the category once exhausted.
// In single-word mode a correct guess just credits the one word.
func Accumulate() Sequencer { return accumulate{} }

func (accumulate) Policy() Policy { return PolicyAccumulate }

func (accumulate) begin(t *Turn) {
	first := pick(t.rnd, t.category.Words)
	t.words = []string{first}

	if t.mode == WordModeMultiple {
		t.used = map[string]struct{}{first: {}}
	}
}

func (accumulate) advance(t *Turn) bool {
	if t.mode != WordModeMultiple {
		t.points = 1
		t.completed = true

		return false
	}

	available := make([]string, 0, len(t.category.Words))
	for _, w := range t.category.Words {
		if _, ok := t.used[w]; !ok {
			available = append(available, w)
		}
	}

	if len(available) == 0 {
		clear(t.used)
		available = append(available, t.category.Words...)
	}

	next := pick(t.rnd, available)
	t.used[next] = struct{}{}
	t.words = append(t.words, next)
	t.index++
	t.points++

	return true
}

type preDrawn struct {
	max int
}

// PreDrawn fixes the whole sequence when the turn starts: up to max distinct
// words in multiple-word mode, one word otherwise. A correct guess only moves
// on while the index is short of the last word; on the last word it changes
// nothing and reports that the turn should end.
func PreDrawn(max int) Sequencer {
	if max < 1 {
		max = 1
	}

	return preDrawn{max: max}
}

func (preDrawn) Policy() Policy { return PolicyPreDrawn }

func (p preDrawn) begin(t *Turn) {
	if t.mode != WordModeMultiple {
		t.words = []string{pick(t.rnd, t.category.Words)}

		return
	}

	words := shuffled(t.rnd, distinct(t.category.Words))
	t.words = words[:min(p.max, len(words))]
}

func (preDrawn) advance(t *Turn) bool {
	if t.index >= len(t.words)-1 {
		return false
	}

	t.index++
	t.points++

	return true
}

func distinct(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))

	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	return out
}
