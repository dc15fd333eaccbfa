/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"fmt"
)

// Scheduler decides whose turn it is and when the game ends.
//
// The turn order is a permutation of team indices, reshuffled exactly once at
// every round boundary and consumed one index per turn.
type Scheduler struct {
	cfg   Config
	data  *Dataset
	rnd   Rand
	teams []Team

	order     []int
	pointer   int
	completed int
}

func NewScheduler(cfg Config, data *Dataset, rnd Rand) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}

	if rnd == nil {
		rnd = NewRand(0)
	}

	s := &Scheduler{
		cfg:   cfg,
		data:  data,
		rnd:   rnd,
		teams: newTeams(cfg.Teams),
	}
	s.order = permutation(s.rnd, len(s.teams))

	return s, nil
}

// Teams returns a copy of every team, scores included.
func (s *Scheduler) Teams() []Team {
	return append([]Team(nil), s.teams...)
}

// Order returns a copy of the current round's turn order.
func (s *Scheduler) Order() []int {
	return append([]int(nil), s.order...)
}

// CurrentTeam is the index of the team whose turn it is.
func (s *Scheduler) CurrentTeam() int {
	return s.order[s.pointer%len(s.order)]
}

func (s *Scheduler) Pointer() int { return s.pointer }
func (s *Scheduler) CompletedRounds() int { return s.completed }

// EligibleCategories applies the configured restriction to the full dataset.
func (s *Scheduler) EligibleCategories() []Category {
	return s.cfg.Restriction.Eligible(s.data.Categories)
}

// StartTurn pairs the current team with a random eligible category and
// seeds a new Turn from it.
func (s *Scheduler) StartTurn(seq Sequencer) (*Turn, error) {
	eligible := s.EligibleCategories()
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: restriction %q filtered all %d categories", ErrNoData, s.cfg.Restriction, len(s.data.Categories))
	}

	category := pick(s.rnd, eligible)

	return newTurn(s.CurrentTeam(), category, s.cfg, seq, s.rnd), nil
}

// CommitTurn adds points to the current team. Negative values are ignored so
// scores never decrease.
func (s *Scheduler) CommitTurn(points int) (committed, team int) {
	team = s.CurrentTeam()

	if points < 0 {
		points = 0
	}
	s.teams[team].Score += points

	return points, team
}

// Advance moves to the next turn, rolling the round over and reshuffling the
// order when every team has played. It reports whether the game is over.
// Once the game is over it changes nothing.
func (s *Scheduler) Advance() bool {
	if s.GameOver() {
		return true
	}

	s.pointer++

	if s.pointer >= len(s.order) {
		s.completed++
		s.pointer = 0
		s.order = permutation(s.rnd, len(s.teams))
	}

	return s.GameOver()
}

func (s *Scheduler) GameOver() bool {
	return s.completed >= s.cfg.Rounds
}

// Winner returns every team tied for the highest score.
func (s *Scheduler) Winner() []Team {
	best := -1
	var winners []Team

	for _, t := range s.teams {
		switch {
		case t.Score > best:
			best = t.Score
			winners = []Team{t}
		case t.Score == best:
			winners = append(winners, t)
		}
	}

	return winners
}

// Reset zeroes scores and counters and reshuffles. The dataset is kept.
func (s *Scheduler) Reset() {
	for i := range s.teams {
		s.teams[i].Score = 0
	}

	s.pointer = 0
	s.completed = 0
	s.order = permutation(s.rnd, len(s.teams))
}

// CurrentTurnNumber is 1-indexed across the whole game.
func (s *Scheduler) CurrentTurnNumber() int {
	return s.completed*len(s.teams) + s.pointer + 1
}

func (s *Scheduler) TotalTurns() int {
	return s.cfg.Rounds * len(s.teams)
}

func (s *Scheduler) RemainingTurns() int {
	return max(0, s.TotalTurns()-s.CurrentTurnNumber())
}
