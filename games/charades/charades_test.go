/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"errors"
	"slices"
	"testing"
)

// countingRand wraps a Rand and counts draws.
type countingRand struct {
	Rand
	calls int
}

func (c *countingRand) IntN(n int) int {
	c.calls++

	return c.Rand.IntN(n)
}

// fixedRand always returns the same value, clamped to the range.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	return min(int(f), n-1)
}

func testDataset() *Dataset {
	return &Dataset{
		Categories: []Category{
			{Name: "Animals", Words: []string{"dog", "cat", "horse", "owl"}},
			{Name: "Movies", Words: []string{"Jaws", "Alien", "Heat"}},
			{Name: "Bonus Group A", Words: []string{"juggling", "skydiving"}},
			{Name: "Bonus Stars 1", Words: []string{"Elvis", "Cleopatra"}},
		},
	}
}

func testConfig(teams int) Config {
	cfg := DefaultConfig()
	cfg.Teams = teams
	cfg.Rounds = 3

	return cfg
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}

	sorted := slices.Clone(order)
	slices.Sort(sorted)

	for i, v := range sorted {
		if v != i {
			return false
		}
	}

	return true
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"four teams", func(c *Config) { c.Teams = 4 }, true},
		{"one team", func(c *Config) { c.Teams = 1 }, false},
		{"five teams", func(c *Config) { c.Teams = 5 }, false},
		{"zero seconds", func(c *Config) { c.TurnSeconds = 0 }, false},
		{"zero rounds", func(c *Config) { c.Rounds = 0 }, false},
		{"bad mode", func(c *Config) { c.WordMode = "many" }, false},
		{"bad policy", func(c *Config) { c.Policy = "random" }, false},
		{"bad restriction", func(c *Config) { c.Restriction = "stars" }, false},
		{"predrawn multiple", func(c *Config) { c.Policy = PolicyPreDrawn; c.WordMode = WordModeMultiple }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewSchedulerTeams(t *testing.T) {
	for n := MinTeams; n <= MaxTeams; n++ {
		s, err := NewScheduler(testConfig(n), testDataset(), NewRand(uint64(n)))
		if err != nil {
			t.Fatalf("NewScheduler(%d teams): %v", n, err)
		}

		teams := s.Teams()
		if len(teams) != n {
			t.Fatalf("len(teams) = %d, want %d", len(teams), n)
		}

		for i, team := range teams {
			if team.Score != 0 {
				t.Errorf("team %d score = %d, want 0", i, team.Score)
			}
			if team.Name != palette[i].Name {
				t.Errorf("team %d name = %q, want %q", i, team.Name, palette[i].Name)
			}
		}

		if !isPermutation(s.Order(), n) {
			t.Errorf("order %v is not a permutation of %d teams", s.Order(), n)
		}
	}
}

func TestNewSchedulerRejectsBadInput(t *testing.T) {
	if _, err := NewScheduler(testConfig(1), testDataset(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("one team: err = %v, want ErrInvalidConfig", err)
	}

	if _, err := NewScheduler(testConfig(2), &Dataset{}, nil); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("empty dataset: err = %v, want ErrInvalidDataset", err)
	}

	empty := &Dataset{Categories: []Category{{Name: "Empty"}}}
	if _, err := NewScheduler(testConfig(2), empty, nil); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("empty category: err = %v, want ErrInvalidDataset", err)
	}
}

func TestSchedulerAdvanceRollsOver(t *testing.T) {
	const teams, rounds = 3, 4

	cfg := testConfig(teams)
	cfg.Rounds = rounds

	rnd := &countingRand{Rand: NewRand(7)}

	s, err := NewScheduler(cfg, testDataset(), rnd)
	if err != nil {
		t.Fatal(err)
	}

	if got := s.TotalTurns(); got != teams*rounds {
		t.Fatalf("TotalTurns() = %d, want %d", got, teams*rounds)
	}

	for turn := 1; turn <= teams*rounds; turn++ {
		if got := s.CurrentTurnNumber(); got != turn {
			t.Fatalf("CurrentTurnNumber() = %d, want %d", got, turn)
		}
		if got := s.RemainingTurns(); got != teams*rounds-turn {
			t.Fatalf("RemainingTurns() = %d, want %d", got, teams*rounds-turn)
		}

		before := rnd.calls
		rollover := s.Pointer() == teams-1

		over := s.Advance()

		if rollover {
			if s.Pointer() != 0 {
				t.Fatalf("pointer after rollover = %d, want 0", s.Pointer())
			}
			if rnd.calls == before {
				t.Fatalf("turn order was not reshuffled at round %d", s.CompletedRounds())
			}
			if !isPermutation(s.Order(), teams) {
				t.Fatalf("order %v is not a permutation", s.Order())
			}
		} else if rnd.calls != before {
			t.Fatalf("turn order reshuffled mid-round at turn %d", turn)
		}

		if want := turn == teams*rounds; over != want {
			t.Fatalf("Advance() at turn %d = %v, want %v", turn, over, want)
		}
	}

	if s.RemainingTurns() != 0 {
		t.Errorf("RemainingTurns() after game = %d, want 0", s.RemainingTurns())
	}

	final := s.CurrentTurnNumber()
	order := s.Order()
	for range 3 {
		if !s.Advance() {
			t.Fatal("Advance() after game over = false")
		}
	}

	if s.CurrentTurnNumber() != final || s.CompletedRounds() != rounds {
		t.Fatalf("Advance() after game over moved on: turn=%d completed=%d", s.CurrentTurnNumber(), s.CompletedRounds())
	}
	if !slices.Equal(s.Order(), order) {
		t.Fatal("Advance() after game over reshuffled the order")
	}
}

func TestSchedulerCommitTurn(t *testing.T) {
	s, err := NewScheduler(testConfig(3), testDataset(), NewRand(3))
	if err != nil {
		t.Fatal(err)
	}

	current := s.CurrentTeam()
	before := s.Teams()

	points, team := s.CommitTurn(4)
	if points != 4 || team != current {
		t.Fatalf("CommitTurn(4) = (%d, %d), want (4, %d)", points, team, current)
	}

	after := s.Teams()
	for i := range after {
		want := before[i].Score
		if i == current {
			want += 4
		}
		if after[i].Score != want {
			t.Errorf("team %d score = %d, want %d", i, after[i].Score, want)
		}
	}

	if points, _ := s.CommitTurn(-2); points != 0 {
		t.Errorf("CommitTurn(-2) committed %d, want 0", points)
	}
	if got := s.Teams()[current].Score; got != 4 {
		t.Errorf("score after negative commit = %d, want 4", got)
	}
}

func TestSchedulerWinner(t *testing.T) {
	s, err := NewScheduler(testConfig(3), testDataset(), NewRand(1))
	if err != nil {
		t.Fatal(err)
	}

	for i, score := range []int{5, 5, 3} {
		s.teams[i].Score = score
	}

	winners := s.Winner()
	if len(winners) != 2 {
		t.Fatalf("len(Winner()) = %d, want 2", len(winners))
	}

	for _, w := range winners {
		if w.Score != 5 {
			t.Errorf("winner %q has score %d, want 5", w.Name, w.Score)
		}
		if w.Name == palette[2].Name {
			t.Errorf("team scoring 3 returned as winner")
		}
	}

	s.teams[2].Score = 9
	if winners := s.Winner(); len(winners) != 1 || winners[0].Name != palette[2].Name {
		t.Errorf("Winner() = %v, want only %s", winners, palette[2].Name)
	}
}

func TestSchedulerReset(t *testing.T) {
	s, err := NewScheduler(testConfig(2), testDataset(), NewRand(5))
	if err != nil {
		t.Fatal(err)
	}

	s.CommitTurn(3)
	s.Advance()
	s.Advance()
	s.Advance()

	s.Reset()

	for i, team := range s.Teams() {
		if team.Score != 0 {
			t.Errorf("team %d score after reset = %d, want 0", i, team.Score)
		}
	}

	if s.Pointer() != 0 || s.CompletedRounds() != 0 || s.CurrentTurnNumber() != 1 {
		t.Errorf("counters after reset: pointer=%d rounds=%d turn=%d", s.Pointer(), s.CompletedRounds(), s.CurrentTurnNumber())
	}

	if !isPermutation(s.Order(), 2) {
		t.Errorf("order after reset %v is not a permutation", s.Order())
	}
}

func TestEligibleCategories(t *testing.T) {
	categories := []Category{
		{Name: "Animals", Words: []string{"dog"}},
		{Name: "Bonus Group A", Words: []string{"a"}},
		{Name: "Bonus Group B", Words: []string{"b"}},
		{Name: "Bonus Stars 1", Words: []string{"c"}},
	}

	names := func(cs []Category) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.Name
		}
		return out
	}

	tests := []struct {
		restriction Restriction
		want        []string
	}{
		{RestrictNone, []string{"Animals", "Bonus Group A", "Bonus Group B", "Bonus Stars 1"}},
		{RestrictBonus, []string{"Animals"}},
		{RestrictStrict, []string{"Animals", "Bonus Group A", "Bonus Group B"}},
	}

	for _, tt := range tests {
		if got := names(tt.restriction.Eligible(categories)); !slices.Equal(got, tt.want) {
			t.Errorf("%s.Eligible() = %v, want %v", tt.restriction, got, tt.want)
		}
	}
}

func TestStartTurnNoData(t *testing.T) {
	data := &Dataset{
		Categories: []Category{
			{Name: "Bonus Group A", Words: []string{"a"}},
			{Name: "Bonus Group B", Words: []string{"b"}},
		},
	}

	cfg := testConfig(2)
	cfg.Restriction = RestrictBonus

	s, err := NewScheduler(cfg, data, NewRand(1))
	if err != nil {
		t.Fatal(err)
	}

	turn, err := s.StartTurn(Accumulate())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("StartTurn() err = %v, want ErrNoData", err)
	}
	if turn != nil {
		t.Fatalf("StartTurn() returned a turn with no eligible categories")
	}
}

func TestStartTurnUsesEligibleCategory(t *testing.T) {
	cfg := testConfig(2)
	cfg.Restriction = RestrictBonus

	s, err := NewScheduler(cfg, testDataset(), NewRand(11))
	if err != nil {
		t.Fatal(err)
	}

	for range 50 {
		turn, err := s.StartTurn(Accumulate())
		if err != nil {
			t.Fatal(err)
		}

		if c := turn.Category(); c != "Animals" && c != "Movies" {
			t.Fatalf("StartTurn() drew restricted category %q", c)
		}
		if turn.Team() != s.CurrentTeam() {
			t.Fatalf("turn team = %d, want %d", turn.Team(), s.CurrentTeam())
		}
		if turn.Points() != 0 || turn.Remaining() != cfg.TurnSeconds || len(turn.Words()) != 1 {
			t.Fatalf("fresh turn state = %+v", turn.State())
		}
	}
}

func TestShuffledIsPermutation(t *testing.T) {
	for seed := uint64(1); seed < 20; seed++ {
		if p := permutation(NewRand(seed), 4); !isPermutation(p, 4) {
			t.Fatalf("permutation(seed %d) = %v", seed, p)
		}
	}

	// With every draw at 0, Fisher-Yates rotates [0 1 2] to [1 2 0].
	if got := permutation(fixedRand(0), 3); !slices.Equal(got, []int{1, 2, 0}) {
		t.Errorf("permutation(fixedRand(0), 3) = %v, want [1 2 0]", got)
	}
}
