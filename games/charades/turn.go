/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

// Turn is the live state of one team's timed attempt.
//
// While a turn is live, index is always within [0, len(words)). The
// sequencer decides how words are introduced; Back and Tick behave the same
// under every policy.
type Turn struct {
	team      int
	category  Category
	mode      WordMode
	seq       Sequencer
	rnd       Rand
	words     []string
	used      map[string]struct{}
	index     int
	points    int
	remaining int

	// completed is set once the single word of an Accumulate turn has been
	// credited.
	completed bool
}

// TurnState is a read-only view of a Turn for rendering.
type TurnState struct {
	Team      int      `json:"team"`
	Category  string   `json:"category"`
	Word      string   `json:"word"`
	Words     []string `json:"words"`
	Index     int      `json:"index"`
	Points    int      `json:"points"`
	Remaining int      `json:"remaining"`
	Mode      WordMode `json:"words_mode"`
	Policy    Policy   `json:"policy"`
	CanGoBack bool     `json:"can_go_back"`
}

func newTurn(team int, category Category, cfg Config, seq Sequencer, rnd Rand) *Turn {
	t := &Turn{
		team:      team,
		category:  category,
		mode:      cfg.WordMode,
		seq:       seq,
		rnd:       rnd,
		remaining: cfg.TurnSeconds,
	}

	seq.begin(t)

	return t
}

func (t *Turn) Team() int { return t.team }
func (t *Turn) Category() string { return t.category.Name }
func (t *Turn) Index() int { return t.index }
func (t *Turn) Points() int { return t.points }
func (t *Turn) Remaining() int { return t.remaining }
func (t *Turn) Words() []string { return append([]string(nil), t.words...) }
func (t *Turn) Completed() bool { return t.completed }
func (t *Turn) Sequencer() Sequencer { return t.seq }

// CurrentWord returns the word at the current index, if any.
func (t *Turn) CurrentWord() (string, bool) {
	if t.index < 0 || t.index >= len(t.words) {
		return "", false
	}

	return t.words[t.index], true
}

// Advance records a correct guess. It reports whether another word is
// available; false means the caller should end the turn now.
func (t *Turn) Advance() bool {
	return t.seq.advance(t)
}

// Back undoes the most recent correct guess. Points never drop below zero.
// It reports whether anything changed.
func (t *Turn) Back() bool {
	switch {
	case t.completed:
		t.completed = false
	case t.index > 0:
		t.index--
	default:
		return false
	}

	if t.points > 0 {
		t.points--
	}

	return true
}

// Tick removes one second. expired is true exactly once, on the tick that
// reaches zero; later ticks change nothing.
func (t *Turn) Tick() (remaining int, expired bool) {
	if t.remaining <= 0 {
		return 0, false
	}

	t.remaining--

	return t.remaining, t.remaining == 0
}

func (t *Turn) State() TurnState {
	word, _ := t.CurrentWord()

	return TurnState{
		Team:      t.team,
		Category:  t.category.Name,
		Word:      word,
		Words:     t.Words(),
		Index:     t.index,
		Points:    t.points,
		Remaining: t.remaining,
		Mode:      t.mode,
		Policy:    t.seq.Policy(),
		CanGoBack: t.completed || t.index > 0,
	}
}
