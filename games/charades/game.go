/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// TurnResult is what a finished turn reports back to the presentation layer.
type TurnResult struct {
	TurnPoints  int      `json:"turn_points"`
	ScoringTeam int      `json:"scoring_team"`
	Teams       []Team   `json:"teams"`
	Category    string   `json:"category"`
	Words       []string `json:"words"`
	Expired     bool     `json:"expired"`
}

// Progress drives the round and turn counters on screen.
type Progress struct {
	Round           int  `json:"round"`
	TotalRounds     int  `json:"total_rounds"`
	CompletedRounds int  `json:"completed_rounds"`
	Turn            int  `json:"turn"`
	TotalTurns      int  `json:"total_turns"`
	RemainingTurns  int  `json:"remaining_turns"`
	GameOver        bool `json:"game_over"`
}

// State is a full snapshot, used to resync a reconnecting screen.
type State struct {
	Config      Config     `json:"config"`
	Teams       []Team     `json:"teams"`
	Order       []int      `json:"order"`
	CurrentTeam int        `json:"current_team"`
	Progress    Progress   `json:"progress"`
	Turn        *TurnState `json:"turn,omitempty"`
	Running     bool       `json:"running"`
}

// Game owns one Scheduler, at most one live Turn, and that turn's countdown.
// Methods are safe for concurrent use. Countdown callbacks run on the
// countdown goroutine without the lock held.
type Game struct {
	mu sync.Mutex

	cfg      Config
	sched    *Scheduler
	seq      Sequencer
	rnd      Rand
	clock    clockwork.Clock
	interval time.Duration

	turn      *Turn
	countdown *Countdown
}

type Option func(*Game)

// WithRand injects the random source used for categories, words and order.
func WithRand(r Rand) Option {
	return func(g *Game) { g.rnd = r }
}

// WithClock injects the clock driving the turn countdown.
func WithClock(c clockwork.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithTickInterval changes the length of one countdown unit.
func WithTickInterval(d time.Duration) Option {
	return func(g *Game) { g.interval = d }
}

// WithSequencer overrides the strategy derived from Config.Policy.
func WithSequencer(s Sequencer) Option {
	return func(g *Game) { g.seq = s }
}

func New(cfg Config, data *Dataset, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		clock:    clockwork.NewRealClock(),
		interval: time.Second,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.rnd == nil {
		g.rnd = NewRand(0)
	}

	if g.seq == nil {
		seq, err := SequencerFor(cfg.Policy)
		if err != nil {
			return nil, err
		}
		g.seq = seq
	}

	sched, err := NewScheduler(cfg, data, g.rnd)
	if err != nil {
		return nil, err
	}
	g.sched = sched

	return g, nil
}

func (g *Game) Config() Config {
	return g.cfg
}

func (g *Game) Teams() []Team {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sched.Teams()
}

// StartTurn discards any live turn and starts a new one for the current team.
func (g *Game) StartTurn() (TurnState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.discardLocked()

	t, err := g.sched.StartTurn(g.seq)
	if err != nil {
		return TurnState{}, err
	}
	g.turn = t

	return t.State(), nil
}

// BeginTimer starts counting the live turn down. onTick receives the state
// after every tick. When time runs out the turn is ended and committed, and
// onExpire receives the result. Either callback may be nil.
func (g *Game) BeginTimer(onTick func(TurnState), onExpire func(TurnResult)) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turn == nil {
		return ErrNoTurn
	}

	g.countdown.Stop()
	g.countdown = startCountdown(g.clock, g.interval, func(c *Countdown) {
		g.tick(c, onTick, onExpire)
	})

	return nil
}

func (g *Game) tick(c *Countdown, onTick func(TurnState), onExpire func(TurnResult)) {
	g.mu.Lock()

	if g.countdown != c || g.turn == nil {
		g.mu.Unlock()

		return
	}

	_, expired := g.turn.Tick()
	state := g.turn.State()

	var result TurnResult
	if expired {
		result = g.endTurnLocked()
		result.Expired = true
	}

	g.mu.Unlock()

	if onTick != nil {
		onTick(state)
	}

	if expired && onExpire != nil {
		onExpire(result)
	}
}

// Running reports whether a countdown is active.
func (g *Game) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.countdown != nil && !g.countdown.Stopped()
}

// AdvanceWord records a correct guess. more is false when the caller should
// end the turn.
func (g *Game) AdvanceWord() (state TurnState, more bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turn == nil {
		return TurnState{}, false, ErrNoTurn
	}

	more = g.turn.Advance()

	return g.turn.State(), more, nil
}

// GoBack undoes the last correct guess of the live turn.
func (g *Game) GoBack() (state TurnState, changed bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turn == nil {
		return TurnState{}, false, ErrNoTurn
	}

	changed = g.turn.Back()

	return g.turn.State(), changed, nil
}

func (g *Game) CurrentWord() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turn == nil {
		return "", false
	}

	return g.turn.CurrentWord()
}

// Turn returns the live turn's state, if any.
func (g *Game) Turn() (TurnState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turn == nil {
		return TurnState{}, false
	}

	return g.turn.State(), true
}

// EndTurn stops the countdown and commits the live turn's points to its team.
func (g *Game) EndTurn() (TurnResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turn == nil {
		return TurnResult{}, ErrNoTurn
	}

	return g.endTurnLocked(), nil
}

func (g *Game) endTurnLocked() TurnResult {
	g.countdown.Stop()
	g.countdown = nil

	t := g.turn
	g.turn = nil

	points, team := g.sched.CommitTurn(t.Points())

	return TurnResult{
		TurnPoints:  points,
		ScoringTeam: team,
		Teams:       g.sched.Teams(),
		Category:    t.Category(),
		Words:       t.Words(),
	}
}

// AbortTurn stops and discards the live turn without scoring it.
func (g *Game) AbortTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.discardLocked()
}

func (g *Game) discardLocked() bool {
	g.countdown.Stop()
	g.countdown = nil

	live := g.turn != nil
	g.turn = nil

	return live
}

// AdvanceScheduler moves on to the next turn. A turn still live is discarded.
func (g *Game) AdvanceScheduler() Progress {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.discardLocked()
	g.sched.Advance()

	return g.progressLocked()
}

func (g *Game) Progress() Progress {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.progressLocked()
}

func (g *Game) progressLocked() Progress {
	return Progress{
		Round:           min(g.sched.CompletedRounds()+1, g.cfg.Rounds),
		TotalRounds:     g.cfg.Rounds,
		CompletedRounds: g.sched.CompletedRounds(),
		Turn:            g.sched.CurrentTurnNumber(),
		TotalTurns:      g.sched.TotalTurns(),
		RemainingTurns:  g.sched.RemainingTurns(),
		GameOver:        g.sched.GameOver(),
	}
}

func (g *Game) Winner() []Team {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sched.Winner()
}

// Reset discards any live turn and starts the game over with the same data.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.discardLocked()
	g.sched.Reset()
}

func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := State{
		Config:      g.cfg,
		Teams:       g.sched.Teams(),
		Order:       g.sched.Order(),
		CurrentTeam: g.sched.CurrentTeam(),
		Progress:    g.progressLocked(),
		Running:     g.countdown != nil && !g.countdown.Stopped(),
	}

	if g.turn != nil {
		ts := g.turn.State()
		s.Turn = &ts
	}

	return s
}
