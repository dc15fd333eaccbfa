/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"fmt"
)

const (
	MinTeams = 2
	MaxTeams = 4
)

// WordMode selects between one word per turn and a sequence of words per turn.
type WordMode string

const (
	WordModeSingle   WordMode = "single"
	WordModeMultiple WordMode = "multiple"
)

// Policy names a word-sequencing strategy.
type Policy string

const (
	// PolicyAccumulate draws a new word on every correct guess, with no cap.
	PolicyAccumulate Policy = "accumulate"

	// PolicyPreDrawn fixes up to MaxPreDrawn words before the clock starts.
	PolicyPreDrawn Policy = "predrawn"
)

// Config is fixed for the lifetime of one game.
type Config struct {
	Teams       int         `json:"teams" yaml:"teams"`
	TurnSeconds int         `json:"turn_seconds" yaml:"turn_seconds"`
	Rounds      int         `json:"rounds" yaml:"rounds"`
	WordMode    WordMode    `json:"words_mode" yaml:"words_mode"`
	Policy      Policy      `json:"policy" yaml:"policy"`
	Restriction Restriction `json:"restrict" yaml:"restrict"`
}

func DefaultConfig() Config {
	return Config{
		Teams:       2,
		TurnSeconds: 30,
		Rounds:      10,
		WordMode:    WordModeSingle,
		Policy:      PolicyAccumulate,
		Restriction: RestrictBonus,
	}
}

func (c Config) Validate() error {
	if c.Teams < MinTeams || c.Teams > MaxTeams {
		return fmt.Errorf("%w: teams must be between %d-%d inclusive, got %d", ErrInvalidConfig, MinTeams, MaxTeams, c.Teams)
	}
	if c.TurnSeconds < 1 {
		return fmt.Errorf("%w: seconds per turn must be positive, got %d", ErrInvalidConfig, c.TurnSeconds)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidConfig, c.Rounds)
	}

	switch c.WordMode {
	case WordModeSingle, WordModeMultiple:
	default:
		return fmt.Errorf("%w: unknown words mode %q", ErrInvalidConfig, c.WordMode)
	}

	switch c.Policy {
	case PolicyAccumulate, PolicyPreDrawn:
	default:
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, c.Policy)
	}

	switch c.Restriction {
	case RestrictNone, RestrictBonus, RestrictStrict:
	default:
		return fmt.Errorf("%w: unknown category restriction %q", ErrInvalidConfig, c.Restriction)
	}

	return nil
}
