/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package charades is the turn and scoring engine behind the charades game.
//
// Teams take turns; the acting player sees a category and a word and mimes
// it while teammates guess against the clock. A Scheduler owns the team
// order, round counting and end-of-game detection. A Turn owns one team's
// live attempt: the category, the words shown so far, the current position,
// the points earned and the seconds left. How words are introduced during a
// turn is a swappable Sequencer:
//
//   - Accumulate: one word at a time, a fresh one per correct guess, no cap.
//   - PreDrawn: the whole sequence (up to five words) is fixed up front.
//
// Game ties both together behind a mutex and runs the per-second countdown
// on an injected clock.
package charades
