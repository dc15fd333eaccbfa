/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import "errors"

var (
	// ErrNoData is returned by StartTurn when no category survives the restriction.
	ErrNoData = errors.New("no eligible categories")

	// ErrNoTurn is returned by turn operations when no turn is live.
	ErrNoTurn = errors.New("no turn in progress")

	ErrInvalidConfig  = errors.New("invalid game configuration")
	ErrInvalidDataset = errors.New("invalid word dataset")
)
