/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Seednode/charades/games/charades"
)

const (
	builtinWords = "assets/words.json"
	loadTimeout  = 15 * time.Second
)

// WordList is the dataset every game on this server draws from, along with
// its JSON encoding for /data/words.json.
type WordList struct {
	data    *charades.Dataset
	encoded []byte
	source  string
}

func (l *WordList) Dataset() *charades.Dataset {
	return l.data
}

func newWordList(data *charades.Dataset, source string) (*WordList, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &WordList{
		data:    data,
		encoded: encoded,
		source:  source,
	}, nil
}

// wordSource resolves --words; an empty value means the embedded list.
func wordSource(cfg *Config) charades.Source {
	if cfg.words != "" {
		return charades.SourceFor(cfg.words)
	}

	data, _ := assets.ReadFile(builtinWords)

	return &charades.BytesSource{
		Name:   "built-in word list",
		Data:   data,
		Format: charades.FormatJSON,
	}
}

// loadWords never fails: anything unusable is replaced by the small built-in
// fallback and a warning is logged.
func loadWords(ctx context.Context, cfg *Config) *WordList {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	src := wordSource(cfg)

	data, err := charades.LoadWithFallback(ctx, src)
	name := src.String()
	if err != nil {
		cfg.log.Warn().Err(err).Msg("WORDS: Using fallback word list")

		name = "fallback"
	}

	list, err := newWordList(data, name)
	if err != nil {
		cfg.log.Warn().Err(err).Msg("WORDS: Unable to encode word list, using fallback")

		list, _ = newWordList(charades.Fallback(), "fallback")
	}

	cfg.log.Info().Msgf("WORDS: Loaded %d categories (%d words) from %s",
		len(list.data.Categories),
		list.data.WordCount(),
		list.source,
	)

	return list
}

func serveWords(cfg *Config, words *WordList, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(words.encoded)))
		securityHeaders(cfg, w)

		written, err := w.Write(words.encoded)
		if err != nil {
			reportError(errs, err)

			return
		}

		cfg.log.Info().Msgf("SERVE: Word list (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}
