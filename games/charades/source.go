/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a word dataset.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor guesses a format from a file name or URL path.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Source yields the raw bytes of a word dataset. It may be served from a
// cache; nothing assumes freshness.
type Source interface {
	Load(ctx context.Context) ([]byte, Format, error)
	String() string
}

// SourceFor picks an HTTP or file source for location.
func SourceFor(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location}
	}

	return &FileSource{Path: location}
}

type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) ([]byte, Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read word file: %w", err)
	}

	return data, FormatFor(s.Path), nil
}

func (s *FileSource) String() string { return s.Path }

type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Load(ctx context.Context) ([]byte, Format, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("word source returned status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	format := FormatFor(req.URL.Path)
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = FormatYAML
	}

	return data, format, nil
}

func (s *HTTPSource) String() string { return s.URL }

// BytesSource serves a dataset already in memory, such as an embedded file.
type BytesSource struct {
	Name   string
	Data   []byte
	Format Format
}

func (s *BytesSource) Load(ctx context.Context) ([]byte, Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	return s.Data, s.Format, nil
}

func (s *BytesSource) String() string { return s.Name }

// Decode parses a dataset of the form {"categories": [{"name", "words"}]}.
func Decode(data []byte, format Format) (*Dataset, error) {
	var d Dataset

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

// Load fetches and decodes a dataset.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	data, format, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	return Decode(data, format)
}

// LoadWithFallback always returns a usable dataset. When src fails, the
// built-in Fallback is returned along with the error that caused it.
func LoadWithFallback(ctx context.Context, src Source) (*Dataset, error) {
	d, err := Load(ctx, src)
	if err != nil {
		return Fallback(), fmt.Errorf("loading %s: %w", src, err)
	}

	return d, nil
}
