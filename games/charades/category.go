/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"fmt"
	"strings"
)

const (
	BonusMarker  = "Bonus"
	StrictMarker = "Bonus Stars"
)

// Restriction filters which categories may be drawn.
type Restriction string

const (
	// RestrictNone keeps every category.
	RestrictNone Restriction = "none"

	// RestrictBonus drops every category named with BonusMarker.
	RestrictBonus Restriction = "bonus"

	// RestrictStrict drops only the categories named with StrictMarker.
	RestrictStrict Restriction = "strict"
)

type Category struct {
	Name  string   `json:"name" yaml:"name"`
	Words []string `json:"words" yaml:"words"`
}

// Dataset is read once before a game and never mutated afterwards.
type Dataset struct {
	Categories []Category `json:"categories" yaml:"categories"`
}

func (d *Dataset) Validate() error {
	if d == nil || len(d.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidDataset)
	}

	for i, c := range d.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidDataset, i)
		}
		if len(c.Words) == 0 {
			return fmt.Errorf("%w: category %q has no words", ErrInvalidDataset, c.Name)
		}
	}

	return nil
}

// Names lists category names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Categories))
	for i, c := range d.Categories {
		names[i] = c.Name
	}

	return names
}

// WordCount is the total number of words across all categories.
func (d *Dataset) WordCount() int {
	n := 0
	for _, c := range d.Categories {
		n += len(c.Words)
	}

	return n
}

// Eligible returns the categories that survive r, in dataset order.
func (r Restriction) Eligible(categories []Category) []Category {
	var marker string

	switch r {
	case RestrictBonus:
		marker = BonusMarker
	case RestrictStrict:
		marker = StrictMarker
	default:
		return append([]Category(nil), categories...)
	}

	eligible := make([]Category, 0, len(categories))
	for _, c := range categories {
		if strings.Contains(c.Name, marker) {
			continue
		}
		eligible = append(eligible, c)
	}

	return eligible
}

// Fallback is served when the configured dataset cannot be loaded.
func Fallback() *Dataset {
	return &Dataset{
		Categories: []Category{
			{Name: "Animals", Words: []string{"dog", "cat", "elephant"}},
			{Name: "Objects", Words: []string{"table", "chair", "window"}},
		},
	}
}
