// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package photomosaic

import (
	"fmt"
	"sort"
	"strings"
)

// TileMatcher selects the tile for a cell given the dominant color of the
// cell.
//
// All matchers in this package use the distance of packed colors, see
// RGB.PackedDistance: The tile with the smallest distance is selected, if
// there are several such tiles the one with the smallest id.
//
// Implementations must be safe for concurrent use.
type TileMatcher interface {
	Select(target RGB) (TileID, error)
}

// LinearMatcher compares the target with each tile of the library.
// Each lookup takes O(N) steps.
type LinearMatcher struct {
	Library *TileLibrary
}

// NewLinearMatcher returns a new linear matcher for the library.
func NewLinearMatcher(lib *TileLibrary) *LinearMatcher {
	return &LinearMatcher{Library: lib}
}

// Select implements TileMatcher.
func (m *LinearMatcher) Select(target RGB) (TileID, error) {
	records := m.Library.Records()
	if len(records) == 0 {
		return NoTileID, ErrEmptyLibrary
	}
	best := records[0].ID
	bestDist := target.PackedDistance(records[0].Color)
	for _, rec := range records[1:] {
		// strictly smaller, on ties the first (smallest) id remains
		if dist := target.PackedDistance(rec.Color); dist < bestDist {
			best, bestDist = rec.ID, dist
		}
	}
	return best, nil
}

type packedEntry struct {
	packed uint32
	id     TileID
}

// SortedMatcher keeps the packed colors of the library sorted and looks up
// the closest value with a binary search, each lookup takes O(log N) steps.
// It always selects the same tile as LinearMatcher.
type SortedMatcher struct {
	// sorted by packed value, for each packed value only the smallest id
	entries []packedEntry
}

// NewSortedMatcher creates the sorted index of the library.
func NewSortedMatcher(lib *TileLibrary) *SortedMatcher {
	records := lib.Records()
	entries := make([]packedEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, packedEntry{packed: rec.Color.Pack(), id: rec.ID})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].packed == entries[j].packed {
			return entries[i].id < entries[j].id
		}
		return entries[i].packed < entries[j].packed
	})
	// remove duplicate colors, the first one has the smallest id
	unique := entries[:0]
	for i, e := range entries {
		if i > 0 && e.packed == entries[i-1].packed {
			continue
		}
		unique = append(unique, e)
	}
	return &SortedMatcher{entries: unique}
}

// Select implements TileMatcher.
func (m *SortedMatcher) Select(target RGB) (TileID, error) {
	n := len(m.entries)
	if n == 0 {
		return NoTileID, ErrEmptyLibrary
	}
	packed := target.Pack()
	// first entry ≥ packed
	i := sort.Search(n, func(i int) bool {
		return m.entries[i].packed >= packed
	})
	switch {
	case i == n:
		return m.entries[n-1].id, nil
	case i == 0, m.entries[i].packed == packed:
		return m.entries[i].id, nil
	}
	lower, upper := m.entries[i-1], m.entries[i]
	lowerDist, upperDist := packed-lower.packed, upper.packed-packed
	switch {
	case lowerDist < upperDist:
		return lower.id, nil
	case upperDist < lowerDist:
		return upper.id, nil
	case lower.id < upper.id:
		return lower.id, nil
	default:
		return upper.id, nil
	}
}

// MatcherKind names a TileMatcher implementation.
type MatcherKind int

const (
	// LinearMatch selects LinearMatcher.
	LinearMatch MatcherKind = iota
	// SortedMatch selects SortedMatcher.
	SortedMatch
)

func (kind MatcherKind) String() string {
	switch kind {
	case LinearMatch:
		return "linear"
	case SortedMatch:
		return "sorted"
	default:
		return fmt.Sprintf("MatcherKind(%d)", kind)
	}
}

// ParseMatcherKind parses "linear" or "sorted".
func ParseMatcherKind(s string) (MatcherKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return LinearMatch, nil
	case "sorted":
		return SortedMatch, nil
	default:
		return -1, fmt.Errorf("Unknown matcher %q, expected \"linear\" or \"sorted\"", s)
	}
}

// NewMatcher returns the matcher of the given kind for the library.
func NewMatcher(lib *TileLibrary, kind MatcherKind) (TileMatcher, error) {
	if lib == nil || lib.Len() == 0 {
		return nil, ErrEmptyLibrary
	}
	switch kind {
	case LinearMatch:
		return NewLinearMatcher(lib), nil
	case SortedMatch:
		return NewSortedMatcher(lib), nil
	default:
		return nil, fmt.Errorf("Unknown matcher kind %v", kind)
	}
}
