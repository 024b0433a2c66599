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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// colorLibrary returns a library without image data, tile i + 1 has the
// color colors[i].
func colorLibrary(t *testing.T, colors ...RGB) *TileLibrary {
	t.Helper()
	records := make([]TileRecord, len(colors))
	for i, c := range colors {
		records[i] = TileRecord{ID: TileID(i + 1), Color: c}
	}
	lib, err := NewTileLibrary(records)
	require.NoError(t, err)
	return lib
}

func matchers(lib *TileLibrary) map[string]TileMatcher {
	return map[string]TileMatcher{
		"linear": NewLinearMatcher(lib),
		"sorted": NewSortedMatcher(lib),
	}
}

func TestSelectClosest(t *testing.T) {
	lib := colorLibrary(t, NewRGB(255, 0, 0), NewRGB(0, 0, 255))
	for name, m := range matchers(lib) {
		id, err := m.Select(NewRGB(255, 0, 0))
		require.NoError(t, err, name)
		assert.Equal(t, TileID(1), id, name)

		id, err = m.Select(NewRGB(0, 0, 200))
		require.NoError(t, err, name)
		assert.Equal(t, TileID(2), id, name)
	}
}

func TestSelectPackedDistance(t *testing.T) {
	// (0, 1, 0) is 256, (0, 0, 255) is 255 and (0, 1, 10) is 266
	lib := colorLibrary(t, NewRGB(0, 1, 10), NewRGB(0, 0, 255))
	for name, m := range matchers(lib) {
		id, err := m.Select(NewRGB(0, 1, 0))
		require.NoError(t, err, name)
		assert.Equal(t, TileID(2), id, name)
	}
}

func TestSelectTies(t *testing.T) {
	lib := colorLibrary(t, NewRGB(0, 0, 20), NewRGB(0, 0, 10), NewRGB(0, 0, 10), NewRGB(0, 0, 30))
	for name, m := range matchers(lib) {
		// equal distance to tiles 1, 2 and 3
		id, err := m.Select(NewRGB(0, 0, 15))
		require.NoError(t, err, name)
		assert.Equal(t, TileID(1), id, name)

		// tiles 2 and 3 have the same color
		id, err = m.Select(NewRGB(0, 0, 9))
		require.NoError(t, err, name)
		assert.Equal(t, TileID(2), id, name)

		id, err = m.Select(NewRGB(0, 0, 25))
		require.NoError(t, err, name)
		assert.Equal(t, TileID(1), id, name)

		id, err = m.Select(NewRGB(255, 255, 255))
		require.NoError(t, err, name)
		assert.Equal(t, TileID(4), id, name)
	}
}

func TestSelectEquivalence(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	randomColor := func() RGB {
		// few distinct values to get many ties
		return NewRGB(uint8(rnd.Intn(3)*100), uint8(rnd.Intn(4)*60), uint8(rnd.Intn(256)))
	}
	colors := make([]RGB, 50)
	for i := range colors {
		colors[i] = randomColor()
	}
	lib := colorLibrary(t, colors...)
	linear, sorted := NewLinearMatcher(lib), NewSortedMatcher(lib)
	for i := 0; i < 1000; i++ {
		target := randomColor()
		expected, err := linear.Select(target)
		require.NoError(t, err)
		got, err := sorted.Select(target)
		require.NoError(t, err)
		require.Equal(t, expected, got, "target %v", target)
	}
}

func TestSelectEmpty(t *testing.T) {
	lib := colorLibrary(t)
	for name, m := range matchers(lib) {
		_, err := m.Select(NewRGB(1, 2, 3))
		assert.ErrorIs(t, err, ErrEmptyLibrary, name)
	}
	_, err := NewMatcher(lib, LinearMatch)
	assert.ErrorIs(t, err, ErrEmptyLibrary)
}

func TestNewMatcher(t *testing.T) {
	lib := colorLibrary(t, NewRGB(1, 2, 3))
	m, err := NewMatcher(lib, LinearMatch)
	require.NoError(t, err)
	assert.IsType(t, &LinearMatcher{}, m)

	m, err = NewMatcher(lib, SortedMatch)
	require.NoError(t, err)
	assert.IsType(t, &SortedMatcher{}, m)

	_, err = NewMatcher(lib, MatcherKind(5))
	assert.Error(t, err)
}

func TestParseMatcherKind(t *testing.T) {
	kind, err := ParseMatcherKind("Sorted")
	require.NoError(t, err)
	assert.Equal(t, SortedMatch, kind)
	assert.Equal(t, "linear", LinearMatch.String())

	_, err = ParseMatcherKind("kd-tree")
	assert.Error(t, err)
}
