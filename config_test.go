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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 70, cfg.CellWidth)
	assert.Equal(t, 200, cfg.OutCellWidth)
	assert.Equal(t, DefaultBlendPairs, cfg.BlendPairs)
	assert.True(t, cfg.NumRoutines > 0)

	// the pairs are copied
	cfg.BlendPairs[0].Alpha = 42
	assert.Equal(t, 0.5, DefaultBlendPairs[0].Alpha)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CellHeight = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidRegion)

	cfg = DefaultConfig()
	cfg.OutCellWidth = -3
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidRegion)

	tests := []func(cfg *Config){
		func(cfg *Config) { cfg.NumTiles = -1 },
		func(cfg *Config) { cfg.BlendPairs = append(cfg.BlendPairs, BlendPair{1, 0}) },
		func(cfg *Config) { cfg.Trim = TrimMode(3) },
		func(cfg *Config) { cfg.Matcher = MatcherKind(3) },
		func(cfg *Config) { cfg.NumTiles, cfg.TilePattern = 3, "r_m_.jpg" },
		func(cfg *Config) { cfg.NumTiles, cfg.TilePattern = 3, "r_m_%s.jpg" },
		func(cfg *Config) { cfg.NumTiles, cfg.TilePattern = 3, "r_m_%d_%d.jpg" },
	}
	for i, modify := range tests {
		cfg := DefaultConfig()
		modify(&cfg)
		assert.Error(t, cfg.Validate(), "case %d", i)
	}

	cfg = DefaultConfig()
	cfg.BlendPairs = nil
	cfg.NumTiles = 10
	cfg.TilePattern = "tile-%03d.png"
	assert.NoError(t, cfg.Validate())

	// the pattern is not used if the directory is scanned
	cfg.NumTiles = 0
	cfg.TilePattern = "tiles"
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidateOutput(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ValidateOutput())
	cfg.Ext = ".png"
	assert.NoError(t, cfg.ValidateOutput())

	tests := []func(cfg *Config){
		func(cfg *Config) { cfg.JPGQuality = 0 },
		func(cfg *Config) { cfg.JPGQuality = 101 },
		func(cfg *Config) { cfg.Ext = ".gif" },
		func(cfg *Config) { cfg.Ext = "" },
	}
	for i, modify := range tests {
		cfg := DefaultConfig()
		modify(&cfg)
		assert.Error(t, cfg.ValidateOutput(), "case %d", i)
		// the output parameters don't matter for in-memory runs
		assert.NoError(t, cfg.Validate(), "case %d", i)
	}
}
