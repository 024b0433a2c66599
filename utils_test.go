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
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimensions(t *testing.T) {
	w, h, err := ParseDimensions("70x50")
	require.NoError(t, err)
	assert.Equal(t, 70, w)
	assert.Equal(t, 50, h)

	w, h, err = ParseDimensions(" 3 x 4 ")
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	assert.Equal(t, 4, h)

	for _, s := range []string{"", "70", "70x", "axb", "0x5", "5x-1", "1x2x3"} {
		_, _, err = ParseDimensions(s)
		assert.Error(t, err, s)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)
	path, err := ExpandPath("~/Pictures")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Pictures"), path)

	wd, err := os.Getwd()
	require.NoError(t, err)
	path, err = ExpandPath("tiles")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "tiles"), path)
}

func TestLoggerProgressFunc(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	progress := LoggerProgressFunc("Tiles", 10, 4)
	for i := 1; i <= 10; i++ {
		progress(i)
	}
	// 4, 8 and the last one
	require.Len(t, hook.AllEntries(), 3)
	assert.Equal(t, log.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "Tiles: 10 of 10 (100.0%)", hook.LastEntry().Message)
	assert.Equal(t, "Tiles: 4 of 10 (40.0%)", hook.AllEntries()[0].Message)

	hook.Reset()
	LoggerProgressFunc("", 10, 0)(10)
	LoggerProgressFunc("", 0, 1)(1)
	assert.Empty(t, hook.AllEntries())

	LoggerProgressFunc("", 3, -1)(1)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "Progress: 1 of 3 (33.3%)", hook.LastEntry().Message)
}
