// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package pass

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())
}

func TestLoadOptionsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sizing_field: 0.5\nmax_passes: 7\nverify: true\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, opts.SizingField)
	assert.Equal(t, 7, opts.MaxPasses)
	assert.True(t, opts.Verify)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultOptions().CollapseQuality, opts.CollapseQuality)
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsBadRanges(t *testing.T) {
	cases := map[string]func(*Options){
		"zero sizing":         func(o *Options) { o.SizingField = 0 },
		"negative quality":    func(o *Options) { o.CollapseQuality = -1 },
		"zero passes":         func(o *Options) { o.MaxPasses = 0 },
		"negative operations": func(o *Options) { o.MaxOperations = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			mutate(&opts)
			require.ErrorIs(t, opts.Validate(), ErrOptionRange)
		})
	}
}
