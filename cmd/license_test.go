// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const licenseHeader = "// Copyright (c) 2025 tql authors\n// Licensed under the MIT License. See LICENSE file in the project root for details.\n"

func TestSourceFilesCarryLicenseHeader(t *testing.T) {
	root := ".."
	var checked int
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), "_") {
			return filepath.SkipDir
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		checked++
		assert.True(t, strings.HasPrefix(string(b), licenseHeader), path)
		return nil
	})
	require.NoError(t, err)
	assert.Positive(t, checked)
}
