package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get wd: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	defer func() { _ = os.Chdir(originalWd) }()

	t.Run("version exits zero", func(t *testing.T) {
		os.Args = []string{"forge", "version"}
		assert.Equal(t, 0, run())
	})

	t.Run("unknown image exits one", func(t *testing.T) {
		os.Args = []string{"forge", "run", "no-such-image"}
		assert.Equal(t, 1, run())
	})

	t.Run("missing recipe exits one", func(t *testing.T) {
		os.Args = []string{"forge", "build"}
		assert.Equal(t, 1, run())
	})
}
