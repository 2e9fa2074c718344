package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func TestImage(t *testing.T) {
	assert := assert.New(t)

	prog := &cpu.Program{
		Lines: []cpu.Line{
			{Value: 0x82, Comment: "LDI R0,8"},
			{Value: 0},
			{Value: 8},
			{Value: 1, Comment: "HLT"},
		},
	}

	path := filepath.Join(t.TempDir(), "print8.ls8")
	assert.NoError(saveImage(path, prog))

	// The suffix is optional.
	for _, name := range []string{path, path[:len(path)-len(".ls8")]} {
		loaded, err := loadImage(name)
		assert.NoError(err)
		assert.Equal(prog.Bytes(), loaded.Bytes())
		assert.Equal("HLT", loaded.Lines[3].Comment)
	}

	_, err := loadImage(filepath.Join(t.TempDir(), "missing"))
	assert.True(errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(t.TempDir(), "bad.ls8")
	assert.NoError(os.WriteFile(bad, []byte("10000010\n2\n"), 0o644))
	_, err = loadImage(bad)
	assert.ErrorIs(err, cpu.ErrParseBinary)
}
