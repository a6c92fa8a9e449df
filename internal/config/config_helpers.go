package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// compileCUE reads path and evaluates it as a single CUE value. CUE is the
// only accepted format; positions in errors carry the file name.
func compileCUE(path string) (cue.Value, error) {
	if ext := filepath.Ext(path); ext != ".cue" {
		return cue.Value{}, fmt.Errorf("%w: %s: expected a .cue file, got %q", ErrInvalidConfig, path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("can't read config %s: %w", path, err)
	}
	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return v, nil
}
