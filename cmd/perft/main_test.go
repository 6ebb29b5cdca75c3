package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"testing"
)

func TestProfileStopsOnError(t *testing.T) {
	errCount := errors.New("count failed")
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"failure", errCount},
	}
	for _, tc := range tests {
		path := filepath.Join(t.TempDir(), "cpu.prof")
		ran := false
		err := profile(path, func() error {
			ran = true
			return tc.err
		})
		if !ran {
			t.Errorf("%s: fn not run", tc.name)
		}
		if !errors.Is(err, tc.err) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.err)
		}

		// A profile left running would make this fail.
		if err := pprof.StartCPUProfile(io.Discard); err != nil {
			t.Fatalf("%s: profile still running: %v", tc.name, err)
		}
		pprof.StopCPUProfile()

		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s: profile not written: %v", tc.name, err)
		}
	}
}

func TestProfileDisabled(t *testing.T) {
	if err := profile("", func() error { return nil }); err != nil {
		t.Errorf("err = %v", err)
	}
}
