package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"gitgub.com/cam-per/sheetpack/sheet"
)

func ptr[T any](v T) *T { return &v }

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.InputFolder != "./spritesheets" || cfg.OutputFolder != "processed" {
		t.Errorf("unexpected default folders: %q -> %q", cfg.InputFolder, cfg.OutputFolder)
	}
	want := sheet.Layout{Scale: 1, Padding: 1, SortByPosition: true, FrameRepeat: 1}
	if cfg.Layout != want {
		t.Errorf("default layout %+v, want %+v", cfg.Layout, want)
	}
	if cfg.Jobs < 1 {
		t.Errorf("default jobs %d", cfg.Jobs)
	}
}

func TestApplyLayering(t *testing.T) {
	cfg := Default()

	// File layer.
	if err := cfg.Apply(Overrides{
		ScaleFactor:    ptr(2.0),
		SortByPosition: ptr(false),
		OutputColumns:  ptr(3),
	}); err != nil {
		t.Fatal(err)
	}
	// Flag layer wins over the file layer.
	if err := cfg.Apply(Overrides{
		TargetPadding: ptr(0),
		OutputColumns: ptr(4),
	}); err != nil {
		t.Fatal(err)
	}

	if cfg.Layout.Scale != 2 || cfg.Layout.SortByPosition || cfg.Layout.Columns != 4 || cfg.Layout.Padding != 0 {
		t.Errorf("merged layout %+v", cfg.Layout)
	}
	if cfg.Layout.FrameRepeat != 1 || cfg.Layout.Rows != 0 {
		t.Errorf("untouched fields changed: %+v", cfg.Layout)
	}
}

func TestApplyRejectsInvalidValues(t *testing.T) {
	for _, tc := range []struct {
		name string
		o    Overrides
	}{
		{"zero scale", Overrides{ScaleFactor: ptr(0.0)}},
		{"negative padding", Overrides{TargetPadding: ptr(-1)}},
		{"zero columns", Overrides{OutputColumns: ptr(0)}},
		{"negative rows", Overrides{OutputRows: ptr(-3)}},
		{"zero repeat", Overrides{FrameRepeat: ptr(0)}},
		{"zero jobs", Overrides{Jobs: ptr(0)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.Apply(tc.o); !errors.Is(err, sheet.ErrInvalidLayout) {
				t.Fatalf("expected ErrInvalidLayout, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"input_folder": "art",
		"scale_factor": 1.5,
		"sort_by_position": false,
		"frame_repeat": 2
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := cfg.Apply(o); err != nil {
		t.Fatal(err)
	}

	if cfg.InputFolder != "art" || cfg.OutputFolder != "processed" {
		t.Errorf("folders %q -> %q", cfg.InputFolder, cfg.OutputFolder)
	}
	if cfg.Layout.Scale != 1.5 || cfg.Layout.SortByPosition || cfg.Layout.FrameRepeat != 2 {
		t.Errorf("layout %+v", cfg.Layout)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
