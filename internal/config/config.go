// Package config resolves the tool configuration from three layers:
// compiled defaults, an optional JSON file, and command-line flags. Later
// layers win. Overrides carry pointer fields so an explicit zero or false
// still counts as set.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"gitgub.com/cam-per/sheetpack/sheet"
)

type Config struct {
	InputFolder  string
	OutputFolder string
	Layout       sheet.Layout
	// Jobs bounds how many images are processed concurrently.
	Jobs int
	// AtlasIndex writes a JSON cell index next to each sheet.
	AtlasIndex bool
}

func Default() Config {
	return Config{
		InputFolder:  "./spritesheets",
		OutputFolder: "processed",
		Layout:       sheet.DefaultLayout(),
		Jobs:         runtime.NumCPU(),
	}
}

// Overrides is one layer of configuration on top of another. Nil fields
// leave the lower layer untouched.
type Overrides struct {
	InputFolder    *string  `json:"input_folder"`
	OutputFolder   *string  `json:"output_folder"`
	ScaleFactor    *float64 `json:"scale_factor"`
	TargetPadding  *int     `json:"target_padding"`
	OutputColumns  *int     `json:"output_columns"`
	OutputRows     *int     `json:"output_rows"`
	SortByPosition *bool    `json:"sort_by_position"`
	FrameRepeat    *int     `json:"frame_repeat"`
	Jobs           *int     `json:"jobs"`
	AtlasIndex     *bool    `json:"atlas_index"`
}

// LoadFile parses a JSON override layer from path.
func LoadFile(path string) (Overrides, error) {
	var o Overrides
	data, err := os.ReadFile(path)
	if err != nil {
		return o, err
	}
	if err := json.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("config %s: %w", path, err)
	}
	return o, nil
}

// Apply merges one override layer into c. Explicit values are validated
// here because once merged, a zero Columns or Rows is indistinguishable
// from auto.
func (c *Config) Apply(o Overrides) error {
	if o.InputFolder != nil {
		c.InputFolder = *o.InputFolder
	}
	if o.OutputFolder != nil {
		c.OutputFolder = *o.OutputFolder
	}
	if o.ScaleFactor != nil {
		if *o.ScaleFactor <= 0 {
			return fmt.Errorf("%w: scale factor %v is not positive", sheet.ErrInvalidLayout, *o.ScaleFactor)
		}
		c.Layout.Scale = *o.ScaleFactor
	}
	if o.TargetPadding != nil {
		if *o.TargetPadding < 0 {
			return fmt.Errorf("%w: padding %d is negative", sheet.ErrInvalidLayout, *o.TargetPadding)
		}
		c.Layout.Padding = *o.TargetPadding
	}
	if o.OutputColumns != nil {
		if *o.OutputColumns < 1 {
			return fmt.Errorf("%w: columns %d is not positive", sheet.ErrInvalidLayout, *o.OutputColumns)
		}
		c.Layout.Columns = *o.OutputColumns
	}
	if o.OutputRows != nil {
		if *o.OutputRows < 1 {
			return fmt.Errorf("%w: rows %d is not positive", sheet.ErrInvalidLayout, *o.OutputRows)
		}
		c.Layout.Rows = *o.OutputRows
	}
	if o.SortByPosition != nil {
		c.Layout.SortByPosition = *o.SortByPosition
	}
	if o.FrameRepeat != nil {
		if *o.FrameRepeat < 1 {
			return fmt.Errorf("%w: frame repeat %d is not positive", sheet.ErrInvalidLayout, *o.FrameRepeat)
		}
		c.Layout.FrameRepeat = *o.FrameRepeat
	}
	if o.Jobs != nil {
		if *o.Jobs < 1 {
			return fmt.Errorf("%w: jobs %d is not positive", sheet.ErrInvalidLayout, *o.Jobs)
		}
		c.Jobs = *o.Jobs
	}
	if o.AtlasIndex != nil {
		c.AtlasIndex = *o.AtlasIndex
	}
	return nil
}
