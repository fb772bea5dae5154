package batch

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"strings"
)

type atlasCell struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// writeAtlas writes the placed cell geometry as <sheet>.json so consumers
// can address frames without knowing the grid parameters.
func writeAtlas(sheetPath string, cells []image.Rectangle) error {
	entries := make([]atlasCell, len(cells))
	for i, c := range cells {
		entries[i] = atlasCell{X: c.Min.X, Y: c.Min.Y, W: c.Dx(), H: c.Dy()}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	path := strings.TrimSuffix(sheetPath, filepath.Ext(sheetPath)) + ".json"
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
