// Package batch walks the input tree and runs the extract/re-pack pipeline
// once per image, mirroring the directory structure under the output root.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"gitgub.com/cam-per/sheetpack/internal/config"
	"gitgub.com/cam-per/sheetpack/internal/imaging"
	"gitgub.com/cam-per/sheetpack/sheet"
)

type Processor struct {
	Config config.Config
}

// Run processes every supported image under the input folder. A failing
// image is logged and skipped; the batch keeps going.
func (p *Processor) Run(ctx context.Context) error {
	files, err := p.collect()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Printf("no images found under %s", p.Config.InputFolder)
		return nil
	}

	sem := make(chan struct{}, p.Config.Jobs)
	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := p.processFile(path); err != nil {
				failed.Add(1)
				log.Printf("%s: %v", path, err)
			}
		}(file)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		log.Printf("%d of %d images failed", n, len(files))
	}
	return nil
}

func (p *Processor) collect() ([]string, error) {
	var files []string
	err := filepath.WalkDir(p.Config.InputFolder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && imaging.Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.Config.InputFolder, err)
	}
	return files, nil
}

func (p *Processor) processFile(path string) error {
	img, err := imaging.Decode(path)
	if err != nil {
		return err
	}

	regions := sheet.FindRegions(img)
	log.Printf("%s: %d frames recognized", filepath.Base(path), len(regions))

	composed, err := sheet.Compose(img, regions, p.Config.Layout)
	if err != nil {
		return err
	}

	outPath, err := p.outputPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	// The sheet is written only after the whole pipeline succeeded, so a
	// failed image never leaves partial output behind.
	size, err := imaging.Save(composed.Image, outPath)
	if err != nil {
		return err
	}
	log.Printf("saved %s (%s)", outPath, humanize.Bytes(uint64(size)))

	if p.Config.AtlasIndex {
		return writeAtlas(outPath, composed.Cells)
	}
	return nil
}

// outputPath mirrors the source file's position relative to the input root
// under the output root, always with a .png extension.
func (p *Processor) outputPath(path string) (string, error) {
	rel, err := filepath.Rel(p.Config.InputFolder, path)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".png"
	return filepath.Join(p.Config.OutputFolder, rel), nil
}
