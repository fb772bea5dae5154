package sheet

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"sort"

	"gitgub.com/cam-per/sheetpack/internal/imaging"
)

// Layout controls how extracted frames are re-packed into a sheet.
type Layout struct {
	// Scale resizes every frame before packing. 1 leaves frames untouched.
	Scale float64
	// Padding is the pixel spacing between grid cells. The border of the
	// sheet carries no padding.
	Padding int
	// Columns and Rows fix the grid dimensions when nonzero. Zero means
	// auto: floor(sqrt(total)) columns, enough rows to hold every frame.
	Columns int
	Rows    int
	// SortByPosition orders frames top-to-bottom then left-to-right by
	// their position in the source image instead of discovery order.
	SortByPosition bool
	// FrameRepeat places each frame this many times consecutively.
	FrameRepeat int
}

func DefaultLayout() Layout {
	return Layout{
		Scale:          1,
		Padding:        1,
		SortByPosition: true,
		FrameRepeat:    1,
	}
}

func (l Layout) Validate() error {
	switch {
	case l.Scale <= 0:
		return fmt.Errorf("%w: scale factor %v is not positive", ErrInvalidLayout, l.Scale)
	case l.Padding < 0:
		return fmt.Errorf("%w: padding %d is negative", ErrInvalidLayout, l.Padding)
	case l.Columns < 0:
		return fmt.Errorf("%w: columns %d is negative", ErrInvalidLayout, l.Columns)
	case l.Rows < 0:
		return fmt.Errorf("%w: rows %d is negative", ErrInvalidLayout, l.Rows)
	case l.FrameRepeat < 1:
		return fmt.Errorf("%w: frame repeat %d is not positive", ErrInvalidLayout, l.FrameRepeat)
	}
	return nil
}

// Sheet is a composed spritesheet plus the destination cell of every placed
// frame, in placement order.
type Sheet struct {
	Image *image.RGBA
	Cells []image.Rectangle
}

// Compose crops each region out of src and packs the frames into a uniform
// grid according to layout. Regions are expected to come from FindRegions
// over the same buffer; an empty region list is an error, not an empty
// sheet.
func Compose(src *image.RGBA, regions []image.Rectangle, layout Layout) (*Sheet, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, ErrEmptyInput
	}

	pairs := make([]pair, len(regions))
	for i, r := range regions {
		if r.Dx() <= 0 || r.Dy() <= 0 {
			return nil, fmt.Errorf("%w: region %v", ErrFrameCollapsed, r)
		}
		pairs[i] = pair{region: r, frame: crop(src, r)}
	}

	if layout.Scale != 1 {
		for i := range pairs {
			fw := pairs[i].frame.Rect.Dx()
			fh := pairs[i].frame.Rect.Dy()
			sw := int(float64(fw) * layout.Scale)
			sh := int(float64(fh) * layout.Scale)
			if sw == 0 || sh == 0 {
				return nil, fmt.Errorf("%w: scale %v turns %dx%d frame into %dx%d",
					ErrFrameCollapsed, layout.Scale, fw, fh, sw, sh)
			}
			pairs[i].frame = imaging.Resize(pairs[i].frame, sw, sh)
		}
	}

	if layout.SortByPosition {
		// Stable, keyed on the pre-scale region. Equal keys keep
		// discovery order.
		sort.SliceStable(pairs, func(i, j int) bool {
			a, b := pairs[i].region.Min, pairs[j].region.Min
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.X < b.X
		})
	}

	maxW, maxH := 0, 0
	for _, p := range pairs {
		maxW = max(maxW, p.frame.Rect.Dx())
		maxH = max(maxH, p.frame.Rect.Dy())
	}

	frames := make([]*image.RGBA, 0, len(pairs)*layout.FrameRepeat)
	for _, p := range pairs {
		// Frames are read-only from here on, so repeats share pixels.
		cell := center(p.frame, maxW, maxH)
		for n := 0; n < layout.FrameRepeat; n++ {
			frames = append(frames, cell)
		}
	}

	total := len(frames)
	cols := layout.Columns
	if cols == 0 {
		cols = max(int(math.Sqrt(float64(total))), 1)
	}
	rows := layout.Rows
	if rows == 0 {
		rows = (total + cols - 1) / cols
	}
	if total > cols*rows {
		return nil, fmt.Errorf("%w: %d frames do not fit %d columns x %d rows",
			ErrGridOverflow, total, cols, rows)
	}

	stepX := maxW + layout.Padding
	stepY := maxH + layout.Padding
	canvas := image.NewRGBA(image.Rect(0, 0, cols*stepX-layout.Padding, rows*stepY-layout.Padding))
	cells := make([]image.Rectangle, total)
	for i, frame := range frames {
		dst := image.Rect(0, 0, maxW, maxH).Add(image.Pt(i%cols*stepX, i/cols*stepY))
		draw.Draw(canvas, dst, frame, frame.Rect.Min, draw.Src)
		cells[i] = dst
	}
	return &Sheet{Image: canvas, Cells: cells}, nil
}

type pair struct {
	region image.Rectangle
	frame  *image.RGBA
}

func crop(src *image.RGBA, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Rect, src, r.Min, draw.Src)
	return dst
}

// center pastes frame into a transparent w x h cell, offset by the floored
// half-difference on each axis.
func center(frame *image.RGBA, w, h int) *image.RGBA {
	fw := frame.Rect.Dx()
	fh := frame.Rect.Dy()
	if fw == w && fh == h {
		return frame
	}
	cell := image.NewRGBA(image.Rect(0, 0, w, h))
	dst := image.Rect(0, 0, fw, fh).Add(image.Pt((w-fw)/2, (h-fh)/2))
	draw.Draw(cell, dst, frame, frame.Rect.Min, draw.Src)
	return cell
}
