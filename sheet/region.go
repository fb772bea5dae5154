package sheet

import "image"

// FindRegions returns the tight bounding box of every maximal 8-connected
// group of pixels with nonzero alpha. Boxes use exclusive maxima and are
// reported in discovery order: row-major order of each group's first pixel.
func FindRegions(img *image.RGBA) []image.Rectangle {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	visited := make([]bool, w*h)
	opaque := func(x, y int) bool {
		return img.Pix[img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)+3] != 0
	}

	var regions []image.Rectangle
	queue := make([]image.Point, 0, 64)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || !opaque(x, y) {
				continue
			}

			queue = queue[:0]
			queue = append(queue, image.Pt(x, y))
			visited[y*w+x] = true
			xmin, xmax, ymin, ymax := x, x, y, y

			for head := 0; head < len(queue); head++ {
				cur := queue[head]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := cur.X+dx, cur.Y+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						if visited[ny*w+nx] || !opaque(nx, ny) {
							continue
						}
						visited[ny*w+nx] = true
						queue = append(queue, image.Pt(nx, ny))
						if nx < xmin {
							xmin = nx
						}
						if nx > xmax {
							xmax = nx
						}
						if ny < ymin {
							ymin = ny
						}
						if ny > ymax {
							ymax = ny
						}
					}
				}
			}

			regions = append(regions, image.Rect(xmin, ymin, xmax+1, ymax+1).Add(bounds.Min))
		}
	}
	return regions
}
