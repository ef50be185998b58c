package region

import "image"

// neighbors8 enumerates the 8-neighborhood clockwise starting east.
var neighbors8 = [8]image.Point{
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
	{X: 0, Y: -1},
	{X: 1, Y: -1},
}

// findCandidates scans the mask for foreground components, traces the outer
// boundary of each (holes are not reported separately), and filters the
// results by contour area. Components are discovered in row-major scan order,
// which fixes the tie-break order used later when equal-area regions are
// sorted.
func (d *Detector) findCandidates(mask *image.Gray) []candidate {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pageArea := float64(w * h)
	maxArea := d.params.MaxAreaRatio * pageArea

	visited := make([][]bool, h)
	for i := range visited {
		visited[i] = make([]bool, w)
	}

	isFG := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h &&
			mask.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y > 128
	}

	var candidates []candidate

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y][x] || !isFG(x, y) {
				continue
			}

			contour := traceBoundary(image.Point{X: x, Y: y}, isFG)
			box := floodFill(visited, x, y, isFG)

			area := polygonArea(contour)
			if area < d.params.MinArea {
				continue
			}
			if area > maxArea {
				continue
			}

			candidates = append(candidates, candidate{
				contour: contour,
				bounds:  box,
				area:    area,
			})
		}
	}

	return candidates
}

// traceBoundary follows the outer boundary of the component containing
// start, which must be its topmost-leftmost pixel, using Moore-neighbor
// tracing with backtracking. The returned polygon is closed implicitly
// (last point connects back to the first).
func traceBoundary(start image.Point, isFG func(x, y int) bool) []image.Point {
	contour := []image.Point{start}
	cur := start
	scanFrom := 6 // background is north and west of the scan-order start pixel

	// The cap only guards against a malformed isFG; a real boundary is
	// exhausted long before it.
	for steps := 0; steps < 1<<22; steps++ {
		dir := -1
		for i := 0; i < 8; i++ {
			dc := (scanFrom + i) % 8
			n := cur.Add(neighbors8[dc])
			if isFG(n.X, n.Y) {
				dir = dc
				cur = n
				break
			}
		}

		if dir == -1 {
			// isolated pixel
			break
		}
		if cur == start {
			// boundary closed
			break
		}

		contour = append(contour, cur)
		scanFrom = (dir + 6) % 8
	}

	return contour
}

// floodFill marks the whole component reachable from (x, y) as visited and
// returns its bounding rectangle. 8-connected, matching the boundary tracer.
func floodFill(visited [][]bool, startX, startY int, isFG func(x, y int) bool) image.Rectangle {
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !isFG(p.X, p.Y) || visited[p.Y][p.X] {
			continue
		}
		visited[p.Y][p.X] = true

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		for _, d := range neighbors8 {
			stack = append(stack, p.Add(d))
		}
	}

	return image.Rect(minX, minY, maxX+1, maxY+1)
}
