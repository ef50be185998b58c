package region

import (
	"image"
	"math"
	"sort"
)

// polygonArea computes the enclosed area of a closed polygon with the
// shoelace formula.
func polygonArea(contour []image.Point) float64 {
	n := len(contour)
	if n < 3 {
		return 0
	}

	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += float64(contour[i].X*contour[j].Y - contour[j].X*contour[i].Y)
	}

	return math.Abs(area) / 2.0
}

// arcLength computes the perimeter of a closed contour.
func arcLength(contour []image.Point) float64 {
	if len(contour) < 2 {
		return 0
	}

	length := 0.0
	for i := 0; i < len(contour)-1; i++ {
		dx := float64(contour[i+1].X - contour[i].X)
		dy := float64(contour[i+1].Y - contour[i].Y)
		length += math.Sqrt(dx*dx + dy*dy)
	}

	dx := float64(contour[0].X - contour[len(contour)-1].X)
	dy := float64(contour[0].Y - contour[len(contour)-1].Y)
	return length + math.Sqrt(dx*dx+dy*dy)
}

// convexHull returns the convex hull of the points via Graham's scan.
func convexHull(points []image.Point) []image.Point {
	n := len(points)
	if n <= 3 {
		return points
	}

	sorted := make([]image.Point, n)
	copy(sorted, points)

	// pivot: lowest Y, then lowest X
	lowest := 0
	for i := 1; i < n; i++ {
		if sorted[i].Y < sorted[lowest].Y ||
			(sorted[i].Y == sorted[lowest].Y && sorted[i].X < sorted[lowest].X) {
			lowest = i
		}
	}
	sorted[0], sorted[lowest] = sorted[lowest], sorted[0]

	p0 := sorted[0]
	sort.Slice(sorted[1:], func(i, j int) bool {
		i, j = i+1, j+1
		orientation := crossProduct(p0, sorted[i], sorted[j])
		if orientation == 0 {
			return distanceSquared(p0, sorted[i]) < distanceSquared(p0, sorted[j])
		}
		return orientation > 0
	})

	hull := make([]image.Point, 0, n)
	hull = append(hull, sorted[0], sorted[1])

	for i := 2; i < n; i++ {
		for len(hull) > 1 && crossProduct(hull[len(hull)-2], hull[len(hull)-1], sorted[i]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, sorted[i])
	}

	return hull
}

// crossProduct is positive when p0->p1->p2 turns counter-clockwise, negative
// when clockwise, zero when collinear.
func crossProduct(p0, p1, p2 image.Point) int {
	return (p1.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(p1.Y-p0.Y)
}

func distanceSquared(p1, p2 image.Point) int {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return dx*dx + dy*dy
}

// intersectArea returns the overlap area between a bounding rectangle and a
// text box, in pixels.
func intersectArea(r image.Rectangle, t TextBox) float64 {
	x1 := maxInt(r.Min.X, t.X)
	y1 := maxInt(r.Min.Y, t.Y)
	x2 := minInt(r.Max.X, t.X+t.Width)
	y2 := minInt(r.Max.Y, t.Y+t.Height)

	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return float64((x2 - x1) * (y2 - y1))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
