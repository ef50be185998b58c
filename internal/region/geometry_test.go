package region

import (
	"image"
	"math"
	"testing"
)

func square(x, y, side int) []image.Point {
	return []image.Point{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}
}

func TestPolygonArea(t *testing.T) {
	if got := polygonArea(square(10, 10, 100)); got != 10000 {
		t.Errorf("square area = %v, want 10000", got)
	}

	triangle := []image.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	if got := polygonArea(triangle); got != 50 {
		t.Errorf("triangle area = %v, want 50", got)
	}

	if got := polygonArea([]image.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}); got != 0 {
		t.Errorf("degenerate polygon area = %v, want 0", got)
	}
}

func TestArcLength(t *testing.T) {
	if got := arcLength(square(0, 0, 10)); got != 40 {
		t.Errorf("square perimeter = %v, want 40", got)
	}

	diag := []image.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}
	if got := arcLength(diag); got != 10 {
		t.Errorf("closed two-point contour length = %v, want 10", got)
	}
}

func TestConvexHull(t *testing.T) {
	// square corners plus a deep notch point inside the hull
	points := append(square(0, 0, 10), image.Point{X: 5, Y: 5})
	hull := convexHull(points)

	if got := polygonArea(hull); got != 100 {
		t.Errorf("hull area = %v, want 100 (notch must not shrink the hull)", got)
	}
	for _, p := range hull {
		if p.X == 5 && p.Y == 5 {
			t.Errorf("interior point ended up on the hull")
		}
	}
}

func TestSolidityOfConcaveShape(t *testing.T) {
	// an L shape: half the bounding square is missing
	l := []image.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5},
		{X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10},
	}
	area := polygonArea(l)
	hullArea := polygonArea(convexHull(l))

	solidity := area / hullArea
	if solidity <= 0 || solidity > 1 {
		t.Fatalf("solidity %v outside (0,1]", solidity)
	}
	if math.Abs(solidity-75.0/87.5) > 1e-9 {
		t.Errorf("L-shape solidity = %v, want %v", solidity, 75.0/87.5)
	}
}

func TestIntersectArea(t *testing.T) {
	r := image.Rect(0, 0, 100, 100)

	cases := []struct {
		name string
		box  TextBox
		want float64
	}{
		{"half overlap", TextBox{X: 50, Y: 0, Width: 100, Height: 100}, 5000},
		{"contained", TextBox{X: 10, Y: 10, Width: 20, Height: 20}, 400},
		{"disjoint", TextBox{X: 200, Y: 200, Width: 50, Height: 50}, 0},
		{"touching edge", TextBox{X: 100, Y: 0, Width: 50, Height: 100}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := intersectArea(r, tc.box); got != tc.want {
				t.Errorf("intersectArea = %v, want %v", got, tc.want)
			}
		})
	}
}
