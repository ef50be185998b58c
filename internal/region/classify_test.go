package region

import "testing"

func TestClassifyRuleTable(t *testing.T) {
	p := DefaultParams()

	cases := []struct {
		name        string
		edgeDensity float64
		aspectRatio float64
		area        float64
		want        Type
	}{
		{"elongated busy region is a diagram", 0.2, 4.0, 20000, TypeDiagram},
		{"busy and large", 0.2, 1.5, 20000, TypeLargeImage},
		{"busy and small", 0.2, 1.5, 5000, TypeSmallImage},
		{"flat and large is a block image", 0.05, 1.5, 15000, TypeBlockImage},
		{"flat and small", 0.05, 1.5, 5000, TypeGraphicElement},
		{"edge density exactly at threshold goes to the flat branch", 0.15, 4.0, 20000, TypeBlockImage},
		{"aspect ratio exactly at threshold is not a diagram", 0.2, 3.0, 20000, TypeLargeImage},
		{"area exactly at threshold is not large", 0.2, 1.0, 10000, TypeSmallImage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.edgeDensity, tc.aspectRatio, tc.area, p)
			if got != tc.want {
				t.Errorf("classify(%v, %v, %v) = %s, want %s",
					tc.edgeDensity, tc.aspectRatio, tc.area, got, tc.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	p := DefaultParams()

	first := classify(0.2, 4.0, 20000, p)
	for i := 0; i < 100; i++ {
		if got := classify(0.2, 4.0, 20000, p); got != first {
			t.Fatalf("classify changed answer on call %d: %s != %s", i, got, first)
		}
	}
}

func TestClassifyReachesAllTypes(t *testing.T) {
	p := DefaultParams()

	seen := map[Type]bool{}
	for _, ed := range []float64{0.05, 0.2} {
		for _, ar := range []float64{1.5, 4.0} {
			for _, area := range []float64{5000, 20000} {
				seen[classify(ed, ar, area, p)] = true
			}
		}
	}

	for _, want := range []Type{TypeDiagram, TypeLargeImage, TypeSmallImage, TypeBlockImage, TypeGraphicElement} {
		if !seen[want] {
			t.Errorf("type %s is not reachable", want)
		}
	}
}
