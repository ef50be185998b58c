package region

// classify maps a feature triple to a region type. Edge density separates
// visually busy content (charts, drawings) from flat blocks; aspect ratio
// then isolates elongated diagrams; area breaks the remaining ties.
// The function is total and pure: every triple maps to exactly one type.
func classify(edgeDensity, aspectRatio, area float64, p Params) Type {
	if edgeDensity > p.EdgeDensityThreshold {
		if aspectRatio > p.AspectRatioThreshold {
			return TypeDiagram
		}
		if area > p.SizeThreshold {
			return TypeLargeImage
		}
		return TypeSmallImage
	}

	if area > p.SizeThreshold {
		return TypeBlockImage
	}
	return TypeGraphicElement
}
