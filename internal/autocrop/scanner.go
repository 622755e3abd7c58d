package autocrop

import "log"

// Sampler reads colors relative to an anchored image edge. The primary
// offset moves inward from the edge; the secondary offset runs along it.
type Sampler interface {
	At(primary, secondary int) Color
}

// FindBorder returns how many lines at the sampler's edge, in 0..scanSize,
// belong to a uniform border.
//
// The sampler must answer every offset in [0, scanSize] x [0, secondarySize].
func FindBorder(scanSize, secondarySize int, s Sampler) int {
	return findBorder(scanSize, secondarySize, s, nil)
}

// FindBorderSize returns the candidate border thickness from a probe of the
// two lines at secondary offsets 0 and secondarySize. It returns 0 when the
// two corners disagree or when both probe lines are uniform to the end.
func FindBorderSize(scanSize, secondarySize int, s Sampler) int {
	corner := s.At(0, 0)
	if !IsSameColor(corner, s.At(0, secondarySize)) {
		return 0
	}
	for i := 1; i <= scanSize; i++ {
		if !IsSameColor(corner, s.At(i, 0)) || !IsSameColor(corner, s.At(i, secondarySize)) {
			return i
		}
	}
	return 0
}

func findBorder(scanSize, secondarySize int, s Sampler, logger *log.Logger) int {
	cropSize := FindBorderSize(scanSize, secondarySize, s)
	if logger != nil {
		logger.Printf("potential crop size: %d / %d", cropSize, scanSize)
	}

	corner := s.At(0, 0)
	for x := 0; x < cropSize; x++ {
		for y := 0; y <= secondarySize; y++ {
			if c := s.At(x, y); !IsSameColor(corner, c) {
				if logger != nil {
					logger.Printf("cancelled crop on %d,%d, %v != %v", x, y, corner, c)
				}
				return x
			}
		}
	}
	return cropSize
}
