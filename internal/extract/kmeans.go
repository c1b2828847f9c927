package extract

import "math"

// convergenceThreshold is the maximum squared per-channel movement a
// centre may make between iterations while still counting as settled.
// Every centre must satisfy it simultaneously, not on average.
const convergenceThreshold = 25

// center is a cluster centroid: the rounded per-channel mean of its
// member pixels. Channels stay in [0,255] throughout.
type center struct {
	r, g, b int
}

// sqDist returns the squared Euclidean RGB distance from a pixel to a
// centre. Only relative comparisons matter anywhere in the engine, so
// the square root is never taken.
func sqDist(p Pixel, c center) int {
	dr := int(p.R) - c.r
	dg := int(p.G) - c.g
	db := int(p.B) - c.b
	return dr*dr + dg*dg + db*db
}

func centerSqDist(a, b center) int {
	dr := a.r - b.r
	dg := a.g - b.g
	db := a.b - b.b
	return dr*dr + dg*dg + db*db
}

func centerOf(p Pixel) center {
	return center{r: int(p.R), g: int(p.G), b: int(p.B)}
}

// initCenters picks k initial centres with k-means++ seeding: the
// first centre is a uniformly random pixel, each subsequent one is
// drawn with probability proportional to its squared distance to the
// nearest already-chosen centre. Seeds biased apart cut the expected
// number of refinement iterations and avoid the poor local optima of
// naive random seeding.
func (e *Extractor) initCenters(pixels []Pixel, k int) []center {
	centers := make([]center, 0, k)
	centers = append(centers, centerOf(pixels[e.rng.Intn(len(pixels))]))

	weights := make([]int, len(pixels))
	for len(centers) < k {
		total := 0
		for i, p := range pixels {
			best := sqDist(p, centers[0])
			for _, c := range centers[1:] {
				if d := sqDist(p, c); d < best {
					best = d
				}
			}
			weights[i] = best
			total += best
		}

		// All remaining pixels coincide exactly with existing
		// centres; fall back to a uniform draw.
		if total == 0 {
			centers = append(centers, centerOf(pixels[e.rng.Intn(len(pixels))]))
			continue
		}

		target := e.rng.Intn(total)
		for i, w := range weights {
			target -= w
			if target < 0 {
				centers = append(centers, centerOf(pixels[i]))
				break
			}
		}
	}
	return centers
}

// assign maps every pixel to its nearest centre, filling assignments
// and the per-cluster size counters. Ties go to the lowest centre
// index. After assign returns, the sizes sum to len(pixels).
func assign(pixels []Pixel, centers []center, assignments []int, sizes []int) {
	for i := range sizes {
		sizes[i] = 0
	}
	for i, p := range pixels {
		nearest := 0
		nearestDist := sqDist(p, centers[0])
		for j := 1; j < len(centers); j++ {
			if d := sqDist(p, centers[j]); d < nearestDist {
				nearest = j
				nearestDist = d
			}
		}
		assignments[i] = nearest
		sizes[nearest]++
	}
}

// update recomputes each centre as the rounded mean of its assigned
// pixels. Means round half away from zero (math.Round). A cluster
// that received no pixels keeps its previous centre unchanged, so
// empty clusters can persist across iterations.
func update(pixels []Pixel, assignments, sizes []int, prev []center) []center {
	k := len(prev)
	sumR := make([]int, k)
	sumG := make([]int, k)
	sumB := make([]int, k)
	for i, p := range pixels {
		c := assignments[i]
		sumR[c] += int(p.R)
		sumG[c] += int(p.G)
		sumB[c] += int(p.B)
	}

	next := make([]center, k)
	for i := range next {
		if sizes[i] == 0 {
			next[i] = prev[i]
			continue
		}
		n := float64(sizes[i])
		next[i] = center{
			r: int(math.Round(float64(sumR[i]) / n)),
			g: int(math.Round(float64(sumG[i]) / n)),
			b: int(math.Round(float64(sumB[i]) / n)),
		}
	}
	return next
}

// converged reports whether every centre moved by at most
// convergenceThreshold (squared) since the previous iteration.
func converged(old, next []center) bool {
	for i := range old {
		if centerSqDist(old[i], next[i]) > convergenceThreshold {
			return false
		}
	}
	return true
}
