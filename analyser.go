package optics

// DefaultMaxIterations bounds the radius search in FindRadius.
const DefaultMaxIterations = 100

// ClusterAmount counts the clusters the plot separates into at the given
// radius, treating the plot as a mountain profile: every ascent to or above
// radius, and every renewed ascent after a peak while still above radius,
// starts a new cluster. Borders are the plot positions where those ascents
// begin (position 0 is never a border).
//
// A completely flat plot lying above radius cannot be split by this method
// and reports 0 clusters.
func (r ReachabilityPlot) ClusterAmount(radius float64) (amount int, borders []int) {
	amount = 1
	borders = []int{}

	var (
		inAscent     bool
		atPeak       bool
		prevMountain float64
		prev         float64
		havePrev     bool
		flat         = true
	)

	for i, v := range r {
		if v >= radius {
			switch {
			case !inAscent:
				inAscent = true
				amount++
				if i != 0 {
					borders = append(borders, i)
				}
			case v < prevMountain && !atPeak:
				atPeak = true
			case v > prevMountain && atPeak:
				atPeak = false
				amount++
				if i != 0 {
					borders = append(borders, i)
				}
			}
			prevMountain = v
		} else {
			inAscent = false
			atPeak = false
		}

		if havePrev && v != prev {
			flat = false
		}
		prev = v
		havePrev = true
	}

	if flat && havePrev && prev > radius {
		amount = 0
	}
	return amount, borders
}

// FindRadius searches for a radius at which ClusterAmount reports exactly
// target clusters, bisecting between 0 and the plot maximum for at most
// maxIterations steps. ok is false when no such radius was found: when the
// maximum already yields more than target clusters, when a probe finds no
// structure at all, or when the iterations run out.
func (r ReachabilityPlot) FindRadius(target, maxIterations int) (radius float64, borders []int, ok bool) {
	if len(r) == 0 || target < 1 {
		return 0, nil, false
	}

	hi := r.Max()
	lo := 0.0

	if amount, _ := r.ClusterAmount(hi); amount > target {
		return 0, nil, false
	}

	for range maxIterations {
		mid := (lo + hi) / 2
		amount, b := r.ClusterAmount(mid)
		switch {
		case amount == target:
			return mid, b, true
		case amount == 0:
			return 0, nil, false
		case amount > target:
			lo = mid
		default:
			hi = mid
		}
	}
	return 0, nil, false
}
