package scoring

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"merchant-verify.backend/internal/domain/entities"
)

const (
	maxClusters      = 5
	clusterSeed      = 42
	maxLloydRounds   = 300
	mergeGapFraction = 0.05
)

// ErrNonFiniteAmount is returned when an amount is NaN or infinite.
var ErrNonFiniteAmount = errors.New("amount is not a finite number")

// ClusterAmounts groups amounts with one dimensional k-means (k-means++
// seeding from a fixed seed, then Lloyd iterations). k is min(5, n) bounded
// by the number of distinct amounts. Adjacent clusters whose centers lie
// within 5% of the mean amount are merged. Clusters are returned ordered by
// center, with centers rounded to two decimals.
func ClusterAmounts(amounts []float64) ([]entities.AmountCluster, error) {
	if len(amounts) == 0 {
		return []entities.AmountCluster{}, nil
	}

	sum := 0.0
	for _, a := range amounts {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return nil, ErrNonFiniteAmount
		}
		sum += a
	}
	mean := sum / float64(len(amounts))

	k := maxClusters
	if len(amounts) < k {
		k = len(amounts)
	}
	if d := countDistinct(amounts); d < k {
		k = d
	}

	centers := seedCenters(amounts, k, rand.New(rand.NewSource(clusterSeed)))
	labels := make([]int, len(amounts))
	for round := 0; round < maxLloydRounds; round++ {
		changed := assign(amounts, centers, labels)
		if !recenter(amounts, centers, labels) && !changed && round > 0 {
			break
		}
	}

	groups := make([]clusterAcc, len(centers))
	for i, a := range amounts {
		groups[labels[i]].add(a)
	}
	merged := mergeClose(groups, math.Abs(mean)*mergeGapFraction)

	out := make([]entities.AmountCluster, 0, len(merged))
	for _, g := range merged {
		out = append(out, entities.AmountCluster{Center: round2(g.center()), Count: g.count})
	}
	return out, nil
}

// LargestCluster returns the member count of the biggest cluster.
func LargestCluster(clusters []entities.AmountCluster) int {
	largest := 0
	for _, c := range clusters {
		if c.Count > largest {
			largest = c.Count
		}
	}
	return largest
}

type clusterAcc struct {
	sum   float64
	count int
}

func (c *clusterAcc) add(v float64) {
	c.sum += v
	c.count++
}

func (c clusterAcc) center() float64 {
	return c.sum / float64(c.count)
}

func countDistinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// seedCenters picks k starting centers with k-means++: the first uniformly,
// each next one with probability proportional to its squared distance from
// the nearest chosen center.
func seedCenters(values []float64, k int, rng *rand.Rand) []float64 {
	centers := make([]float64, 0, k)
	centers = append(centers, values[rng.Intn(len(values))])

	dist := make([]float64, len(values))
	for len(centers) < k {
		total := 0.0
		for i, v := range values {
			d := nearestDistance(v, centers)
			dist[i] = d * d
			total += dist[i]
		}
		if total == 0 {
			break
		}
		target := rng.Float64() * total
		pick := len(values) - 1
		for i, d := range dist {
			target -= d
			if target < 0 && d > 0 {
				pick = i
				break
			}
		}
		centers = append(centers, values[pick])
	}
	return centers
}

func nearestDistance(v float64, centers []float64) float64 {
	best := math.Inf(1)
	for _, c := range centers {
		if d := math.Abs(v - c); d < best {
			best = d
		}
	}
	return best
}

func nearestCenter(v float64, centers []float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centers {
		if d := math.Abs(v - c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func assign(values, centers []float64, labels []int) bool {
	changed := false
	for i, v := range values {
		if l := nearestCenter(v, centers); l != labels[i] {
			labels[i] = l
			changed = true
		}
	}
	return changed
}

// recenter moves every non-empty cluster to the mean of its members. Empty
// clusters keep their previous center.
func recenter(values, centers []float64, labels []int) bool {
	sums := make([]float64, len(centers))
	counts := make([]int, len(centers))
	for i, v := range values {
		sums[labels[i]] += v
		counts[labels[i]]++
	}
	moved := false
	for i := range centers {
		if counts[i] == 0 {
			continue
		}
		next := sums[i] / float64(counts[i])
		if next != centers[i] {
			centers[i] = next
			moved = true
		}
	}
	return moved
}

// mergeClose drops empty clusters, sorts the rest by center and folds each
// cluster into its left neighbour when their centers are within maxGap.
func mergeClose(groups []clusterAcc, maxGap float64) []clusterAcc {
	live := make([]clusterAcc, 0, len(groups))
	for _, g := range groups {
		if g.count > 0 {
			live = append(live, g)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].center() < live[j].center() })

	merged := make([]clusterAcc, 0, len(live))
	for _, g := range live {
		if n := len(merged); n > 0 && g.center()-merged[n-1].center() <= maxGap {
			merged[n-1].sum += g.sum
			merged[n-1].count += g.count
			continue
		}
		merged = append(merged, g)
	}
	return merged
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
