package quality

import (
	"math"
	"math/rand"
	"sort"
)

// =============================================================================
// ISOLATION FOREST
// Anomaly scoring over the numeric column matrix. Fully seeded so repeated
// assessments of the same sample agree.
// =============================================================================

const (
	isoTrees      = 100
	isoSampleSize = 256
)

type isoNode struct {
	feature   int
	threshold float64
	left      *isoNode
	right     *isoNode
	size      int // leaf only
}

// harmonic approximates H(n) for average-path normalization.
func harmonic(n float64) float64 {
	return math.Log(n) + 0.5772156649015329
}

// avgPathLength is c(n), the expected path length of an unsuccessful BST
// search over n points.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	fn := float64(n)
	return 2*harmonic(fn-1) - 2*(fn-1)/fn
}

func buildIsoTree(data [][]float64, idx []int, depth, limit int, rng *rand.Rand) *isoNode {
	if len(idx) <= 1 || depth >= limit {
		return &isoNode{size: len(idx)}
	}
	width := len(data[0])
	feature := rng.Intn(width)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, i := range idx {
		v := data[i][feature]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return &isoNode{size: len(idx)}
	}
	threshold := lo + rng.Float64()*(hi-lo)

	var left, right []int
	for _, i := range idx {
		if data[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isoNode{size: len(idx)}
	}
	return &isoNode{
		feature:   feature,
		threshold: threshold,
		left:      buildIsoTree(data, left, depth+1, limit, rng),
		right:     buildIsoTree(data, right, depth+1, limit, rng),
	}
}

func pathLength(n *isoNode, row []float64, depth int) float64 {
	if n.left == nil {
		return float64(depth) + avgPathLength(n.size)
	}
	if row[n.feature] < n.threshold {
		return pathLength(n.left, row, depth+1)
	}
	return pathLength(n.right, row, depth+1)
}

// isolationScores returns the anomaly score in (0, 1) for every row; higher
// means more isolated.
func isolationScores(data [][]float64, seed int64) []float64 {
	n := len(data)
	sample := isoSampleSize
	if sample > n {
		sample = n
	}
	limit := int(math.Ceil(math.Log2(float64(sample)))) + 1

	rng := rand.New(rand.NewSource(seed))
	trees := make([]*isoNode, isoTrees)
	for t := range trees {
		idx := rng.Perm(n)[:sample]
		trees[t] = buildIsoTree(data, idx, 0, limit, rng)
	}

	norm := avgPathLength(sample)
	scores := make([]float64, n)
	for i, row := range data {
		var total float64
		for _, tree := range trees {
			total += pathLength(tree, row, 0)
		}
		avg := total / float64(isoTrees)
		scores[i] = math.Pow(2, -avg/norm)
	}
	return scores
}

// flagAnomalies returns the row indexes of the top contamination fraction by
// anomaly score, sorted ascending.
func flagAnomalies(scores []float64, contamination float64) []int {
	n := len(scores)
	k := int(float64(n) * contamination)
	if k <= 0 || k > n {
		return nil
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})
	flagged := append([]int(nil), order[:k]...)
	sort.Ints(flagged)
	return flagged
}
