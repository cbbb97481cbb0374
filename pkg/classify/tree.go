package classify

import (
	"math/rand"
	"sort"
)

// =============================================================================
// DECISION TREE
// Minimal CART with Gini impurity, used as the base learner of the bagged
// ensemble. Nodes serialize to JSON so a trained model can round-trip through
// the caller-owned artifact store.
// =============================================================================

// treeNode is one node of a fitted decision tree. Leaves carry the class
// distribution of the training samples that reached them.
type treeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Dist      []float64 `json:"dist,omitempty"`
}

func (n *treeNode) isLeaf() bool { return n.Left == nil }

// predict walks the tree and returns the leaf class distribution.
func (n *treeNode) predict(row []float64) []float64 {
	node := n
	for !node.isLeaf() {
		v := 0.0
		if node.Feature < len(row) {
			v = row[node.Feature]
		}
		if v <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Dist
}

// classDist returns the normalized class frequency of a sample set.
func classDist(y []int, idx []int, nClasses int) []float64 {
	dist := make([]float64, nClasses)
	for _, i := range idx {
		dist[y[i]]++
	}
	for j := range dist {
		dist[j] /= float64(len(idx))
	}
	return dist
}

func gini(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := c / total
		g -= p * p
	}
	return g
}

type splitResult struct {
	feature   int
	threshold float64
	impurity  float64
	left      []int
	right     []int
}

// bestSplit searches a random feature subset for the lowest weighted Gini
// impurity. Candidate thresholds are midpoints between consecutive distinct
// feature values.
func bestSplit(x [][]float64, y []int, idx []int, nClasses, nFeatures int, rng *rand.Rand) (splitResult, bool) {
	width := len(x[0])
	order := rng.Perm(width)
	if nFeatures < width {
		order = order[:nFeatures]
	}

	best := splitResult{impurity: 2} // above any reachable Gini
	found := false

	vals := make([]float64, len(idx))
	for _, f := range order {
		for i, r := range idx {
			vals[i] = x[r][f]
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)

		for i := 1; i < len(sorted); i++ {
			if sorted[i] == sorted[i-1] {
				continue
			}
			thr := (sorted[i] + sorted[i-1]) / 2

			leftCounts := make([]float64, nClasses)
			rightCounts := make([]float64, nClasses)
			var nLeft, nRight float64
			for _, r := range idx {
				if x[r][f] <= thr {
					leftCounts[y[r]]++
					nLeft++
				} else {
					rightCounts[y[r]]++
					nRight++
				}
			}
			if nLeft == 0 || nRight == 0 {
				continue
			}
			total := nLeft + nRight
			imp := nLeft/total*gini(leftCounts, nLeft) + nRight/total*gini(rightCounts, nRight)
			if imp < best.impurity {
				best.impurity = imp
				best.feature = f
				best.threshold = thr
				found = true
			}
		}
	}
	if !found {
		return best, false
	}

	for _, r := range idx {
		if x[r][best.feature] <= best.threshold {
			best.left = append(best.left, r)
		} else {
			best.right = append(best.right, r)
		}
	}
	return best, true
}

// buildTree grows a CART tree to maxDepth over the given sample indexes.
func buildTree(x [][]float64, y []int, idx []int, nClasses, depth, maxDepth, nFeatures int, rng *rand.Rand) *treeNode {
	pure := true
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			pure = false
			break
		}
	}
	if pure || depth >= maxDepth || len(idx) < 2 {
		return &treeNode{Dist: classDist(y, idx, nClasses)}
	}

	split, ok := bestSplit(x, y, idx, nClasses, nFeatures, rng)
	if !ok {
		return &treeNode{Dist: classDist(y, idx, nClasses)}
	}
	return &treeNode{
		Feature:   split.feature,
		Threshold: split.threshold,
		Left:      buildTree(x, y, split.left, nClasses, depth+1, maxDepth, nFeatures, rng),
		Right:     buildTree(x, y, split.right, nClasses, depth+1, maxDepth, nFeatures, rng),
	}
}
