package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// =============================================================================
// TF-IDF VECTORIZER
// Bag-of-words over unigrams and bigrams, English stopwords removed,
// vocabulary capped at MaxFeatures by corpus frequency. A fitted Vectorizer
// is immutable and safe for concurrent Transform calls.
// =============================================================================

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 1000

// ErrEmptyCorpus is returned when fitting finds no usable terms.
var ErrEmptyCorpus = errors.New("match: corpus produced no terms")

var englishStopwords = func() map[string]struct{} {
	words := []string{
		"a", "about", "above", "after", "again", "all", "an", "and", "any",
		"are", "as", "at", "be", "because", "been", "before", "being",
		"below", "between", "both", "but", "by", "can", "did", "do", "does",
		"doing", "down", "during", "each", "few", "for", "from", "further",
		"had", "has", "have", "having", "he", "her", "here", "hers", "him",
		"his", "how", "if", "in", "into", "is", "it", "its", "just", "more",
		"most", "my", "no", "nor", "not", "now", "of", "off", "on", "once",
		"only", "or", "other", "our", "out", "over", "own", "same", "she",
		"should", "so", "some", "such", "than", "that", "the", "their",
		"them", "then", "there", "these", "they", "this", "those", "through",
		"to", "too", "under", "until", "up", "very", "was", "we", "were",
		"what", "when", "where", "which", "while", "who", "whom", "why",
		"will", "with", "you", "your",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// tokenize lowercases, splits on non-alphanumerics, drops single-character
// tokens and stopwords.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if len(t) < 2 {
			continue
		}
		if _, stop := englishStopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// terms expands a token stream into unigrams plus bigrams.
func terms(tokens []string) []string {
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Vectorizer holds a fitted vocabulary and idf weights.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Documents  int            `json:"documents"`
}

// FitVectorizer learns a vocabulary from the corpus. maxFeatures <= 0 selects
// DefaultMaxFeatures. Terms are ranked by corpus frequency (ties broken
// lexicographically) so fitting is deterministic.
func FitVectorizer(corpus []string, maxFeatures int) (*Vectorizer, error) {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	df := make(map[string]int)
	tf := make(map[string]int)
	docs := 0
	for _, doc := range corpus {
		ts := terms(tokenize(doc))
		if len(ts) == 0 {
			continue
		}
		docs++
		inDoc := make(map[string]bool, len(ts))
		for _, t := range ts {
			tf[t]++
			inDoc[t] = true
		}
		for t := range inDoc {
			df[t]++
		}
	}
	if docs == 0 || len(tf) == 0 {
		return nil, ErrEmptyCorpus
	}

	ranked := make([]string, 0, len(tf))
	for t := range tf {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if tf[ranked[i]] != tf[ranked[j]] {
			return tf[ranked[i]] > tf[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > maxFeatures {
		ranked = ranked[:maxFeatures]
	}

	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(ranked)),
		IDF:        make([]float64, len(ranked)),
		Documents:  docs,
	}
	for i, t := range ranked {
		v.Vocabulary[t] = i
		// Smoothed idf keeps unseen-document math finite.
		v.IDF[i] = math.Log(float64(1+docs)/float64(1+df[t])) + 1
	}
	return v, nil
}

// Transform maps a text to its l2-normalized sparse tf-idf vector. The norm
// is accumulated in ascending index order, so the same text always yields the
// same vector bit for bit.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	vec := make(map[int]float64)
	for _, t := range terms(tokenize(text)) {
		if i, ok := v.Vocabulary[t]; ok {
			vec[i]++
		}
	}
	idxs := sortedIndexes(vec)
	var ss float64
	for _, i := range idxs {
		vec[i] *= v.IDF[i]
		ss += vec[i] * vec[i]
	}
	if ss > 0 {
		norm := math.Sqrt(ss)
		for _, i := range idxs {
			vec[i] /= norm
		}
	}
	return vec
}

func sortedIndexes(vec map[int]float64) []int {
	idxs := make([]int, 0, len(vec))
	for i := range vec {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs
}

// cosineSnap absorbs the last-ulp drift of the normalized dot product so
// identical vectors score exactly 1 and equal pairs compare as exact ties.
const cosineSnap = 1e12

// cosine is the dot product of two l2-normalized sparse vectors, accumulated
// in ascending index order and clamped to [0, 1].
func cosine(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for _, i := range sortedIndexes(a) {
		dot += a[i] * b[i]
	}
	dot = math.Round(dot*cosineSnap) / cosineSnap
	if dot < 0 {
		return 0
	}
	if dot > 1 {
		return 1
	}
	return dot
}

// EncodeVectorizer serializes a fitted vectorizer for the caller-owned
// artifact store.
func EncodeVectorizer(v *Vectorizer) ([]byte, error) {
	if v == nil {
		return nil, errors.New("match: nil vectorizer")
	}
	return json.Marshal(v)
}

// DecodeVectorizer restores a vectorizer produced by EncodeVectorizer.
func DecodeVectorizer(data []byte) (*Vectorizer, error) {
	var v Vectorizer
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("match: decode vectorizer: %w", err)
	}
	if len(v.Vocabulary) == 0 {
		return nil, errors.New("match: decoded vectorizer has no vocabulary")
	}
	return &v, nil
}
