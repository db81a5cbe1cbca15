package analyzer

import (
	"github.com/mcncl/yamlify/internal/models"
)

// Stats summarizes the shape of a decoded document
type Stats struct {
	// Depth is the deepest collection nesting level; a bare scalar has depth 0
	Depth            int
	Scalars          int
	Nulls            int
	Sequences        int
	Mappings         int
	EmptyCollections int
}

// Nodes returns the total number of values in the document
func (s Stats) Nodes() int {
	return s.Scalars + s.Sequences + s.Mappings
}

// KeyVals returns the stats as alternating keys and values for structured logging
func (s Stats) KeyVals() []interface{} {
	return []interface{}{
		"depth", s.Depth,
		"scalars", s.Scalars,
		"nulls", s.Nulls,
		"sequences", s.Sequences,
		"mappings", s.Mappings,
		"empty_collections", s.EmptyCollections,
	}
}

// Analyzer walks documents and collects Stats
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

type pending struct {
	value models.Value
	depth int
}

// Analyze walks root without recursion and returns its Stats
func (a *Analyzer) Analyze(root models.Value) Stats {
	var stats Stats
	stack := []pending{{value: root}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch cur.value.Kind() {
		case models.KindSequence, models.KindMapping:
			level := cur.depth + 1
			if level > stats.Depth {
				stats.Depth = level
			}
			if cur.value.Kind() == models.KindSequence {
				stats.Sequences++
			} else {
				stats.Mappings++
			}
			if cur.value.IsEmptyCollection() {
				stats.EmptyCollections++
				continue
			}

			for _, item := range cur.value.Items() {
				stack = append(stack, pending{value: item, depth: level})
			}
			cur.value.Each(func(_ string, v models.Value) bool {
				stack = append(stack, pending{value: v, depth: level})
				return true
			})
		case models.KindNull:
			stats.Scalars++
			stats.Nulls++
		default:
			stats.Scalars++
		}
	}

	return stats
}
