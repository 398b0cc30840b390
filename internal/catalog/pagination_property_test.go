package catalog

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_EffectiveLimitBounds checks that for any limit input, the
// effective limit used in a query stays within [1, 100].
func TestProperty_EffectiveLimitBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	n := NewNormalizer(defaultQueryConfig())

	properties.Property("effective limit is always within [1, 100]", prop.ForAll(
		func(limit int) bool {
			w, err := n.Normalize(Pagination{Page: 1, Limit: limit})
			if err != nil {
				return false
			}
			return w.Limit >= 1 && w.Limit <= 100
		},
		gen.IntRange(-10_000, 10_000),
	))

	properties.Property("in-range limits pass through unchanged", prop.ForAll(
		func(limit int) bool {
			w, err := n.Normalize(Pagination{Page: 1, Limit: limit})
			if err != nil {
				return false
			}
			return w.Limit == limit
		},
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}

// TestProperty_OffsetContiguity checks that for page >= 1,
// offset = (page-1)*limit, so consecutive pages cover contiguous,
// non-overlapping slices of a stable dataset.
func TestProperty_OffsetContiguity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	n := NewNormalizer(defaultQueryConfig())

	properties.Property("offset follows (page-1)*effectiveLimit", prop.ForAll(
		func(page, limit int) bool {
			w, err := n.Normalize(Pagination{Page: page, Limit: limit})
			if err != nil {
				return false
			}
			return w.Offset == (page-1)*w.Limit
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 100),
	))

	properties.Property("consecutive pages are contiguous", prop.ForAll(
		func(page, limit int) bool {
			cur, err := n.Normalize(Pagination{Page: page, Limit: limit})
			if err != nil {
				return false
			}
			next, err := n.Normalize(Pagination{Page: page + 1, Limit: limit})
			if err != nil {
				return false
			}
			// The next page starts exactly where this one ends.
			return next.Offset == cur.Offset+cur.Limit
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}

// TestProperty_StrictModeAgreement checks that whenever strict mode accepts
// a limit, it produces the same window permissive mode would have.
func TestProperty_StrictModeAgreement(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	permissive := NewNormalizer(defaultQueryConfig())
	strictCfg := defaultQueryConfig()
	strictCfg.StrictPagination = true
	strict := NewNormalizer(strictCfg)

	properties.Property("strict and permissive agree on valid input", prop.ForAll(
		func(page, limit int) bool {
			sw, err := strict.Normalize(Pagination{Page: page, Limit: limit})
			if err != nil {
				return false
			}
			pw, err := permissive.Normalize(Pagination{Page: page, Limit: limit})
			if err != nil {
				return false
			}
			return sw == pw
		},
		gen.IntRange(1, 100),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}
