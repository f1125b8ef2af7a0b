// Package timeline splits a time ordered photo list into a handful of
// groups suitable for navigation links.
package timeline

import (
	"math"
	"math/big"
	"slices"

	"github.com/kozaktomas/photo-archive/internal/gallery"
)

const (
	// FlatLimit is the largest list that is presented without grouping.
	FlatLimit = 16
	// SmallGroups is the group count for lists shorter than SqrtFrom.
	SmallGroups = 8
	// SqrtFrom is the first list length grouped into sqrt(n) groups.
	SqrtFrom = 81
	// LargeFrom is the first list length grouped into LargeGroups groups.
	LargeFrom = 225
	// LargeGroups is the group count for long lists.
	LargeGroups = 15
)

// Group is the half open index range [Start, End) of a photo list.
type Group struct {
	Start int
	End   int
}

// Len returns the number of photos in the group.
func (g Group) Len() int {
	return g.End - g.Start
}

// Photos returns the photos of the group.
func (g Group) Photos(photos []gallery.Photo) []gallery.Photo {
	return photos[g.Start:g.End]
}

// TargetCount returns the number of groups a list of n photos is split
// into, or 0 if it should be shown ungrouped.
func TargetCount(n int) int {
	switch {
	case n <= FlatLimit:
		return 0
	case n < SqrtFrom:
		return SmallGroups
	case n >= LargeFrom:
		return LargeGroups
	default:
		return int(math.Sqrt(float64(n)))
	}
}

// Split partitions photos, which must be ordered newest first, into
// TargetCount(len(photos)) contiguous groups. It returns nil when the list is
// short enough to be shown as is.
//
// The group with the highest len³·(span+1) score is split repeatedly at its
// largest time gap, ignoring the outer sixteenth at each end. Concatenating
// the groups always yields the input.
func Split(photos []gallery.Photo) []Group {
	k := TargetCount(len(photos))
	if k == 0 {
		return nil
	}

	ts := make([]int64, len(photos))
	for i, p := range photos {
		ts[i] = p.Timestamp()
	}

	groups := make([]Group, 1, k)
	groups[0] = Group{Start: 0, End: len(photos)}
	for len(groups) < k {
		i, ok := largest(groups, ts)
		if !ok {
			break
		}
		a, b := splitAt(groups[i], ts)
		groups[i] = a
		groups = slices.Insert(groups, i+1, b)
	}
	return groups
}

// largest returns the index of the splittable group with the highest score.
// The first group wins ties.
func largest(groups []Group, ts []int64) (int, bool) {
	found := -1
	var best *big.Int
	for i, g := range groups {
		if !splittable(g) {
			continue
		}
		if s := score(g, ts); best == nil || s.Cmp(best) > 0 {
			found, best = i, s
		}
	}
	return found, found >= 0
}

// score is len³·(span+1). Long lists over long spans exceed 2^63, and a
// float would round distinct scores to equal ones, so it is computed exactly.
func score(g Group, ts []int64) *big.Int {
	n := big.NewInt(int64(g.Len()))
	s := new(big.Int).Mul(n, n)
	s.Mul(s, n)
	span := big.NewInt(ts[g.Start])
	span.Sub(span, big.NewInt(ts[g.End-1]))
	span.Add(span, big.NewInt(1))
	return s.Mul(s, span)
}

func edge(g Group) int {
	return g.Len() / 16
}

func splittable(g Group) bool {
	e := edge(g)
	return e < g.Len()-1-e
}

// splitAt cuts g after the position with the largest gap to its successor,
// scanning only the interior of the group. The first candidate wins ties, so
// a group without any gap is still split.
func splitAt(g Group, ts []int64) (Group, Group) {
	e := edge(g)
	pos, gap := -1, int64(math.MinInt64)
	for i := g.Start + e; i < g.End-1-e; i++ {
		if d := ts[i] - ts[i+1]; d > gap {
			pos, gap = i, d
		}
	}
	return Group{Start: g.Start, End: pos + 1}, Group{Start: pos + 1, End: g.End}
}
