package bvh

import (
	"fmt"

	"github.com/pkg/errors"
)

// Method is the algorithm used to construct a tree.
type Method int

const (
	NotConstructed Method = iota
	// TopDown splits at the mean centroid along the longest axis.
	TopDown
	// BottomUp greedily merges the pair of nodes with the smallest merged surface area.
	BottomUp
	// Insertion is accepted but builds nothing.
	Insertion
)

func (m Method) String() string {
	switch m {
	case NotConstructed:
		return "not_constructed"
	case TopDown:
		return "top_down"
	case BottomUp:
		return "bottom_up"
	case Insertion:
		return "insertion"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod is the inverse of Method.String for the three construction methods.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "top_down", "top-down":
		return TopDown, nil
	case "bottom_up", "bottom-up":
		return BottomUp, nil
	case "insertion":
		return Insertion, nil
	}
	return NotConstructed, errors.Errorf("unknown construction method %q", s)
}

func (m Method) valid() bool {
	return m == TopDown || m == BottomUp || m == Insertion
}
