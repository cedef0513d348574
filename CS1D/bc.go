package CS1D

import (
	"fmt"
	"strings"
)

// BCTag enumerates the boundary condition families supported at either
// end of an axis. Each family claims a fixed number of edge spline
// nodes; the folding matrix in boundary.go eliminates exactly that many
// columns from the open operator.
type BCTag uint8

const (
	// Homogeneous0 claims no nodes: the edge coefficients remain free
	// and the solution floats at the boundary.
	Homogeneous0 BCTag = iota
	// Robin1 enforces Alpha*u + Beta*u' = 0 through one claimed node.
	Robin1
	// Robin2 enforces the first-order Robin relation on both u and u',
	// claiming two nodes.
	Robin2
	// Homogeneous3 clamps u = u' = u'' = 0, claiming three nodes.
	Homogeneous3
	// Periodic identifies the edge nodes with their images at the far
	// end of the axis. It claims one node on the left and two on the
	// right; both ends must carry the tag.
	Periodic
)

var bcTagNames = map[BCTag]string{
	Homogeneous0: "Homogeneous0",
	Robin1:       "Robin1",
	Robin2:       "Robin2",
	Homogeneous3: "Homogeneous3",
	Periodic:     "Periodic",
}

// BCNameMap resolves lowercased external names, eg. from YAML input
// files, to tags.
var BCNameMap = map[string]BCTag{
	"homogeneous0": Homogeneous0,
	"robin1":       Robin1,
	"robin2":       Robin2,
	"homogeneous3": Homogeneous3,
	"periodic":     Periodic,
}

func (t BCTag) String() string {
	if name, ok := bcTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("BCTag(%d)", uint8(t))
}

// ParseBCName maps a case-insensitive boundary condition name to its
// tag.
func ParseBCName(name string) (t BCTag, err error) {
	var ok bool
	if t, ok = BCNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("%w: unknown boundary condition name %q", ErrConfiguration, name)
	}
	return
}

// BC is one end's boundary condition. Alpha and Beta are read only by
// the Robin tags; zero values are fine elsewhere. The struct is
// comparable so that AxisParameters can key a cache map.
type BC struct {
	Tag         BCTag
	Alpha, Beta float64
}

func (bc BC) String() string {
	switch bc.Tag {
	case Robin1, Robin2:
		return fmt.Sprintf("%s(alpha=%g, beta=%g)", bc.Tag, bc.Alpha, bc.Beta)
	default:
		return bc.Tag.String()
	}
}

// rank reports how many spline nodes the condition claims on its side.
// Periodic is asymmetric: the left end folds one node, the right end
// folds two.
func (bc BC) rank(rightEnd bool) int {
	switch bc.Tag {
	case Homogeneous0:
		return 0
	case Robin1:
		return 1
	case Robin2:
		return 2
	case Homogeneous3:
		return 3
	case Periodic:
		if rightEnd {
			return 2
		}
		return 1
	}
	return 0
}

func (bc BC) validate() error {
	switch bc.Tag {
	case Homogeneous0, Homogeneous3, Periodic:
		return nil
	case Robin1, Robin2:
		if bc.Alpha == 0 {
			return fmt.Errorf("%w: %s requires nonzero alpha", ErrConfiguration, bc.Tag)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown boundary condition tag %d", ErrConfiguration, uint8(bc.Tag))
}
