// Package scheme names the defensive schemes and the court regions zone defenses are built from.
package scheme

import (
	"errors"
	"fmt"
)

// Scheme is a defensive scheme.
type Scheme string

const (
	Man       Scheme = "man"
	Zone23    Scheme = "zone-2-3"
	Zone32    Scheme = "zone-3-2"
	Zone131   Scheme = "zone-1-3-1"
	Switch    Scheme = "switch"
	FullCourt Scheme = "full-court"
)

// ErrUnknown reports a scheme name that is not supported.
var ErrUnknown = errors.New("unknown defensive scheme")

// All lists the supported schemes.
var All = []Scheme{Man, Zone23, Zone32, Zone131, Switch, FullCourt}

// Parse validates a scheme name. An empty name selects man.
func Parse(name string) (Scheme, error) {
	if name == "" {
		return Man, nil
	}
	s := Scheme(name)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return s, nil
}

// Valid reports whether s is supported.
func (s Scheme) Valid() bool {
	for _, known := range All {
		if s == known {
			return true
		}
	}
	return false
}

// IsZone reports whether s guards regions instead of players.
func (s Scheme) IsZone() bool {
	return s == Zone23 || s == Zone32 || s == Zone131
}

// Region is a zone responsibility anchored at an offset from the defended basket.
type Region struct {
	Name    string
	Depth   float64
	Lateral float64
}

var zoneRegions = map[Scheme][]Region{
	Zone23: {
		{Name: "left-wing", Depth: 15, Lateral: -8},
		{Name: "right-wing", Depth: 15, Lateral: 8},
		{Name: "left-block", Depth: 4, Lateral: -13},
		{Name: "middle", Depth: 3, Lateral: 0},
		{Name: "right-block", Depth: 4, Lateral: 13},
	},
	Zone32: {
		{Name: "top", Depth: 22, Lateral: 0},
		{Name: "left-wing", Depth: 16, Lateral: -14},
		{Name: "right-wing", Depth: 16, Lateral: 14},
		{Name: "left-block", Depth: 5, Lateral: -7},
		{Name: "right-block", Depth: 5, Lateral: 7},
	},
	Zone131: {
		{Name: "top", Depth: 24, Lateral: 0},
		{Name: "left-wing", Depth: 14, Lateral: -15},
		{Name: "high-post", Depth: 12, Lateral: 0},
		{Name: "right-wing", Depth: 14, Lateral: 15},
		{Name: "baseline", Depth: 3, Lateral: 0},
	},
}

// Regions returns the ordered zone responsibilities of s, or nil when s is not a zone.
func (s Scheme) Regions() []Region {
	regions := zoneRegions[s]
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}
