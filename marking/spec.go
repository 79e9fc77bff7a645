// seehuhn.de/go/roadmark - road marking geometry from traced centerlines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package marking

import (
	"fmt"
)

// Kind selects the style of a road marking.
type Kind int

const (
	KindSolid Kind = iota
	KindDashed
	KindCrosswalk
	KindGuide
)

var kindNames = []string{"solid", "dashed", "crosswalk", "guide"}

func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind converts the text form of a kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown marking kind %q", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid marking kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Spec describes a marking style together with its parameters.
// The concrete types are SolidLine, DashedLine, Crosswalk and GuideLine.
type Spec interface {
	Kind() Kind
	isSpec()
}

// Default dimensions, in metres.
const (
	DefaultCrossingWidth = 20.0
	DefaultArrowLength   = 5.0
)

// SolidLine is a continuous lane line.
type SolidLine struct {
	Width float64
}

func (SolidLine) isSpec()    {}
func (SolidLine) Kind() Kind { return KindSolid }

// DashedLine is a broken lane line.
type DashedLine struct {
	Width   float64
	Spacing float64 // gap between dashes
}

func (DashedLine) isSpec()    {}
func (DashedLine) Kind() Kind { return KindDashed }

// Crosswalk is a sequence of stripes across the road.
type Crosswalk struct {
	Width         float64 // stripe width, along the road
	Spacing       float64 // gap between stripes
	CrossingWidth float64 // stripe length, across the road
}

func (Crosswalk) isSpec()    {}
func (Crosswalk) Kind() Kind { return KindCrosswalk }

// GuideLine is an arrow at a junction and a dashed line elsewhere.
type GuideLine struct {
	Width       float64
	ArrowLength float64
}

func (GuideLine) isSpec()    {}
func (GuideLine) Kind() Kind { return KindGuide }

// NewSpec returns the spec for the given kind, using default values for
// the parameters which are not given.  Unknown kinds give a solid line.
func NewSpec(kind Kind, width, spacing float64) Spec {
	switch kind {
	case KindDashed:
		return DashedLine{Width: width, Spacing: spacing}
	case KindCrosswalk:
		return Crosswalk{Width: width, Spacing: spacing, CrossingWidth: DefaultCrossingWidth}
	case KindGuide:
		return GuideLine{Width: width, ArrowLength: DefaultArrowLength}
	default:
		return SolidLine{Width: width}
	}
}
