// Copyright 2016 Thijs van Dijk. All rights reserved.
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

/*
	Package mapfile reads and writes the line-oriented .map format understood
	by the engine's map loader.

	A map file is a sequence of record blocks. Each block describes one placed
	entity and is terminated by an EndObject line and a blank line:
		Object cube.mesh
		Pos 0 0 0
		Orent 0 0 0 1
		PhysicShape STATIC 0
		EndObject

	All values are kept as opaque strings; nothing is ever parsed as a number.
*/
package mapfile

import (
	"fmt"
	"strings"
)

// A Kind distinguishes the two kinds of record blocks
type Kind int

const (
	// Object is a mesh entity with an orientation and a physics shape
	Object Kind = iota
	// Light is a light source. Lights carry only a position.
	Light
)

func (k Kind) String() string {
	if k == Light {
		return "Light"
	}
	return "Object"
}

// MarshalText lets Kind values appear by name in JSON dumps
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Physics shapes understood by the map loader
const (
	ShapeStatic   = "STATIC"
	ShapeConvex   = "CONVEX"
	ShapeBox      = "BOX"
	ShapeCylinder = "CYLINDER"
	ShapeCapsule  = "CAPSULE"
)

// ValidShape reports whether the map loader accepts s as a physics shape
func ValidShape(s string) bool {
	switch s {
	case ShapeStatic, ShapeConvex, ShapeBox, ShapeCylinder, ShapeCapsule:
		return true
	}
	return false
}

// A Record represents one block in a map file
type Record struct {
	Kind Kind

	// The power scale for lights, or the mesh file for objects
	Value string

	Position [3]string

	// Orientation as a quaternion in qx, qy, qz, qw order. Unused for lights.
	Orientation [4]string `json:",omitempty"`

	// Scale is either nil or exactly three values
	Scale []string `json:",omitempty"`

	// Physics shape and mass. Empty values are written as STATIC and 0.
	Shape string `json:",omitempty"`
	Mass  string `json:",omitempty"`
}

func (r Record) shape() string {
	if r.Shape == "" {
		return ShapeStatic
	}
	return r.Shape
}

func (r Record) mass() string {
	if r.Mass == "" {
		return "0"
	}
	return r.Mass
}

// Lines returns the text lines for this record, including the blank
// separator line at the end.
func (r Record) Lines() []string {
	rv := make([]string, 0, 7)

	if r.Kind == Light {
		rv = append(rv, "Light "+r.Value)
	} else {
		rv = append(rv, "Object "+r.Value)
	}

	rv = append(rv, valuesLine("Pos", r.Position[:]))

	if r.Kind != Light {
		rv = append(rv, valuesLine("Orent", r.Orientation[:]))
		if r.Scale != nil {
			rv = append(rv, valuesLine("Scale", r.Scale))
		}
		rv = append(rv, fmt.Sprintf("PhysicShape %s %s", r.shape(), r.mass()))
	}

	rv = append(rv, "EndObject", "")
	return rv
}

// valuesLine formats a keyword followed by its values. Every value,
// including the last one, is followed by a single space.
func valuesLine(keyword string, values []string) string {
	var b strings.Builder
	b.WriteString(keyword)
	b.WriteByte(' ')
	for _, v := range values {
		b.WriteString(v)
		b.WriteByte(' ')
	}
	return b.String()
}
