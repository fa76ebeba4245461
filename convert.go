package dotmap

import (
	"io"

	"github.com/pkg/errors"
	"github.com/thijzert/dotmap/lib/mapfile"
)

// Options tweak the generated map. The zero value produces the plain format:
// static physics with zero mass, and no scale lines.
type Options struct {
	// Physics shape for objects. Must be one the map loader understands.
	Shape string

	// Mass for objects, copied verbatim
	Mass string

	// Also emit each object's scale, taken from the scale slot
	Scale bool
}

// Validate checks the options before any conversion takes place
func (o Options) Validate() error {
	if o.Shape != "" && !mapfile.ValidShape(o.Shape) {
		return errors.Errorf("unknown physics shape '%s'", o.Shape)
	}
	return nil
}

// Classify determines whether a node is a light or an object. Only a kind
// element tagged exactly "light", outside any namespace, makes a light.
func (n Node) Classify() (mapfile.Kind, error) {
	el, err := n.Child(SlotKind)
	if err != nil {
		return mapfile.Object, err
	}
	if el.XMLName.Space == "" && el.Tag() == "light" {
		return mapfile.Light, nil
	}
	return mapfile.Object, nil
}

// Record converts a single node
func (n Node) Record(opts Options) (mapfile.Record, error) {
	kind, err := n.Classify()
	if err != nil {
		return mapfile.Record{}, err
	}
	rv := mapfile.Record{Kind: kind}

	header := "meshFile"
	if kind == mapfile.Light {
		header = "powerScale"
	}
	vals, err := n.Values(SlotKind, header)
	if err != nil {
		return rv, err
	}
	rv.Value = vals[0]

	vals, err = n.Values(SlotPosition, "x", "y", "z")
	if err != nil {
		return rv, err
	}
	copy(rv.Position[:], vals)

	if kind == mapfile.Light {
		return rv, nil
	}

	vals, err = n.Values(SlotOrientation, "qx", "qy", "qz", "qw")
	if err != nil {
		return rv, err
	}
	copy(rv.Orientation[:], vals)

	if opts.Scale {
		rv.Scale, err = n.Values(SlotScale, "x", "y", "z")
		if err != nil {
			return rv, err
		}
	}

	rv.Shape = opts.Shape
	rv.Mass = opts.Mass
	return rv, nil
}

// Records converts every node in the scene, in document order. The first
// malformed node aborts the conversion.
func (s *Scene) Records(opts Options) ([]mapfile.Record, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	nodes, err := s.Nodes()
	if err != nil {
		return nil, err
	}

	rv := make([]mapfile.Record, 0, len(nodes))
	for _, n := range nodes {
		r, err := n.Record(opts)
		if err != nil {
			return nil, err
		}
		rv = append(rv, r)
	}
	return rv, nil
}

// Convert reads a scene from r and writes the map to w. Nothing is written
// unless every node converts successfully.
func Convert(w io.Writer, r io.Reader, opts Options) error {
	sc, err := ReadScene(r)
	if err != nil {
		return err
	}

	records, err := sc.Records(opts)
	if err != nil {
		return err
	}

	return mapfile.NewWriter(w).WriteAll(records)
}
