package dotmap

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/thijzert/dotmap/lib/archive"
	"golang.org/x/text/encoding/htmlindex"
)

// An Element is a generic XML element. Only element children are kept;
// comments and character data are dropped.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Element  `xml:",any"`
}

// Tag returns the element's local name
func (e Element) Tag() string {
	return e.XMLName.Local
}

// Attr looks up an unqualified attribute. Namespaced attributes, including
// xmlns declarations, never match.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// A Slot names a fixed child position within a scene node
type Slot int

// The child slots of a scene node. Slot 3 is reserved and never read.
const (
	SlotPosition    Slot = 0
	SlotOrientation Slot = 1
	SlotScale       Slot = 2
	SlotKind        Slot = 4
)

func (s Slot) String() string {
	switch s {
	case SlotPosition:
		return "position"
	case SlotOrientation:
		return "orientation"
	case SlotScale:
		return "scale"
	case SlotKind:
		return "kind"
	}
	return "reserved"
}

// A Node is one placed light or mesh object
type Node struct {
	Element

	// Position of this node within the scene's node list
	Index int
}

// Child returns the element in the given slot
func (n Node) Child(s Slot) (Element, error) {
	if int(s) >= len(n.Children) {
		return Element{}, &MissingFieldError{Node: n.Index, Field: s.String()}
	}
	return n.Children[s], nil
}

// Values returns the named attributes of the element in the given slot, in
// the order requested.
func (n Node) Values(s Slot, names ...string) ([]string, error) {
	el, err := n.Child(s)
	if err != nil {
		return nil, err
	}

	rv := make([]string, len(names))
	for i, name := range names {
		v, ok := el.Attr(name)
		if !ok {
			return nil, &MissingFieldError{Node: n.Index, Field: s.String(), Tag: el.Tag(), Attr: name}
		}
		rv[i] = v
	}
	return rv, nil
}

// A Scene is a parsed scene document
type Scene struct {
	Root Element
}

// Nodes returns the scene nodes in document order. The first child of the
// root element is the node container; every element inside it is a node.
func (s *Scene) Nodes() ([]Node, error) {
	if len(s.Root.Children) == 0 {
		return nil, &MissingFieldError{Node: -1, Field: "container"}
	}

	container := s.Root.Children[0]
	rv := make([]Node, len(container.Children))
	for i, el := range container.Children {
		rv[i] = Node{Element: el, Index: i}
	}
	return rv, nil
}

// ReadScene parses a scene document from r. The whole input is read before
// parsing starts.
func ReadScene(r io.Reader) (*Scene, error) {
	ip, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading scene")
	}
	return ParseScene(ip)
}

// ParseScene parses a scene document
func ParseScene(ip []byte) (*Scene, error) {
	dec := xml.NewDecoder(bytes.NewReader(ip))
	dec.CharsetReader = charsetReader

	rv := &Scene{}
	if err := dec.Decode(&rv.Root); err != nil {
		return nil, &ParseError{Err: err}
	}

	// Only whitespace, comments and processing instructions may follow the
	// root element.
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return nil, &ParseError{Err: errors.Errorf("extra element <%s> after the document element", t.Name.Local)}
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, &ParseError{Err: errors.New("extra content after the document element")}
			}
		}
	}

	return rv, nil
}

// ImportScene reads a scene from a file. The path may point into a zip
// archive, e.g. "media.zip/level.scene"
func ImportScene(filename string) (*Scene, error) {
	ip, err := archive.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseScene(ip)
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported charset '%s'", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
