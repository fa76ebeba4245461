package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnterminated is returned when the input ends inside a record block
var ErrUnterminated = errors.New("record not terminated by EndObject")

// A SyntaxError describes a keyword with too few values
type SyntaxError struct {
	Line    int
	Keyword string
	Want    int
	Got     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s needs %d values, got %d", e.Line, e.Keyword, e.Want, e.Got)
}

// A Reader reads record blocks the way the engine's map loader does.
// Words are whitespace separated, and a keyword's values must be on the
// same line as the keyword. Unknown words are skipped.
//
// Because values are split on whitespace, a value that contains whitespace
// (a mesh file named "My Mesh.mesh", say) does not survive a round trip.
// The loader has the same limitation; Writer still copies such values
// verbatim.
type Reader struct {
	source *bufio.Scanner
	line   int
}

// NewReader creates a Reader that reads from r
func NewReader(r io.Reader) *Reader {
	return &Reader{
		source: bufio.NewScanner(r),
	}
}

// ReadAll reads every record block until EOF.
// An Object or Light keyword inside an unfinished block closes that block
// first, mirroring the loader.
func (r *Reader) ReadAll() ([]Record, error) {
	var rv []Record
	var cur *Record

	for r.source.Scan() {
		r.line++
		words := strings.Fields(r.source.Text())

		for i := 0; i < len(words); i++ {
			word := words[i]
			args := words[i+1:]

			switch word {
			case "Object", "Light":
				vals, err := r.take(word, args, 1)
				if err != nil {
					return rv, err
				}
				if cur != nil {
					rv = append(rv, *cur)
				}
				cur = &Record{Kind: Object, Value: vals[0]}
				if word == "Light" {
					cur.Kind = Light
				}
				i++

			case "Pos":
				vals, err := r.take(word, args, 3)
				if err != nil {
					return rv, err
				}
				if cur != nil {
					copy(cur.Position[:], vals)
				}
				i += 3

			case "Orient", "Orent":
				vals, err := r.take(word, args, 4)
				if err != nil {
					return rv, err
				}
				if cur != nil {
					copy(cur.Orientation[:], vals)
				}
				i += 4

			case "Scale":
				vals, err := r.take(word, args, 3)
				if err != nil {
					return rv, err
				}
				if cur != nil {
					cur.Scale = append([]string(nil), vals...)
				}
				i += 3

			case "PhysicShape":
				vals, err := r.take(word, args, 2)
				if err != nil {
					return rv, err
				}
				if cur != nil && ValidShape(vals[0]) {
					cur.Shape, cur.Mass = vals[0], vals[1]
				}
				i += 2

			case "EndObject":
				if cur != nil {
					rv = append(rv, *cur)
					cur = nil
				}
			}
		}
	}

	if err := r.source.Err(); err != nil {
		return rv, errors.Wrapf(err, "reading line %d", r.line+1)
	}
	if cur != nil {
		return rv, errors.Wrapf(ErrUnterminated, "%s %s", cur.Kind, cur.Value)
	}
	return rv, nil
}

func (r *Reader) take(keyword string, args []string, n int) ([]string, error) {
	if len(args) < n {
		return nil, &SyntaxError{Line: r.line, Keyword: keyword, Want: n, Got: len(args)}
	}
	return args[:n], nil
}
