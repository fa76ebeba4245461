package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/thijzert/dotmap/lib/archive"
	"github.com/thijzert/dotmap/lib/mapfile"
)

var (
	input_file = flag.String("input_file", "", "Input map file")
)

func main() {
	flag.Parse()

	if err := dump(os.Stdout, *input_file); err != nil {
		log.Fatal(err)
	}
}

// dump prints the records in a map file as indented JSON
func dump(w io.Writer, filename string) error {
	f, err := archive.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := mapfile.NewReader(f).ReadAll()
	if err != nil {
		return err
	}

	js, err := json.MarshalIndent(records, "", "   ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", js)
	return err
}
