package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/thijzert/dotmap"
	"github.com/thijzert/dotmap/lib/mapfile"
	"github.com/thijzert/go-rcfile"
	tc "github.com/thijzert/go-termcolours"
)

var Config = struct {
	OutputFile string
	Verbose    bool
	Colour     bool
	Scale      bool
	Physics    struct {
		Shape, Mass string
	}
}{}

const usageMessage = "Please specify in argument a .scene file !"

var createFile = os.Create

const (
	exitOK      = 0
	exitFailure = 1
)

func init() {
	flag.StringVar(&Config.OutputFile, "o", "", "Write the map to this file instead of standard output")
	flag.BoolVar(&Config.Verbose, "v", false, "Print a summary on standard error")
	flag.BoolVar(&Config.Colour, "colour", true, "Use colours in error messages")
	flag.BoolVar(&Config.Scale, "scale", false, "Emit a Scale line for each object")

	flag.StringVar(&Config.Physics.Shape, "physics.shape", mapfile.ShapeStatic, "Physics shape for objects (STATIC, CONVEX, BOX, CYLINDER or CAPSULE)")
	flag.StringVar(&Config.Physics.Mass, "physics.mass", "0", "Mass for objects")
}

func main() {
	// Parse config file first, and override with anything on the commandline
	rcfile.Parse()
	flag.Parse()

	os.Exit(run(flag.Args(), os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", 0)

	if len(args) == 0 {
		fmt.Fprintln(stdout, usageMessage)
		return exitFailure
	}

	opts := dotmap.Options{
		Shape: Config.Physics.Shape,
		Mass:  Config.Physics.Mass,
		Scale: Config.Scale,
	}

	scene, err := dotmap.ImportScene(args[0])
	if err != nil {
		return croak(logger, args[0], err)
	}

	records, err := scene.Records(opts)
	if err != nil {
		return croak(logger, args[0], err)
	}

	// The output file is only created once the whole scene has converted
	if Config.OutputFile == "" {
		err = mapfile.NewWriter(stdout).WriteAll(records)
	} else {
		err = writeMapFile(Config.OutputFile, records)
	}
	if err != nil {
		return croak(logger, Config.OutputFile, err)
	}

	if Config.Verbose {
		lights := 0
		for _, r := range records {
			if r.Kind == mapfile.Light {
				lights++
			}
		}
		logger.Printf("%s: converted %d nodes (%d lights, %d objects)", args[0], len(records), lights, len(records)-lights)
	}

	return exitOK
}

// writeMapFile writes the records to filename. A file that could not be
// written completely is removed again.
func writeMapFile(filename string, records []mapfile.Record) error {
	f, err := createFile(filename)
	if err != nil {
		return err
	}

	err = mapfile.NewWriter(f).WriteAll(records)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filename)
	}
	return err
}

func croak(logger *log.Logger, filename string, e error) int {
	prefix := "error:"
	if Config.Colour {
		prefix = tc.Red(prefix)
	}
	if filename == "" {
		logger.Printf("%s %s", prefix, e)
	} else {
		logger.Printf("%s %s: %s", prefix, filename, e)
	}
	return exitFailure
}
