// Command coildump parses a coil document, fully expands it, and writes
// the result to standard output as nested or flattened coil syntax.
//
// Usage: coildump [--path DIR[,DIR...]] [--format nested|flat] [--permissive] [FILE]
//
// If FILE is omitted, the document is read from standard input.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coilconf/coil/pkg/coil"
	"github.com/pborman/getopt"
)

func main() {
	os.Exit(run())
}

func run() int {
	var format string
	var paths []string
	var permissive bool
	var help bool

	getopt.ListVarLong(&paths, "path", 0, "comma separated list of directories to search for @package targets", "DIR[,DIR...]")
	getopt.StringVarLong(&format, "format", 0, "output format: nested or flat", "FORMAT")
	getopt.BoolVarLong(&permissive, "permissive", 0, "tolerate double-adds and double-deletes")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FILE]")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		return 1
	}
	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		return 0
	}

	if format == "" {
		format = "nested"
	}
	if format != "nested" && format != "flat" {
		fmt.Fprintf(os.Stderr, "%s: invalid format, want nested or flat\n", format)
		return 1
	}

	args := getopt.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "coildump: at most one FILE may be given")
		return 1
	}

	roots := []string{"."}
	for _, p := range paths {
		roots = append(roots, strings.Split(p, ",")...)
	}

	opts := &coil.Options{
		Permissive: permissive,
		Loader:     coil.NewFileSystemLoader(roots, "__init__"),
	}

	var root *coil.Struct
	var err error
	if len(args) == 1 {
		// ParseFile uses the file's own directory as the base for
		// relative @file lookups, not the process's cwd.
		root, err = coil.ParseFile(args[0], opts)
	} else {
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			fmt.Fprintln(os.Stderr, readErr)
			return 1
		}
		root, err = coil.Parse(coil.NewLineSourceFromString(string(data)), "<stdin>", opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var out string
	if format == "flat" {
		out, err = coil.SerializeFlat(root)
	} else {
		out, err = coil.SerializeNested(root)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(out)
	return 0
}
