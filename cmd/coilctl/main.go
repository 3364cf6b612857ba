// Command coilctl is a multi-subcommand toolbelt around the coil
// evaluator: dump (native nested or flattened coil text), diff
// (structural diff of two evaluated trees), and convert (evaluated tree
// to YAML, TOML, or Java-properties text). Where coildump matches a
// minimal CLI contract exactly, coilctl is the richer companion a real
// deployment would also want.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/coilconf/coil/pkg/coil"
	"github.com/kylelemons/godebug/pretty"
	"github.com/magiconair/properties"
	toml "github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

var (
	searchPaths []string
	permissive  bool
)

func main() {
	root := &cobra.Command{
		Use:   "coilctl",
		Short: "Inspect and convert coil configuration documents",
	}
	root.PersistentFlags().StringSliceVar(&searchPaths, "path", nil, "additional @package search roots (repeatable)")
	root.PersistentFlags().BoolVar(&permissive, "permissive", false, "tolerate double-adds and double-deletes")

	root.AddCommand(newDumpCmd(), newDiffCmd(), newConvertCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newDumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Parse and fully expand a coil document, printing it back as coil text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := parseArg(args[0])
			if err != nil {
				return err
			}
			var out string
			switch format {
			case "nested", "":
				out, err = coil.SerializeNested(root)
			case "flat":
				out, err = coil.SerializeFlat(root)
			default:
				return fmt.Errorf("unknown --format %q, want nested or flat", format)
			}
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "nested", "nested or flat")
	return cmd
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff FILE1 FILE2",
		Short: "Show a structural diff between two evaluated coil documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := parseArg(args[0])
			if err != nil {
				return err
			}
			right, err := parseArg(args[1])
			if err != nil {
				return err
			}
			diff := pretty.Compare(coil.ToGo(left), coil.ToGo(right))
			if diff == "" {
				fmt.Println("no differences")
				return nil
			}
			fmt.Println(diff)
			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Render an evaluated coil document as YAML, TOML, or Java properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := parseArg(args[0])
			if err != nil {
				return err
			}
			switch to {
			case "yaml":
				out, err := yaml.Marshal(coil.ToGo(root))
				if err != nil {
					return err
				}
				os.Stdout.Write(out)
			case "toml":
				tree, err := toml.TreeFromMap(coil.ToGo(root).(map[string]interface{}))
				if err != nil {
					return err
				}
				fmt.Print(tree.String())
			case "properties":
				p := properties.LoadMap(coil.Flatten(root))
				keys := p.Keys()
				sort.Strings(keys)
				for _, k := range keys {
					v, _ := p.Get(k)
					fmt.Printf("%s=%s\n", k, propertiesEscape(v))
				}
			default:
				return fmt.Errorf("unknown --to %q, want yaml, toml, or properties", to)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "yaml", "yaml, toml, or properties")
	return cmd
}

// propertiesEscape escapes backslashes and embedded newlines the way a
// .properties value must, since coil.Flatten's stringified leaves may
// contain either.
func propertiesEscape(v string) string {
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "\n", "\\n")
	return v
}

func parseArg(path string) (*coil.Struct, error) {
	roots := append([]string{"."}, searchPaths...)
	opts := &coil.Options{
		Permissive: permissive,
		Loader:     coil.NewFileSystemLoader(roots, "__init__"),
	}
	// ParseFile uses the file's own directory as the base for relative
	// @file lookups, not the process's cwd.
	return coil.ParseFile(path, opts)
}
