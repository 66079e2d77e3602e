/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command dxltype inspects linetype catalogs: it lists their patterns,
// builds the scaled dash sequence of one of them and converts catalogs
// between YAML, JSON and AutoCAD .lin files.
//
//	dxltype list   -catalog acad.lin
//	dxltype show   -catalog acad.lin -name DASHED -ltscale 2 -celtscale 0.5
//	dxltype export -catalog acad.lin -format yaml
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"dirpx.dev/dxltype/dxcore/catalog"
	"dirpx.dev/dxltype/dxcore/config"
	"dirpx.dev/dxltype/dxcore/document"
	"dirpx.dev/dxltype/dxcore/engine"
	"dirpx.dev/dxltype/dxcore/logging"
	"dirpx.dev/dxltype/dxcore/model/linetype"
	"dirpx.dev/dxltype/dxcore/render"
)

var exitFunc = os.Exit

const usage = `usage: dxltype <command> [flags]

commands:
  list     list the patterns of a catalog
  show     build the scaled sequence of one pattern
  export   re-encode a catalog as yaml, json or lin
`

var errUsage = errors.New("invalid usage")

func main() {
	exitFunc(cli(os.Args[1:], os.Stdout, os.Stderr))
}

func cli(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "list":
		err = runList(args[1:], stdout, stderr)
	case "show":
		err = runShow(args[1:], stdout, stderr)
	case "export":
		err = runExport(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "dxltype: unknown command %q\n", args[0])
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "dxltype %s: %v\n", args[0], err)
		return 2
	default:
		fmt.Fprintf(stderr, "dxltype %s: %v\n", args[0], err)
		return 1
	}
}

// common holds the flags every subcommand takes.
type common struct {
	catalog string
	config  string
	verbose bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.catalog, "catalog", "", "path to a linetype catalog (.yaml, .json or .lin)")
	fs.StringVar(&c.config, "config", "", "optional engine configuration file")
	fs.BoolVar(&c.verbose, "v", false, "log to stderr")
}

// setup installs the logger and loads the configuration and catalog.
func (c *common) setup(stderr io.Writer) (config.Config, catalog.File, error) {
	if c.verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		logging.SetLogger(nil)
	}

	cfg := config.Default()
	if c.config != "" {
		loaded, err := config.Load(c.config)
		if err != nil {
			return config.Config{}, catalog.File{}, err
		}
		cfg = loaded
	}

	if c.catalog == "" {
		return config.Config{}, catalog.File{}, fmt.Errorf("%w: -catalog is required", errUsage)
	}
	data, err := os.ReadFile(c.catalog)
	if err != nil {
		return config.Config{}, catalog.File{}, err
	}
	f, err := catalog.Decode(data, catalog.FormatOf(c.catalog))
	if err != nil {
		return config.Config{}, catalog.File{}, err
	}
	return cfg, f, nil
}

func (c *common) engine(stderr io.Writer) (*engine.Engine, error) {
	cfg, f, err := c.setup(stderr)
	if err != nil {
		return nil, err
	}
	e := engine.New(nil, cfg)
	if err := e.Load(f); err != nil {
		return nil, err
	}
	return e, nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("dxltype "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func runList(args []string, stdout, stderr io.Writer) error {
	var c common
	fs := newFlagSet("list", stderr)
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := c.engine(stderr)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTIER\tLENGTH\tDESCRIPTION")
	for _, p := range e.Registry().Patterns() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\n", p.Name(), p.Tier(), p.TotalLength(), p.Description())
	}
	return tw.Flush()
}

func runShow(args []string, stdout, stderr io.Writer) error {
	var (
		c         common
		name      string
		ltscale   float64
		celtscale float64
		asJSON    bool
	)
	fs := newFlagSet("show", stderr)
	c.register(fs)
	fs.StringVar(&name, "name", "", "linetype name")
	fs.Float64Var(&ltscale, "ltscale", 1, "global linetype scale ($LTSCALE)")
	fs.Float64Var(&celtscale, "celtscale", 1, "entity linetype scale")
	fs.BoolVar(&asJSON, "json", false, "print the reference, resolved linetype and sequence as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: -name is required", errUsage)
	}

	e, err := c.engine(stderr)
	if err != nil {
		return err
	}

	header := document.NewHeader()
	header.LTScale = ltscale
	ref, err := linetype.ParseReference(name)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	entity := document.NewDetachedEntity()
	entity.LinetypeName = ref.String()
	entity.LTScale = celtscale

	seq, eff, err := e.Pattern(header, entity, nil)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(showOutput{Reference: ref, Effective: eff, Sequence: seq})
	}
	fmt.Fprintf(stdout, "%s\nresolved %s, length %g\n", seq, eff, seq.TotalLength())
	return nil
}

// showOutput is the -json form of show.
type showOutput struct {
	Reference linetype.Reference `json:"reference"`
	Effective linetype.Effective `json:"effective"`
	Sequence  render.Sequence    `json:"sequence"`
}

func runExport(args []string, stdout, stderr io.Writer) error {
	var (
		c      common
		format string
		out    string
	)
	fs := newFlagSet("export", stderr)
	c.register(fs)
	fs.StringVar(&format, "format", "yaml", "output format: yaml, json or lin")
	fs.StringVar(&out, "o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fm, err := catalog.ParseFormat(format)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	e, err := c.engine(stderr)
	if err != nil {
		return err
	}
	data, err := catalog.Encode(catalog.Snapshot(e.Registry()), fm)
	if err != nil {
		return err
	}

	if out == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
