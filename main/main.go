// Command fstruct packs, unpacks and sizes struct format strings, and
// prints the offset tables of layouts declared in YAML.
//
//	fstruct calcsize "<3sbhilHIL"
//	fstruct pack "<hb?" 513 7 true
//	fstruct unpack "<hb?" 01020701
//	fstruct layout --file layouts.yaml --name window
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rawbytedev/fstruct"
	"github.com/rawbytedev/fstruct/pkg/format"
	"github.com/rawbytedev/fstruct/pkg/layout"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string, out io.Writer) error {
	var verbose bool
	var file, name string

	flagSet := pflag.NewFlagSet("fstruct", pflag.ContinueOnError)
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flagSet.StringVarP(&file, "file", "f", "", "YAML layout declarations (layout command)")
	flagSet.StringVarP(&name, "name", "n", "", "print only this layout (layout command)")
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(true)

	if err := flagSet.Parse(argv); err != nil {
		if err == pflag.ErrHelp {
			printHelp(out, flagSet)
			return nil
		}
		return err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer logger.Sync() //nolint:errcheck
	fstruct.SetLogger(logger)
	defer fstruct.SetLogger(nil)

	args := flagSet.Args()
	if len(args) == 0 {
		printHelp(out, flagSet)
		return errors.New("missing command")
	}
	cmd, args := args[0], args[1:]
	logger.Debug("running command", zap.String("command", cmd), zap.Strings("args", args))

	switch cmd {
	case "calcsize":
		return calcSize(out, args)
	case "pack":
		return pack(out, args)
	case "unpack":
		return unpack(out, args)
	case "layout":
		return printLayouts(out, file, name)
	default:
		return errors.Errorf("unknown command %q", cmd)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func calcSize(out io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fstruct calcsize FORMAT")
	}
	n, err := fstruct.CalcSize(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, n)
	return nil
}

func pack(out io.Writer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: fstruct pack FORMAT VALUE...")
	}
	s, err := fstruct.Compile(args[0])
	if err != nil {
		return err
	}
	values, err := parseValues(s.Descriptor(), args[1:])
	if err != nil {
		return err
	}
	data, err := s.Pack(values...)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hex.EncodeToString(data))
	return nil
}

// parseValues converts command-line words to the Go type each non-pad
// field expects.
func parseValues(d *format.Descriptor, words []string) ([]any, error) {
	values := make([]any, 0, len(words))
	i := 0
	for _, f := range d.Fields {
		if f.Code == format.Pad {
			continue
		}
		if i >= len(words) {
			break
		}
		w := words[i]
		var (
			v   any
			err error
		)
		switch {
		case f.Code.IsInteger() && f.Code.Signed():
			v, err = strconv.ParseInt(w, 0, 64)
		case f.Code.IsInteger():
			v, err = strconv.ParseUint(w, 0, 64)
			if err != nil {
				// negative input wraps like any other integer
				if n, ierr := strconv.ParseInt(w, 0, 64); ierr == nil {
					v, err = n, nil
				}
			}
		case f.Code.IsFloat():
			v, err = strconv.ParseFloat(w, 64)
		case f.Code == format.Bool:
			v, err = strconv.ParseBool(w)
		default:
			v = w
		}
		if err != nil {
			return nil, errors.Wrapf(err, "value %d for %s", i, f)
		}
		values = append(values, v)
		i++
	}
	return values, nil
}

func unpack(out io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: fstruct unpack FORMAT HEX")
	}
	data, err := hex.DecodeString(args[1])
	if err != nil {
		return errors.Wrap(err, "decode hex input")
	}
	values, err := fstruct.Unpack(args[0], data)
	if err != nil {
		return err
	}
	for _, v := range values {
		if s, ok := v.(string); ok {
			fmt.Fprintln(out, strconv.Quote(s))
			continue
		}
		fmt.Fprintln(out, v)
	}
	return nil
}

func printLayouts(out io.Writer, file, name string) error {
	if file == "" {
		return errors.New("usage: fstruct layout --file FILE [--name NAME]")
	}
	layouts, err := layout.LoadFile(file)
	if err != nil {
		return err
	}
	if name != "" {
		l, ok := layouts[name]
		if !ok {
			return errors.Errorf("layout %q not declared in %s", name, file)
		}
		fmt.Fprint(out, l)
		return nil
	}
	names := make([]string, 0, len(layouts))
	for n := range layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	for i, n := range names {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s:\n%s", n, layouts[n])
	}
	return nil
}

func printHelp(out io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(out, `fstruct packs and unpacks binary records described by struct format strings.

Usage:
  fstruct calcsize FORMAT
  fstruct pack FORMAT VALUE...
  fstruct unpack FORMAT HEX
  fstruct layout --file FILE [--name NAME]

Put "--" before values that start with a minus sign.

Flags:
%s`, flagSet.FlagUsages())
}
