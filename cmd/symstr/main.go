// Command symstr parses a constraint script (internal/smt2's grammar),
// compiles its assignments and membership assertions (internal/compile),
// and reports the result. It never solves anything — compilation only;
// solving is out of scope per spec.md's Non-goals.
package main

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/gitrdm/symstr/internal/compile"
	"github.com/gitrdm/symstr/internal/smt2"
	"github.com/gitrdm/symstr/pkg/domain"
)

// Options holds the parsed CLI arguments.
type Options struct {
	// ScriptPath is the one positional argument: the path to a
	// constraint script. Every other argument beginning with "-" or
	// "--" is registered as a flag (and so consumed by goflags) or, if
	// unrecognized, simply ignored — this command has no flags whose
	// absence changes behavior.
	ScriptPath string
	Verbose    bool
	Silent     bool
}

// ParseFlags registers the ambient -v/-silent flags via goflags (mirrors
// projectdiscovery-alterx's CLI wiring) and takes the first
// non-flag-shaped argument as the script path.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Compiles a symbolic string-constraint script to symbolic automata/transducers.")

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	for _, arg := range os.Args[1:] {
		if len(arg) > 0 && arg[0] == '-' {
			continue
		}
		opts.ScriptPath = arg
		break
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.ScriptPath == "" {
		gologger.Fatal().Msgf("symstr: no script path given")
	}

	return opts
}

// run reads, parses, and compiles the script at path, logging the
// outcome. It contains every bit of main's logic that doesn't touch
// os.Exit, so tests can exercise it directly.
func run(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		gologger.Error().Msgf("failed to read %v got %v", path, err)
		return err
	}

	script, err := smt2.Parse(string(src))
	if err != nil {
		gologger.Error().Msgf("syntax error in %v: %v", path, err)
		return err
	}

	result, err := compile.Compile[domain.Wrapped](script)
	if err != nil {
		gologger.Error().Msgf("failed to compile %v: %v", path, err)
		return err
	}

	gologger.Info().Msgf("%d assignments, %d memberships compiled", len(result.Vars), len(result.Memberships))
	return nil
}

func main() {
	opts := ParseFlags()
	if err := run(opts.ScriptPath); err != nil {
		os.Exit(1)
	}
}
