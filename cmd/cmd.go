// Package cmd is the thin demonstration entrypoint for slangcore: it wires
// config, compilation, and diag together into a runnable command-line tool,
// mirroring the teacher's cmd.Execute() shape (src/cmd/execute.go) with
// stdlib flag in place of the teacher's olive CLI library (see DESIGN.md for
// why olive was dropped). This core owns no lexer or parser (spec.md §1),
// so input is the {kind,text,op,children} JSON tree format syntax.DecodeJSON
// understands -- a stand-in for whatever real front end eventually produces
// *syntax.Node graphs.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"slangcore/compilation"
	"slangcore/config"
	"slangcore/diag"
	"slangcore/syntax"
)

// Execute runs the slangcore demo CLI against os.Args.
func Execute() {
	configPath := flag.String("config", "", "path to a slangcore.toml configuration file")
	dumpSymbols := flag.Bool("dump-symbols", false, "print the elaborated design as JSON instead of just diagnostics")
	top := flag.String("top", "", "-top NAME adds one explicit top module (unset: auto-detect)")
	flag.Parse()

	opts := config.DefaultOptions()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			diag.PrintError("Config Error", err)
			os.Exit(1)
		}
		opts, err = config.LoadOptionsFromTOML(data)
		if err != nil {
			diag.PrintError("Config Error", err)
			os.Exit(1)
		}
	}
	if *top != "" {
		opts.TopModules = append(opts.TopModules, *top)
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		diag.PrintError("Usage Error", fmt.Errorf("at least one JSON syntax tree file is required"))
		os.Exit(1)
	}

	c := compilation.NewCompilation(opts)
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			diag.PrintError("Input Error", err)
			os.Exit(1)
		}
		tree, err := syntax.DecodeJSON(data)
		if err != nil {
			diag.PrintError("Input Error", err)
			os.Exit(1)
		}
		c.AddSyntaxTree(tree)
	}

	diags := c.GetSemanticDiagnostics()
	diag.RenderAll(diags, nil)

	if *dumpSymbols {
		out, err := c.SerializeRoot()
		if err != nil {
			diag.PrintError("Serialization Error", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	}

	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			os.Exit(1)
		}
	}
}
