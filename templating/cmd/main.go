// Binary bracetpl expands "{{name}}" templates using
// stamp info files, binding files and explicit variable
// substitutions.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/byte4ever/bracetpl/templating"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func main() {
	var (
		stampInfoFile arrayFlags
		bindingsFile  arrayFlags
		variable      arrayFlags
		imports       arrayFlags
		output        string
		tpl           string
		executable    bool
		strict        bool
	)

	flag.Var(
		&stampInfoFile,
		"stamp_info_file",
		"Stamp info file path (repeatable)",
	)

	flag.Var(
		&bindingsFile,
		"bindings_file",
		"YAML or JSON bindings file path (repeatable)",
	)

	flag.Var(
		&variable,
		"variable",
		"Variable in NAME=VALUE format (repeatable)",
	)

	flag.Var(
		&imports,
		"imports",
		"Import in NAME=filename format (repeatable)",
	)

	flag.StringVar(
		&output, "output", "",
		"Output file path (stdout if empty)",
	)

	flag.StringVar(
		&tpl, "template", "",
		"Input template file path (stdin if empty)",
	)

	flag.BoolVar(
		&executable, "executable", false,
		"Set executable bit on output file",
	)

	flag.BoolVar(
		&strict, "strict", false,
		"Fail when the template references an unbound variable",
	)

	flag.Parse()

	en := templating.Engine{
		StampInfoFiles: stampInfoFile,
		BindingFiles:   bindingsFile,
		Strict:         strict,
	}

	if err := en.Expand(
		tpl, output, variable, imports, executable,
	); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
