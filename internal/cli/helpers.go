package cli

import (
	"errors"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
	"github.com/chronolog-dev/chronolog/pkg/lint"
	"github.com/chronolog-dev/chronolog/pkg/noteio"
	"github.com/chronolog-dev/chronolog/pkg/symbols"
)

var ErrInvalidArgument = errors.New("invalid argument")

// defaultNotesFile is used when a command gets no file argument.
const defaultNotesFile = "changes.rst"

func notesArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return defaultNotesFile
}

func notesArgs(args []string) []string {
	if len(args) > 0 {
		return args
	}

	return []string{defaultNotesFile}
}

func parseNotesFile(path string) (*changelog.Changelog, error) {
	f, _, err := noteio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return changelog.Parse(f, path)
}

// lintSetup builds a linter from the config file and any symbol sources
// given on the command line. An explicit --symbols list makes unresolved
// cross-references errors instead of warnings.
func lintSetup(configPath string, symbolPaths []string) (*lint.Linter, error) {
	cfg, err := lint.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	strict := len(symbolPaths) > 0
	symbolPaths = append(symbolPaths, cfg.Symbols...)

	var table *symbols.Table
	if len(symbolPaths) > 0 {
		table, err = symbols.Load(symbolPaths...)
		if err != nil {
			return nil, err
		}
	}

	return lint.New(cfg.BuildRules(table, strict)...), nil
}
