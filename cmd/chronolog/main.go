package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chronolog-dev/chronolog/internal/cli"
	"github.com/chronolog-dev/chronolog/pkg/log"
)

func init() {
	must(log.SetLogFormat("text"))
	log.SetLogLevel("warn")
}

const (
	cmdName = "chronolog"

	shortDesc = "The chronolog Command Line Interface (CLI)."
	longDesc  = `chronolog manages chronological release-notes documents.

It parses the dated, categorized changelog format used by scientific Python
libraries (a title, a table of contents, and one underlined heading per
release), checks the properties the format promises, and renders or rewrites
documents in other forms.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
