package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/cutter/internal/cli"
	"github.com/arthur-debert/cutter/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd(cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})

	header := &doc.GenManHeader{
		Title:   "CUTTER",
		Section: "1",
		Source:  "cutter " + version.Version,
		Manual:  "cutter manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
