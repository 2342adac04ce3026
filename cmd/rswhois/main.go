package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // registry's time zone must resolve even in scratch containers

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	app := &cobra.Command{
		Use:     os.Args[0],
		Short:   "WHOIS records of .rs domains, parsed",
		Version: version,
	}

	commands := []*cobra.Command{
		parseEntry(),
		domainsEntry(),
		checkEntry(),
		serveEntry(),
	}

	for _, cmd := range commands {
		app.AddCommand(cmd)
	}

	if err := app.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
