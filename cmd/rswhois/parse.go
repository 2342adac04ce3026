package main

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/function61/gokit/jsonfile"
	"github.com/function61/gokit/osutil"
	"github.com/function61/rswhois/pkg/domainwhois/domainwhoisrnids"
	"github.com/spf13/cobra"
)

func parseEntry() *cobra.Command {
	opts := parserOptions{}

	cmd := &cobra.Command{
		Use:   "parse <path to response | ->",
		Short: "Parses a saved WHOIS response into JSON",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(parseResponseFile(args[0], opts.parser(), os.Stdout))
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func parseResponseFile(path string, parser *domainwhoisrnids.Parser, output io.Writer) error {
	var body []byte
	var err error
	if path == "-" {
		body, err = ioutil.ReadAll(os.Stdin)
	} else {
		body, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return err
	}

	record, err := parser.Parse(string(body))
	if err != nil {
		return err
	}

	return jsonfile.Marshal(output, record)
}

// parser knobs shared by commands that parse
type parserOptions struct {
	extraStatuses      []string
	allowUnknownFields bool
}

func (p *parserOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&p.extraStatuses, "status", "", p.extraStatuses, "Additional registry status code to accept (repeatable)")
	cmd.Flags().BoolVarP(&p.allowUnknownFields, "allow-unknown", "", p.allowUnknownFields, "Skip fields the parser doesn't know instead of failing")
}

func (p *parserOptions) parser(moreStatuses ...string) *domainwhoisrnids.Parser {
	opts := []domainwhoisrnids.Option{
		domainwhoisrnids.WithStatuses(append(append([]string{}, p.extraStatuses...), moreStatuses...)...),
	}

	if p.allowUnknownFields {
		opts = append(opts, domainwhoisrnids.AllowUnknownFields())
	}

	return domainwhoisrnids.NewParser(opts...)
}
