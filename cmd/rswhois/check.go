package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/osutil"
	"github.com/function61/rswhois/pkg/domaincheck"
	"github.com/function61/rswhois/pkg/domainmetrics"
	"github.com/function61/rswhois/pkg/domainwhois"
	"github.com/function61/rswhois/pkg/domainwhois/domainwhoisrnids"
	"github.com/scylladb/termtables"
	"github.com/spf13/cobra"
)

func checkEntry() *cobra.Command {
	configPath := domaincheck.DefaultConfigFilename
	pushgateway := ""
	push := false
	debugWhois := false
	opts := parserOptions{}
	lookup := lookupOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that domains are in their desired state in the registry",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			conf, err := domaincheck.ReadConfig(configPath)
			osutil.ExitIfError(err)

			if pushgateway != "" {
				conf.Pushgateway = pushgateway
			}

			fetcher, err := lookup.fetcher()
			osutil.ExitIfError(err)

			metrics := domainmetrics.New()

			results, err := runCheck(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				conf,
				fetcher,
				opts.parser(conf.Statuses...),
				metrics,
				time.Now,
				debugWhois,
				rootLogger)
			osutil.ExitIfError(err)

			osutil.ExitIfError(printCheckResults(results, os.Stdout))

			if push && !debugWhois {
				if conf.Pushgateway == "" {
					osutil.ExitIfError(errors.New("--push requested but no pushgateway configured"))
				}

				osutil.ExitIfError(metrics.Push(conf.Pushgateway))
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", configPath, "Path to desired state config")
	cmd.Flags().StringVarP(&pushgateway, "pushgateway", "", pushgateway, "Prometheus Pushgateway URL (overrides config)")
	cmd.Flags().BoolVarP(&push, "push", "", push, "Push metrics to Pushgateway")
	cmd.Flags().BoolVarP(&debugWhois, "debug-whois", "", debugWhois, "Log raw WHOIS responses (never pushes)")
	opts.addFlags(cmd)
	lookup.addFlags(cmd)

	return cmd
}

type checkResult struct {
	Domain     string
	Record     *domainwhois.Record
	Mismatches []domaincheck.Mismatch
}

func (c checkResult) Consistent() bool {
	return len(c.Mismatches) == 0
}

// a domain failing to resolve or parse fails the whole check, so metrics never get pushed with
// partial information
func runCheck(
	ctx context.Context,
	conf *domaincheck.Config,
	fetcher domainwhois.Fetcher,
	parser *domainwhoisrnids.Parser,
	metrics *domainmetrics.Metrics,
	now func() time.Time,
	debugWhois bool,
	logger *log.Logger,
) ([]checkResult, error) {
	logl := logex.Levels(logger)

	registryLocation, err := domainwhoisrnids.RegistryLocation()
	if err != nil {
		return nil, err
	}

	if debugWhois {
		fetcher = &loggingFetcher{fetcher, logl.Debug}
	}

	svc := domainwhoisrnids.New(fetcher, parser)

	results := []checkResult{}

	for _, expected := range conf.Domains {
		logl.Info.Printf("checking %s", expected.Domain)

		record, err := svc.Whois(ctx, expected.Domain)
		if err != nil {
			return nil, err
		}

		mismatches := domaincheck.Check(expected, record)
		for _, mismatch := range mismatches {
			logl.Error.Printf("%s: %s", record.Domain, mismatch.String())
		}

		result := checkResult{
			Domain:     record.Domain,
			Record:     record,
			Mismatches: mismatches,
		}

		metrics.Observe(record, result.Consistent(), registryLocation)

		results = append(results, result)
	}

	metrics.MarkSuccessfullyParsed(now())

	return results, nil
}

func printCheckResults(results []checkResult, output io.Writer) error {
	tbl := termtables.CreateTable()
	tbl.AddHeaders("Domain", "Status", "Expires", "Desired state", "Mismatches")

	for _, result := range results {
		expires := ""
		if result.Record.Expires != nil {
			expires = result.Record.Expires.String()
		}

		mismatches := []string{}
		for _, mismatch := range result.Mismatches {
			mismatches = append(mismatches, mismatch.String())
		}

		tbl.AddRow(
			result.Domain,
			result.Record.Status.Code,
			expires,
			boolToCheckmarkString(result.Consistent()),
			strings.Join(mismatches, ", "))
	}

	_, err := fmt.Fprintln(output, tbl.Render())
	return err
}

type loggingFetcher struct {
	domainwhois.Fetcher
	logger *log.Logger
}

func (l *loggingFetcher) Fetch(ctx context.Context, domain string) (string, error) {
	body, err := l.Fetcher.Fetch(ctx, domain)
	if err == nil {
		l.logger.Printf("%s response:\n%s", domain, body)
	}
	return body, err
}

func boolToCheckmarkString(input bool) string {
	if input {
		return "✓"
	}
	return "✗"
}
