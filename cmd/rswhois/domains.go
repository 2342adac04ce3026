package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/function61/gokit/osutil"
	"github.com/function61/rswhois/pkg/domainwhois"
	"github.com/function61/rswhois/pkg/domainwhois/domainwhoisrnids"
	"github.com/function61/rswhois/pkg/domainwhois/domainwhoiswhoisxmlapi"
	"github.com/function61/rswhois/pkg/domainwhois/whoisfetch"
	"github.com/function61/rswhois/pkg/duration"
	"github.com/function61/rswhois/pkg/rswhoistypes"
	"github.com/scylladb/termtables"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

func domainsEntry() *cobra.Command {
	statefilePath := rswhoistypes.DefaultStatefilePath
	opts := parserOptions{}
	lookup := lookupOptions{}

	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Domain tracking related commands",
	}

	cmd.PersistentFlags().StringVarP(&statefilePath, "state", "", statefilePath, "Path to state file")

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List tracked domains",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(listDomains(statefilePath, time.Now(), os.Stdout))
		},
	})

	add := &cobra.Command{
		Use:   "add [domain]",
		Short: "Start tracking whois data of domain",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), whoisfetch.DefaultTimeout)
			defer cancel()

			svc, err := newService(opts, lookup)
			osutil.ExitIfError(err)

			osutil.ExitIfError(addDomain(ctx, args[0], svc, statefilePath, time.Now()))
		},
	}
	opts.addFlags(add)
	lookup.addFlags(add)
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [domain]",
		Short: "Stop tracking a domain",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(removeDomain(args[0], statefilePath))
		},
	})

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch whois data of all tracked domains and show what changed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := newService(opts, lookup)
			osutil.ExitIfError(err)

			osutil.ExitIfError(refreshDomains(
				context.Background(),
				svc,
				statefilePath,
				time.Now,
				os.Stdout))
		},
	}
	opts.addFlags(refresh)
	lookup.addFlags(refresh)
	cmd.AddCommand(refresh)

	return cmd
}

func newService(opts parserOptions, lookup lookupOptions) (domainwhois.Service, error) {
	fetcher, err := lookup.fetcher()
	if err != nil {
		return nil, err
	}

	return domainwhoisrnids.New(fetcher, opts.parser()), nil
}

type lookupOptions struct {
	viaWhoisXmlApi bool
}

func (l *lookupOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&l.viaWhoisXmlApi, "whoisxmlapi", "", l.viaWhoisXmlApi, "Look up via whoisxmlapi.com (key from $"+domainwhoiswhoisxmlapi.APIKeyEnvName+") instead of port 43")
}

func (l *lookupOptions) fetcher() (domainwhois.Fetcher, error) {
	if l.viaWhoisXmlApi {
		return domainwhoiswhoisxmlapi.NewFromEnv()
	}

	return whoisfetch.New(whoisfetch.DefaultTimeout), nil
}

func listDomains(statefilePath string, now time.Time, output io.Writer) error {
	sf, err := rswhoistypes.ReadStatefile(statefilePath)
	if err != nil {
		return err
	}

	if len(sf.Domains) == 0 {
		return nil
	}

	registryLocation, err := domainwhoisrnids.RegistryLocation()
	if err != nil {
		return err
	}

	tbl := termtables.CreateTable()
	tbl.AddHeaders("Domain", "Status", "Registrant", "Registrar", "Expires", "", "Fetched")

	for _, tracked := range sf.Domains {
		record := tracked.Record

		registrant := ""
		if contact, found := record.Contact(domainwhois.ContactRegistrant); found {
			registrant = contact.Name
		}

		expires := ""
		expiresRelative := ""
		if record.Expires != nil {
			expires = record.Expires.In(registryLocation).Format("2006-01-02")
			expiresRelative = duration.Until(record.Expires.In(registryLocation), now)
		}

		tbl.AddRow(
			record.Domain,
			record.Status.Code,
			registrant,
			record.Registrar.String(),
			expires,
			expiresRelative,
			duration.Humanize(now.Sub(tracked.FetchedAt)))
	}

	_, err = fmt.Fprintln(output, tbl.Render())
	return err
}

func addDomain(ctx context.Context, domain string, svc domainwhois.Service, statefilePath string, now time.Time) error {
	sf, err := rswhoistypes.ReadStatefile(statefilePath)
	if err != nil {
		return err
	}

	record, err := svc.Whois(ctx, domain)
	if err != nil {
		return err
	}

	sf.Upsert(rswhoistypes.TrackedDomain{
		Record:    *record,
		FetchedAt: now.UTC(),
	})

	return rswhoistypes.WriteStatefile(statefilePath, sf)
}

func removeDomain(domain string, statefilePath string) error {
	sf, err := rswhoistypes.ReadStatefile(statefilePath)
	if err != nil {
		return err
	}

	if err := sf.Remove(domain); err != nil {
		return fmt.Errorf("%s: %w", domain, err)
	}

	return rswhoistypes.WriteStatefile(statefilePath, sf)
}

// one domain failing fails the whole refresh, and nothing gets written
func refreshDomains(
	ctx context.Context,
	svc domainwhois.Service,
	statefilePath string,
	now func() time.Time,
	output io.Writer,
) error {
	sf, err := rswhoistypes.ReadStatefile(statefilePath)
	if err != nil {
		return err
	}

	for _, previous := range sf.Domains {
		lookupCtx, cancel := context.WithTimeout(ctx, whoisfetch.DefaultTimeout)
		updated, err := svc.Whois(lookupCtx, previous.Record.Domain)
		cancel()
		if err != nil {
			return err
		}

		diff, changed, err := recordDiff(previous.Record, *updated)
		if err != nil {
			return err
		}

		if changed {
			fmt.Fprintf(output, "%s changed:\n%s\n", updated.Domain, diff)
		} else {
			fmt.Fprintf(output, "%s unchanged\n", updated.Domain)
		}

		sf.Upsert(rswhoistypes.TrackedDomain{
			Record:    *updated,
			FetchedAt: now().UTC(),
		})
	}

	return rswhoistypes.WriteStatefile(statefilePath, sf)
}

// the registry's snapshot timestamp changes on every lookup, so it's not part of the diff
func recordDiff(previous domainwhois.Record, updated domainwhois.Record) (string, bool, error) {
	previous.WhoisTimestamp = nil
	updated.WhoisTimestamp = nil

	previousJson, err := json.MarshalIndent(previous, "", "  ")
	if err != nil {
		return "", false, err
	}

	updatedJson, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return "", false, err
	}

	if string(previousJson) == string(updatedJson) {
		return "", false, nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(previousJson), string(updatedJson), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return dmp.DiffPrettyText(diffs), true, nil
}
