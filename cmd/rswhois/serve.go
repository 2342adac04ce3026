package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/function61/gokit/httputils"
	"github.com/function61/gokit/jsonfile"
	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/osutil"
	"github.com/function61/gokit/taskrunner"
	"github.com/function61/rswhois/pkg/domaincheck"
	"github.com/function61/rswhois/pkg/domainmetrics"
	"github.com/function61/rswhois/pkg/domainwhois/domainwhoisrnids"
	"github.com/function61/rswhois/pkg/rswhoistypes"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

func serveEntry() *cobra.Command {
	addr := ":80"
	statefilePath := rswhoistypes.DefaultStatefilePath
	configPath := domaincheck.DefaultConfigFilename

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tracked domains and their metrics over HTTP",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			osutil.ExitIfError(serve(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				addr,
				statefilePath,
				configPath,
				rootLogger))
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "", addr, "Address to listen on")
	cmd.Flags().StringVarP(&statefilePath, "state", "", statefilePath, "Path to state file")
	cmd.Flags().StringVarP(&configPath, "config", "c", configPath, "Path to desired state config (optional)")

	return cmd
}

func serve(ctx context.Context, addr string, statefilePath string, configPath string, logger *log.Logger) error {
	handler, err := serveHandler(statefilePath, configPath, logex.Prefix("handler", logger))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	tasks := taskrunner.New(ctx, logger)

	tasks.Start("listener "+srv.Addr, func(_ context.Context) error {
		return httputils.RemoveGracefulServerClosedError(srv.ListenAndServe())
	})

	tasks.Start("listenershutdowner", httputils.ServerShutdownTask(srv))

	return tasks.Wait()
}

// state is read once at startup. refreshing is the "domains refresh" command's job.
func serveHandler(statefilePath string, configPath string, logger *log.Logger) (http.Handler, error) {
	logl := logex.Levels(logger)

	sf, err := rswhoistypes.ReadStatefile(statefilePath)
	if err != nil {
		return nil, err
	}

	expectations := map[string]domaincheck.Expectation{}

	conf, err := domaincheck.ReadConfig(configPath)
	switch {
	case err == nil:
		for _, expected := range conf.Domains {
			expectations[expected.Domain] = expected
		}
	case os.IsNotExist(err):
		logl.Info.Printf("no %s; reporting every domain as in desired state", configPath)
	default:
		return nil, err
	}

	registryLocation, err := domainwhoisrnids.RegistryLocation()
	if err != nil {
		return nil, err
	}

	metrics := domainmetrics.New()

	// stalest domain determines freshness
	oldestFetch := time.Time{}

	for _, tracked := range sf.Domains {
		record := tracked.Record

		consistent := true
		if expected, found := expectations[record.Domain]; found {
			consistent = len(domaincheck.Check(expected, &record)) == 0
		}

		metrics.Observe(&record, consistent, registryLocation)

		if oldestFetch.IsZero() || tracked.FetchedAt.Before(oldestFetch) {
			oldestFetch = tracked.FetchedAt
		}
	}

	if !oldestFetch.IsZero() {
		metrics.MarkSuccessfullyParsed(oldestFetch)
	}

	routes := mux.NewRouter()

	routes.HandleFunc("/domains", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := jsonfile.Marshal(w, sf.Domains); err != nil {
			logl.Error.Printf("/domains: %v", err)
		}
	}).Methods(http.MethodGet)

	routes.HandleFunc("/domains/{domain}", func(w http.ResponseWriter, r *http.Request) {
		tracked := sf.Find(mux.Vars(r)["domain"])
		if tracked == nil {
			http.Error(w, rswhoistypes.ErrDomainNotTracked.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := jsonfile.Marshal(w, tracked); err != nil {
			logl.Error.Printf("/domains/%s: %v", tracked.Record.Domain, err)
		}
	}).Methods(http.MethodGet)

	routes.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return routes, nil
}
