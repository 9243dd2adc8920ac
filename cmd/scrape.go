package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/boatramps/internal/boatramp"
	"github.com/sells-group/boatramps/internal/config"
	"github.com/sells-group/boatramps/internal/fetcher"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape boat ramps into a GeoJSON file",
	Long: `Fetch the ramp map page, extract the embedded marker list and write it
as a GeoJSON FeatureCollection, replacing the output file.

A page without marker data is not an error: an empty collection is written.
Use --url and --out to override source.url and output.path for one run.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := applyScrapeFlags(cmd, cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		return runScrape(ctx, cfg, cmd.OutOrStdout())
	},
}

func init() {
	scrapeCmd.Flags().String("url", "", "map page URL (overrides source.url)")
	scrapeCmd.Flags().String("out", "", "output GeoJSON path (overrides output.path)")
	rootCmd.AddCommand(scrapeCmd)
}

// applyScrapeFlags copies non-empty flag overrides into c.
func applyScrapeFlags(cmd *cobra.Command, c *config.Config) error {
	u, err := cmd.Flags().GetString("url")
	if err != nil {
		return eris.Wrap(err, "scrape: read --url")
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return eris.Wrap(err, "scrape: read --out")
	}
	if u != "" {
		c.Source.URL = u
	}
	if out != "" {
		c.Output.Path = out
	}
	return nil
}

// runScrape builds the fetcher and pipeline from c and writes the output file.
func runScrape(ctx context.Context, c *config.Config, w io.Writer) error {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: c.Fetch.UserAgent,
		Timeout:   c.Fetch.Timeout(),
	})
	p := boatramp.New(f, boatramp.Options{
		SourceURL:   c.Source.URL,
		RampBaseURL: c.Source.RampBaseURL,
		MaxBytes:    c.Fetch.MaxBytes,
	})

	res, err := p.Scrape(ctx, c.Output.Path)
	if err != nil {
		return eris.Wrap(err, "scrape")
	}

	_, _ = fmt.Fprintf(w, "Saved %d boat ramps to %s\n", res.Collection.Len(), c.Output.Path)
	return nil
}
