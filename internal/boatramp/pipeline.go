// Package boatramp runs the boat ramp scrape: fetch the map page, locate the
// marker block in its inline script, decode the ramps and build the GeoJSON
// collection written for the map frontend.
package boatramp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/boatramps/internal/extract"
	"github.com/sells-group/boatramps/internal/feature"
	"github.com/sells-group/boatramps/internal/fetcher"
	"github.com/sells-group/boatramps/internal/output"
	"github.com/sells-group/boatramps/internal/page"
)

// sampleSize is how many ramps are echoed to the log after a run.
const sampleSize = 5

// Options configures a pipeline.
type Options struct {
	SourceURL   string
	RampBaseURL string
	MaxBytes    int64
}

// Result is the outcome of one run.
type Result struct {
	RunID      string
	Collection *feature.Collection
	// Strategy names the locate strategy that found the marker block, or is
	// empty when none did.
	Strategy string
}

// Pipeline scrapes ramps from a single map page.
type Pipeline struct {
	fetcher fetcher.Fetcher
	opts    Options
}

// New creates a pipeline. An empty RampBaseURL uses extract.DefaultRampBaseURL.
func New(f fetcher.Fetcher, opts Options) *Pipeline {
	if opts.RampBaseURL == "" {
		opts.RampBaseURL = extract.DefaultRampBaseURL
	}
	return &Pipeline{fetcher: f, opts: opts}
}

// Run fetches the source page and extracts its ramps. A failed fetch is
// logged and yields an empty collection; only cancellation of ctx is
// returned as an error.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := zap.L().With(
		zap.String("component", "boatramp.pipeline"),
		zap.String("run_id", runID),
	)
	start := time.Now()

	log.Info("fetching map page", zap.String("url", p.opts.SourceURL))
	text, err := fetcher.FetchPage(ctx, p.fetcher, p.opts.SourceURL, p.opts.MaxBytes)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, eris.Wrap(ctxErr, "boatramp: fetch")
		}
		log.Warn("fetch failed, continuing without data", zap.String("url", p.opts.SourceURL), zap.Error(err))
		text = ""
	}

	fc, strategy := Extract(text, p.opts.RampBaseURL)
	if strategy == "" {
		log.Warn("no marker data found", zap.Int("page_bytes", len(text)))
		if blocked, kind := fetcher.DetectBlock(text); blocked {
			log.Warn("page looks like an anti-bot challenge", zap.String("block_type", string(kind)))
		}
	} else {
		log.Debug("marker block located", zap.String("strategy", strategy))
	}

	log.Info("extraction complete",
		zap.Int("ramps", fc.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	for _, f := range fc.Features[:min(sampleSize, fc.Len())] {
		log.Info("sample ramp",
			zap.String("name", f.Properties.Name),
			zap.Float64s("coordinates", []float64{f.Lng(), f.Lat()}),
		)
	}

	return &Result{RunID: runID, Collection: fc, Strategy: strategy}, nil
}

// Scrape runs the pipeline and writes the collection to path, replacing any
// existing file. An empty collection is still written.
func (p *Pipeline) Scrape(ctx context.Context, path string) (*Result, error) {
	res, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := output.WriteFile(path, res.Collection); err != nil {
		return nil, eris.Wrap(err, "boatramp: write output")
	}
	zap.L().Info("saved boat ramps",
		zap.String("run_id", res.RunID),
		zap.String("path", path),
		zap.Int("ramps", res.Collection.Len()),
	)
	return res, nil
}

// Extract locates the marker block in fetched page text and builds the
// collection from it. The inline scripts carrying the marker token are
// searched first; the whole page is searched when they hold no block, since
// the values list may sit in a different script than the token. The second
// result is the strategy that found the block, or empty when the page
// carries no marker data.
func Extract(text, rampBaseURL string) (*feature.Collection, string) {
	m, ok := extract.Locate(page.ScriptText(text, extract.MarkerToken))
	if !ok {
		m, ok = extract.Locate(text)
	}
	if !ok {
		return feature.NewCollection(), ""
	}
	return feature.Build(extract.Decode(m.Block, rampBaseURL)), m.Strategy
}
