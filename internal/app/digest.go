package app

import (
	"context"
	"fmt"
	"time"

	"github.com/openclaw-hq/claw-digest/internal/assemble"
	"github.com/openclaw-hq/claw-digest/internal/config"
	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/pipeline"
	"github.com/openclaw-hq/claw-digest/internal/render"
	"github.com/openclaw-hq/claw-digest/internal/state"
	"github.com/openclaw-hq/claw-digest/pkg/collectors"
	"github.com/openclaw-hq/claw-digest/pkg/httpclient"
	"github.com/openclaw-hq/claw-digest/pkg/publishers"
)

// Digest wires collectors, the assembler, renderers, and publishers into the
// daily generation run.
type Digest struct {
	cfg       *config.Config
	store     state.Store
	pipeline  *pipeline.Service
	assembler *assemble.Assembler
	renderer  *render.Renderer
	fanout    *publishers.Fanout
	log       logger.Logger
	now       func() time.Time
}

// NewDigest builds the digest runtime from config files.
func NewDigest(ctx context.Context, cfg *config.Config, log logger.Logger) (*Digest, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	store, err := state.NewStore(cfg.StateType, cfg.StateFile, state.Options{MaxEntries: cfg.MaxStateEntries})
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	log.InfoObj("state store opened", "state", map[string]any{
		"type":    cfg.StateType,
		"covered": store.Count(),
	})

	routing, err := assemble.LoadRouting(cfg.SectionsFile)
	if err != nil {
		return nil, fmt.Errorf("load section routing: %w", err)
	}

	renderer, err := render.NewRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	fanout, err := loadFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewRestyClient(httpclient.Options{
		Timeout:      cfg.RequestTimeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	})

	roster := collectors.All(cfg, client)
	log.InfoObj("collector roster built", "collectors", len(roster))

	return &Digest{
		cfg:       cfg,
		store:     store,
		pipeline:  pipeline.NewService(roster),
		assembler: assemble.New(routing, assemble.NewWriter(cfg)),
		renderer:  renderer,
		fanout:    fanout,
		log:       log,
		now:       time.Now,
	}, nil
}

// loadFanout builds the publisher fanout. No publishers file means no
// downstream fanout, which is the common static-site-only deployment.
func loadFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if cfg.PublishersFile == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), reg.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	log.InfoObj("publishers registry loaded", "publishers", len(pubs))
	return publishers.NewFanout(pubs), nil
}

// Run executes one full digest generation pass.
func (d *Digest) Run(ctx context.Context) error {
	if d == nil || d.pipeline == nil {
		return fmt.Errorf("digest is not initialized")
	}
	defer d.store.Close()

	start := d.now()
	date := start.UTC().Format("2006-01-02")
	d.log.InfoObj("digest run starting", "run_meta", map[string]any{
		"date":       date,
		"started_at": start.UTC(),
	})

	results, summary, err := d.pipeline.Run(ctx, d.store)
	if err != nil {
		return fmt.Errorf("collection pass: %w", err)
	}

	// Quiet days still advance the run timestamp; tomorrow's dedup window
	// must not reprocess items that were checked today.
	if summary.Items == 0 {
		d.log.InfoObj("no new items collected; skipping issue", "run_meta", map[string]any{
			"date":    date,
			"skipped": summary.Skipped,
			"errors":  summary.Errors,
		})
		if err := d.store.Save(); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		return nil
	}

	issue := d.assembler.Assemble(ctx, results, date)

	filename, err := d.renderer.RenderIssue(issue)
	if err != nil {
		return fmt.Errorf("render issue: %w", err)
	}
	if err := d.renderer.BuildArchive(); err != nil {
		return fmt.Errorf("build archive: %w", err)
	}
	if err := d.renderer.BuildRSS(); err != nil {
		return fmt.Errorf("build rss: %w", err)
	}
	latest, err := d.renderer.LatestIssue()
	if err != nil {
		return fmt.Errorf("resolve latest issue: %w", err)
	}
	if err := d.renderer.RenderIndex(latest); err != nil {
		return fmt.Errorf("render index: %w", err)
	}

	if err := d.publish(ctx, issue); err != nil {
		// Publishing failures must not lose the rendered issue or the
		// dedup marks; log and continue to state save.
		d.log.ErrorObj("publisher fanout failed", "publish_error", map[string]any{
			"date":  date,
			"error": err.Error(),
		})
	}

	d.store.MarkAllCovered(coveredIDs(results))
	if err := d.store.Save(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	d.log.InfoObj("digest run completed", "run_meta", map[string]any{
		"date":       date,
		"issue":      filename,
		"sections":   len(issue.Sections),
		"items":      issue.TotalItems,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (d *Digest) publish(ctx context.Context, issue domain.Issue) error {
	if d.fanout.Size() == 0 {
		return nil
	}

	bodyHTML, err := d.renderer.RenderEmail(issue)
	if err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	evt := publishers.NewEvent(issue, d.cfg.SiteURL, bodyHTML)
	count, err := d.fanout.Publish(ctx, evt)
	d.log.InfoObj("issue published", "publish_meta", map[string]any{
		"date":       issue.Date,
		"successful": count,
		"publishers": d.fanout.Size(),
	})
	return err
}

// coveredIDs collects every successfully-collected item id. Items that the
// assembler later drops (for example from an unrouted source) still count as
// seen, otherwise they would be re-collected and re-dropped on every run.
func coveredIDs(results []domain.CollectorResult) []string {
	var ids []string
	for _, res := range results {
		if res.Skipped || res.Error != "" {
			continue
		}
		for _, item := range res.Items {
			ids = append(ids, item.ID)
		}
	}
	return ids
}
