// Package iomap links ingredient rows and recipes to catalog entities.
// Mappers are built once per run from a catalog snapshot, matches are
// written in batches, one transaction per batch.
package iomap

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/brewdb/pkg/config"
	"github.com/gnames/brewdb/pkg/mapping"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/brewdb/pkg/store"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

type outcome int

const (
	unmatched outcome = iota
	matched
	// rejected is a style match outside of the style limits.
	rejected
)

// resolver returns a catalog id for an item.
type resolver func(mapping.Item) (*string, outcome)

// Processor maps rows of one kind at a time.
type Processor struct {
	store     store.Store
	batchSize int
	fuzzy     bool
	limits    mapping.StyleLimits
}

// Stats summarizes a mapping run.
type Stats struct {
	// RunID marks log records of one run.
	RunID string
	Kind  schema.Kind

	// Total is the number of rows considered.
	Total     int
	Matched   int
	Unmatched int
	Rejected  int

	// Updated is the number of rows whose link changed.
	Updated int
	Batches int

	Duration time.Duration
}

// New creates a Processor.
func New(cfg *config.Config, st store.Store) *Processor {
	sl := cfg.Mapping.StyleLimits
	return &Processor{
		store:     st,
		batchSize: max(cfg.Database.BatchSize, 1),
		fuzzy:     cfg.Mapping.FuzzyRecipeName,
		limits: mapping.StyleLimits{
			Enabled:      sl.Enabled,
			Lower:        sl.Lower,
			Upper:        sl.Upper,
			ColorCeiling: sl.ColorCeiling,
		},
	}
}

// Map resolves rows of the kind against the catalog. Without all only
// rows that have no link are considered. A row that does not resolve
// keeps its link; a style rejected by the limits loses it.
func (p *Processor) Map(
	ctx context.Context,
	kind schema.Kind,
	all bool,
) (Stats, error) {
	start := time.Now()
	stats := Stats{RunID: uuid.NewString(), Kind: kind}
	if !slices.Contains(schema.Kinds, kind) {
		return stats, MappingKindError(kind)
	}
	log := slog.With("run", stats.RunID, "kind", kind)

	cat, err := p.store.LoadCatalog(ctx)
	if err != nil {
		return stats, err
	}
	resolve, err := p.resolver(kind, cat)
	if err != nil {
		return stats, err
	}

	rows, err := p.store.MappingRows(ctx, kind, all)
	if err != nil {
		return stats, err
	}
	stats.Total = len(rows)
	log.Info("Starting mapping", "rows", stats.Total, "all", all)
	if len(rows) == 0 {
		gn.Info("No <em>%s</em> rows to map", kind)
		return stats, nil
	}

	bar := newProgressBar(len(rows), fmt.Sprintf("Mapping %s: ", kind))
	defer bar.Finish()

	for chunk := range slices.Chunk(rows, p.batchSize) {
		if err = ctx.Err(); err != nil {
			return stats, err
		}
		updates := resolveRows(chunk, resolve, &stats)
		bar.Add(len(chunk))
		if len(updates) == 0 {
			continue
		}

		stats.Batches++
		err = p.store.Transaction(ctx, func(tx store.Session) error {
			return tx.UpdateKindID(ctx, kind, updates)
		})
		if err != nil {
			return stats, MappingBatchError(kind, stats.Batches, err)
		}
		stats.Updated += len(updates)
		log.Debug("Saved mapping batch", "batch", stats.Batches, "rows", len(updates))
	}

	stats.Duration = time.Since(start)
	log.Info("Mapping finished",
		"matched", stats.Matched,
		"unmatched", stats.Unmatched,
		"rejected", stats.Rejected,
		"updated", stats.Updated,
		"batches", stats.Batches,
	)
	gn.Info("Mapped <em>%s</em> of %s %s rows in %s",
		humanize.Comma(int64(stats.Matched)),
		humanize.Comma(int64(stats.Total)),
		kind,
		gnfmt.TimeString(stats.Duration.Seconds()),
	)
	return stats, nil
}

// Unset removes links of all rows of the kind to the catalog id and
// returns the number of changed rows.
func (p *Processor) Unset(
	ctx context.Context,
	kind schema.Kind,
	id string,
) (int64, error) {
	if !slices.Contains(schema.Kinds, kind) {
		return 0, MappingKindError(kind)
	}

	var res int64
	err := p.store.Transaction(ctx, func(tx store.Session) error {
		var err error
		res, err = tx.UnsetKindID(ctx, kind, id)
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Unset mapping", "kind", kind, "id", id, "rows", res)
	gn.Info("Unlinked <em>%s</em> %s rows from <em>%s</em>",
		humanize.Comma(res), kind, id)
	return res, nil
}

func resolveRows(rows []store.Row, resolve resolver, stats *Stats) []store.Update {
	var res []store.Update
	for _, v := range rows {
		id, out := resolve(v.Item)
		switch out {
		case matched:
			stats.Matched++
		case rejected:
			stats.Rejected++
		default:
			stats.Unmatched++
			continue
		}
		if sameID(v.KindID, id) {
			continue
		}
		res = append(res, store.Update{ID: v.ID, KindID: id})
	}
	return res
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// resolver builds mappers of the kind. Name conflicts in the catalog
// stop the run.
func (p *Processor) resolver(kind schema.Kind, cat *mapping.Catalog) (resolver, error) {
	switch kind {
	case schema.KindHop:
		m, err := mapping.NewHopMapper(cat.Hops)
		if err != nil {
			return nil, err
		}
		chain := mapping.Chain[*schema.Hop]{m}
		return byChain(chain, func(h *schema.Hop) string { return h.ID }), nil

	case schema.KindFermentable:
		m, err := mapping.NewFermentableMapper(cat.Fermentables)
		if err != nil {
			return nil, err
		}
		chain := mapping.Chain[*schema.Fermentable]{m}
		return byChain(chain, func(f *schema.Fermentable) string { return f.ID }), nil

	case schema.KindYeast:
		chain, err := yeastChain(cat.Yeasts)
		if err != nil {
			return nil, err
		}
		return byChain(chain, func(y *schema.Yeast) string { return y.ID }), nil

	case schema.KindStyle:
		chain, err := p.styleChain(cat.Styles)
		if err != nil {
			return nil, err
		}
		return func(it mapping.Item) (*string, outcome) {
			s, ok := chain.Map(it)
			if !ok {
				return nil, unmatched
			}
			if !p.limits.Allows(s, it) {
				return nil, rejected
			}
			return &s.ID, matched
		}, nil
	}
	return nil, MappingKindError(kind)
}

func byChain[T any](chain mapping.Chain[T], id func(T) string) resolver {
	return func(it mapping.Item) (*string, outcome) {
		obj, ok := chain.Map(it)
		if !ok {
			return nil, unmatched
		}
		res := id(obj)
		return &res, matched
	}
}

// yeastChain tries product ids before product names. Both share one
// brand index.
func yeastChain(yeasts []*schema.Yeast) (mapping.Chain[*schema.Yeast], error) {
	brands, err := mapping.NewYeastBrandMapper(yeasts)
	if err != nil {
		return nil, err
	}
	byID, err := mapping.NewYeastProductIDMapper(brands, yeasts)
	if err != nil {
		return nil, err
	}
	byName, err := mapping.NewYeastProductNameMapper(brands, yeasts)
	if err != nil {
		return nil, err
	}
	return mapping.Chain[*schema.Yeast]{byID, byName}, nil
}

// styleChain matches the stated style, then the exact recipe name and,
// if enabled, patterns inside the recipe name.
func (p *Processor) styleChain(styles []*schema.Style) (mapping.Chain[*schema.Style], error) {
	stated, err := mapping.NewStyleMapper(styles)
	if err != nil {
		return nil, err
	}
	exact, err := mapping.NewRecipeNameStyleMapper(styles, true)
	if err != nil {
		return nil, err
	}
	res := mapping.Chain[*schema.Style]{stated, exact}
	if !p.fuzzy {
		return res, nil
	}

	fuzzy, err := mapping.NewRecipeNameStyleMapper(styles, false)
	if err != nil {
		return nil, err
	}
	return append(res, fuzzy), nil
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
