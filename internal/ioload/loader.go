// Package ioload imports parsed recipes into the store. A recipe and all
// its ingredient rows are written in one transaction; invalid values are
// unset instead of failing the import.
package ioload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/brewdb/pkg/format"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/brewdb/pkg/store"
)

// Hop values beyond these bounds are discarded.
const (
	maxAlpha       = 30.0
	maxBoilMinutes = 240.0
	maxDryHopTime  = 30 * 24 * 60.0
)

// Loader writes parsed recipes to a store.
type Loader struct {
	store store.Store
}

// NewLoader creates a Loader.
func NewLoader(st store.Store) *Loader {
	return &Loader{store: st}
}

// Import writes a recipe in one transaction and returns the stored
// record.
func (l *Loader) Import(
	ctx context.Context,
	uid string,
	res *format.ParseResult,
) (*schema.Recipe, error) {
	var rec *schema.Recipe
	err := l.store.Transaction(ctx, func(tx store.Session) error {
		var err error
		rec, err = importTx(ctx, tx, uid, res)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func importTx(
	ctx context.Context,
	tx store.Session,
	uid string,
	res *format.ParseResult,
) (*schema.Recipe, error) {
	rec, err := Build(uid, res)
	if err != nil {
		return nil, err
	}
	if err = tx.SaveRecipe(ctx, rec); err != nil {
		return nil, err
	}
	slog.Debug("Imported recipe", "uid", uid,
		"fermentables", len(rec.Fermentables),
		"hops", len(rec.Hops),
		"yeasts", len(rec.Yeasts),
	)
	return rec, nil
}

// SplitUID splits a recipe UID into source and source id at the first
// colon.
func SplitUID(uid string) (source, sourceID string, err error) {
	source, sourceID, ok := strings.Cut(uid, ":")
	if !ok || source == "" || sourceID == "" {
		return "", "", InvalidUIDError(uid)
	}
	return source, sourceID, nil
}

// Build converts a parse result into a valid recipe with ingredient
// rows, ready to be saved.
func Build(uid string, res *format.ParseResult) (*schema.Recipe, error) {
	source, sourceID, err := SplitUID(uid)
	if err != nil {
		return nil, err
	}

	rec := newRecipe(res.Recipe)
	rec.UID, rec.Source, rec.SourceID = uid, source, sourceID
	if err = fixDerived(rec, uid); err != nil {
		return nil, err
	}

	for i, v := range res.Fermentables {
		f := newFermentable(v)
		f.ID = schema.RowID(uid, schema.KindFermentable, i)
		f.RecipeUID, f.Position = uid, i
		if err = fixDerived(&f, rowLabel(uid, schema.KindFermentable, i)); err != nil {
			return nil, err
		}
		rec.Fermentables = append(rec.Fermentables, f)
	}

	for i, v := range res.Hops {
		h := newHop(v)
		h.ID = schema.RowID(uid, schema.KindHop, i)
		h.RecipeUID, h.Position = uid, i
		applyHopBounds(&h)
		if err = fix(&h, rowLabel(uid, schema.KindHop, i)); err != nil {
			return nil, err
		}
		rec.Hops = append(rec.Hops, h)
	}

	for i, v := range res.Yeasts {
		y := newYeast(v)
		y.ID = schema.RowID(uid, schema.KindYeast, i)
		y.RecipeUID, y.Position = uid, i
		if err = fix(&y, rowLabel(uid, schema.KindYeast, i)); err != nil {
			return nil, err
		}
		rec.Yeasts = append(rec.Yeasts, y)
	}

	// percentages use amounts that survived validation
	setPercent(rec.Fermentables,
		func(f *schema.RecipeFermentable) (**float64, **float64) {
			return &f.Amount, &f.AmountPercent
		})
	setPercent(rec.Hops,
		func(h *schema.RecipeHop) (**float64, **float64) {
			return &h.Amount, &h.AmountPercent
		})
	return rec, nil
}

func rowLabel(uid string, kind schema.Kind, i int) string {
	return fmt.Sprintf("%s %s #%d", uid, kind, i+1)
}

// setPercent sets the share of every known amount in the sum of known
// amounts, in percent.
func setPercent[T any](rows []T, fields func(*T) (amount, percent **float64)) {
	var total float64
	for i := range rows {
		if amount, _ := fields(&rows[i]); *amount != nil {
			total += **amount
		}
	}
	if total <= 0 {
		return
	}
	for i := range rows {
		amount, percent := fields(&rows[i])
		if *amount == nil {
			*percent = nil
			continue
		}
		p := **amount / total * 100
		*percent = &p
	}
}

// applyHopBounds discards alpha acids and times that cannot be right.
// Extracts and oils are allowed a high alpha.
func applyHopBounds(h *schema.RecipeHop) {
	if h.Alpha != nil && *h.Alpha > maxAlpha {
		name := strings.ToLower(h.KindRaw)
		if !strings.Contains(name, "extract") && !strings.Contains(name, "oil") {
			h.Alpha = nil
		}
	}

	if h.Time == nil || h.Use == nil {
		return
	}
	limit := maxBoilMinutes
	if *h.Use == schema.HopUseDryHop {
		limit = maxDryHopTime
	}
	if *h.Time > limit {
		h.Time = nil
	}
}

// fix unsets fields that fail validation until the record is valid.
// Every pass unsets all reported fields, so the number of passes is
// bounded by the number of validated fields.
type deriver interface {
	DeriveMissing()
}

// fixDerived validates values as read from the file, fills missing ones
// from the remaining valid values and validates the result again.
func fixDerived(v deriver, label string) error {
	if err := fix(v, label); err != nil {
		return err
	}
	v.DeriveMissing()
	return fix(v, label)
}

func fix(v any, label string) error {
	passes := schema.ValidatedFields(v)
	for i := 0; ; i++ {
		vs, err := schema.Validate(v)
		if err != nil {
			return err
		}
		if len(vs) == 0 {
			return nil
		}
		if i == passes {
			return FieldValidationError(label, vs)
		}
		for _, f := range vs {
			if !schema.Unset(v, f.Field) {
				return FieldValidationError(label, vs)
			}
			slog.Debug("Unset invalid value", "record", label,
				"field", f.Field, "rule", f.Tag, "value", f.Value)
		}
	}
}

func newRecipe(d format.RecipeDraft) *schema.Recipe {
	return &schema.Recipe{
		Name:              d.Name,
		Author:            d.Author,
		Created:           d.Created,
		StyleRaw:          d.StyleRaw,
		ExtractEfficiency: d.ExtractEfficiency,
		OG:                d.OG,
		FG:                d.FG,
		OriginalPlato:     d.OriginalPlato,
		FinalPlato:        d.FinalPlato,
		ABV:               d.ABV,
		EBC:               d.EBC,
		SRM:               d.SRM,
		IBU:               d.IBU,
		MashWater:         d.MashWater,
		SpargeWater:       d.SpargeWater,
		CastOutWort:       d.CastOutWort,
		BoilingTime:       d.BoilingTime,
	}
}

func newFermentable(d format.FermentableDraft) schema.RecipeFermentable {
	return schema.RecipeFermentable{
		KindRaw:  d.Kind,
		Origin:   d.Origin,
		Form:     d.Form,
		Amount:   d.Amount,
		Lovibond: d.Lovibond,
		Yield:    d.Yield,
	}
}

func newHop(d format.HopDraft) schema.RecipeHop {
	return schema.RecipeHop{
		KindRaw:       d.Kind,
		Amount:        d.Amount,
		Use:           d.Use,
		Time:          d.Time,
		Type:          d.Type,
		Form:          d.Form,
		Alpha:         d.Alpha,
		Beta:          d.Beta,
		HSI:           d.HSI,
		Humulene:      d.Humulene,
		Caryophyllene: d.Caryophyllene,
		Cohumulone:    d.Cohumulone,
		Myrcene:       d.Myrcene,
		Substitutes:   d.Substitutes,
	}
}

func newYeast(d format.YeastDraft) schema.RecipeYeast {
	return schema.RecipeYeast{
		KindRaw:        d.Kind,
		Lab:            d.Lab,
		ProductID:      d.ProductID,
		Form:           d.Form,
		Type:           d.Type,
		Amount:         d.Amount,
		AmountIsWeight: d.AmountIsWeight,
		AttenuationMin: d.AttenuationMin,
		AttenuationMax: d.AttenuationMax,
		TemperatureMin: d.TemperatureMin,
		TemperatureMax: d.TemperatureMax,
		Flocculation:   d.Flocculation,
	}
}
