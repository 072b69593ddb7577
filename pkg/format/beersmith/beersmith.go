// Package beersmith reads recipes exported by BeerSmith. The format
// stores every value in its own element with a prefixed name
// (F_R_NAME, F_H_ALPHA) and uses US units.
package beersmith

import (
	"regexp"
	"strings"
	"time"

	"github.com/gnames/brewdb/pkg/format"
	"github.com/gnames/brewdb/pkg/format/xmlnode"
	"github.com/gnames/brewdb/pkg/formulas"
	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/gnames/brewdb/pkg/schema"
)

// Codes of enumerations are indices in these tables.
var (
	hopTypes = []string{
		schema.HopTypeBittering, schema.HopTypeAroma, schema.HopTypeDualPurpose,
	}
	hopForms = []string{
		schema.HopFormPellet, schema.HopFormPlug, schema.HopFormLeaf,
	}
	hopUses = []string{
		schema.HopUseBoil, schema.HopUseDryHop, schema.HopUseMash,
		schema.HopUseFirstWort, schema.HopUseAroma,
	}
	fermentableForms = []string{
		schema.FermentableGrain, schema.FermentableExtract,
		schema.FermentableSugar, schema.FermentableAdjunct,
		schema.FermentableDryExtract,
	}
	flocculations = []string{
		schema.FlocculationLow, schema.FlocculationMedium,
		schema.FlocculationHigh, schema.FlocculationVeryHigh,
	}
	yeastTypes = []string{
		schema.YeastAle, schema.YeastLager, schema.YeastWine,
		schema.YeastChampagne, schema.YeastWheat,
	}
	yeastForms = []string{
		schema.YeastLiquid, schema.YeastDry, schema.YeastSlant,
		schema.YeastCulture,
	}
)

const (
	// placeholder readings BeerSmith stores when nothing was measured
	placeholderOG = 1.046
	placeholderFG = 1.010

	// date BeerSmith uses for a missing value
	noDate = "1969-12-31"

	// hops boiled this long or shorter are aroma additions
	aromaMinutes = 5.0
)

var (
	reTag   = regexp.MustCompile(`^f_(?:\w{1,2}_)?(.+)$`)
	reSubst = regexp.MustCompile(`Subst\w*:(.+)`)
)

// Tag converts a BeerSmith element name to a plain field name.
func Tag(s string) string {
	s = strings.ToLower(s)
	if s == "_mod_" {
		return "last_modified"
	}
	if m := reTag.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

type parser struct{}

// New creates a BeerSmith parser.
func New() format.Parser {
	return parser{}
}

func (parser) Format() format.Format {
	return format.BeerSmith
}

// Parse reads a document with exactly one recipe.
func (p parser) Parse(data []byte) (*format.ParseResult, error) {
	root, err := xmlnode.Parse(data, Tag)
	if err != nil {
		return nil, format.MalformedInputError(format.BeerSmith,
			"document is not readable XML", err)
	}

	recipes := root.FindAll("recipe")
	switch len(recipes) {
	case 0:
		return nil, format.MalformedInputError(format.BeerSmith,
			"recipe element is missing", nil)
	case 1:
	default:
		return nil, format.MalformedInputError(format.BeerSmith,
			"document has more than one recipe", nil)
	}

	rec := node{recipes[0]}
	res := &format.ParseResult{}
	p.parseRecipe(&res.Recipe, rec)
	res.Fermentables = fermentables(rec)
	res.Hops = hops(rec)
	res.Yeasts = yeasts(rec)

	if res.Recipe.OG == nil {
		res.Recipe.OG = res.EstimateOG()
	}
	if res.Recipe.FG == nil {
		res.Recipe.FG = res.EstimateFG(res.Recipe.OG)
	}
	res.Recipe.SRM = res.EstimateSRM()
	res.Recipe.IBU = res.EstimateIBU(res.Recipe.OG)
	return res, nil
}

func (parser) parseRecipe(r *format.RecipeDraft, rec node) {
	r.Name = rec.str("name")
	r.Author = rec.str("brewer")
	created := rec.value("date")
	if created == "" || created == noDate {
		created = rec.value("last_modified")
	}

	if style := rec.child("style"); style.Node != nil {
		r.StyleRaw = format.Kind(style.value("name"))
	}

	r.OG = rec.float("og_measured")
	r.FG = rec.float("fg_measured")
	if r.OG != nil && r.FG != nil &&
		*r.OG == placeholderOG && *r.FG == placeholderFG {
		r.OG, r.FG = nil, nil
	}

	r.MashWater, r.SpargeWater = mashWater(rec)

	var batchOz *float64
	if eq := rec.child("equipment"); eq.Node != nil {
		if created == "" || created == noDate {
			created = eq.value("last_modified")
		}
		r.BoilingTime = eq.float("boil_time")
		r.ExtractEfficiency = eq.float("efficiency")
		batchOz = format.Positive(eq.float("batch_vol"))
	}
	if r.ExtractEfficiency == nil {
		r.ExtractEfficiency = rec.float("old_efficiency")
	}

	if batchOz == nil {
		batchOz = format.Positive(rec.float("volume_measured"))
	}
	if batchOz == nil {
		batchOz = format.Positive(rec.float("final_vol_measured"))
	}
	r.CastOutWort = format.Convert(batchOz, formulas.FluidOuncesToLiters)

	if created != "" && created != noDate {
		if t, err := time.Parse("2006-01-02", created); err == nil {
			r.Created = &t
		}
	}
}

// mashWater returns the infusion of the first step and the sum of
// infusions at or above the sparge temperature.
func mashWater(rec node) (mash, sparge *float64) {
	m := rec.child("mash")
	if m.Node == nil {
		return nil, nil
	}

	steps := m.Path("steps", "data")
	var stepNodes []node
	if steps != nil {
		for _, v := range steps.Children {
			stepNodes = append(stepNodes, node{v})
		}
	}

	if len(stepNodes) > 0 {
		mash = format.Convert(stepNodes[0].float("infusion"),
			formulas.FluidOuncesToLiters)
	}

	spargeTemp := m.float("sparge_temp")
	if spargeTemp == nil {
		return mash, nil
	}

	var sum float64
	for _, v := range stepNodes {
		temp := v.float("step_temp")
		water := v.float("infusion")
		if temp != nil && water != nil && *temp >= *spargeTemp {
			sum += *water
		}
	}
	if sum != 0 {
		sparge = format.Ptr(formulas.FluidOuncesToLiters(sum))
	}
	return mash, sparge
}

func ingredients(rec node, tag string) []node {
	data := rec.Path("ingredients", "data")
	var res []node
	for _, v := range data.ChildrenByTag(tag) {
		res = append(res, node{v})
	}
	return res
}

func fermentables(rec node) []format.FermentableDraft {
	var res []format.FermentableDraft
	for _, v := range ingredients(rec, "grain") {
		res = append(res, format.FermentableDraft{
			Kind:     normalize.Kind(v.value("name")),
			Amount:   format.Convert(v.float("amount"), formulas.OuncesToGrams),
			Form:     format.Index(fermentableForms, v.int("type")),
			Origin:   format.Kind(v.value("origin")),
			Lovibond: v.float("color"),
			Yield:    v.float("yield"),
		})
	}
	return res
}

func hops(rec node) []format.HopDraft {
	var res []format.HopDraft
	for _, v := range ingredients(rec, "hops") {
		h := format.HopDraft{
			Kind:   normalize.Kind(v.value("name")),
			Amount: format.Convert(v.float("amount"), formulas.OuncesToGrams),
			Use:    format.Index(hopUses, v.int("use")),
			Type:   format.Index(hopTypes, v.int("type")),
			Form:   format.Index(hopForms, v.int("form")),
			Alpha:  v.float("alpha"),
			Beta:   v.float("beta"),
			HSI:    v.float("hsi"),

			IBUContribution: v.float("ibu_contrib"),
		}
		if h.Use == nil {
			h.Use = format.Ptr(schema.HopUseBoil)
		}

		if m := reSubst.FindStringSubmatch(v.value("notes")); m != nil {
			h.Substitutes = format.String(m[1])
		}

		if *h.Use != schema.HopUseDryHop {
			h.Time = v.float("boil_time")
		}

		if days := v.float("dry_hop_time"); days != nil && *days > 0 {
			h.Use = format.Ptr(schema.HopUseDryHop)
			h.Time = format.Ptr(*days * 24 * 60)
		}

		if *h.Use == schema.HopUseBoil && h.Time != nil && *h.Time <= aromaMinutes {
			h.Use = format.Ptr(schema.HopUseAroma)
		}

		res = append(res, h)
	}
	return res
}

func yeasts(rec node) []format.YeastDraft {
	var res []format.YeastDraft
	for _, v := range ingredients(rec, "yeast") {
		res = append(res, format.YeastDraft{
			Kind:           normalize.Kind(v.value("name")),
			Lab:            v.str("lab"),
			ProductID:      v.str("product_id"),
			Form:           format.Index(yeastForms, v.int("form")),
			Type:           format.Index(yeastTypes, v.int("type")),
			AttenuationMin: v.float("min_attenuation"),
			AttenuationMax: v.float("max_attenuation"),
			Flocculation:   format.Index(flocculations, v.int("flocculation")),
			TemperatureMin: format.Convert(v.float("min_temp"),
				formulas.FahrenheitToCelsius),
			TemperatureMax: format.Convert(v.float("max_temp"),
				formulas.FahrenheitToCelsius),
		})
	}
	return res
}

// node adds typed accessors to xmlnode.Node.
type node struct {
	*xmlnode.Node
}

func (n node) child(tag string) node {
	return node{n.Child(tag)}
}

func (n node) value(tag string) string {
	return n.Value(tag)
}

func (n node) str(tag string) *string {
	return format.String(n.Value(tag))
}

func (n node) float(tag string) *float64 {
	return format.Float(n.Value(tag))
}

func (n node) int(tag string) *int {
	return format.Int(n.Value(tag))
}
