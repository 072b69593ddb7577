// Package beerxml reads recipes in the BeerXML 1.0 format and its
// common extensions (EST_OG, EST_COLOR and similar display fields).
package beerxml

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/brewdb/pkg/format"
	"github.com/gnames/brewdb/pkg/format/xmlnode"
	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/gnames/brewdb/pkg/schema"
)

var (
	hopUses = map[string]string{
		"mash":       schema.HopUseMash,
		"first wort": schema.HopUseFirstWort,
		"boil":       schema.HopUseBoil,
		"aroma":      schema.HopUseAroma,
		"dry hop":    schema.HopUseDryHop,
	}
	hopTypes = map[string]string{
		"aroma":     schema.HopTypeAroma,
		"bittering": schema.HopTypeBittering,
		"both":      schema.HopTypeDualPurpose,
	}
	hopForms = map[string]string{
		"pellet":  schema.HopFormPellet,
		"plug":    schema.HopFormPlug,
		"leaf":    schema.HopFormLeaf,
		"extract": schema.HopFormExtract,
	}
	fermentableForms = map[string]string{
		"grain":       schema.FermentableGrain,
		"sugar":       schema.FermentableSugar,
		"extract":     schema.FermentableExtract,
		"dry extract": schema.FermentableDryExtract,
		"adjunct":     schema.FermentableAdjunct,
		"fruit":       schema.FermentableAdjunct,
	}
	yeastForms = map[string]string{
		"liquid":  schema.YeastLiquid,
		"dry":     schema.YeastDry,
		"slant":   schema.YeastSlant,
		"culture": schema.YeastCulture,
	}
	yeastTypes = map[string]string{
		"ale":       schema.YeastAle,
		"lager":     schema.YeastLager,
		"wheat":     schema.YeastWheat,
		"wine":      schema.YeastWine,
		"champagne": schema.YeastChampagne,
	}
	flocculations = map[string]string{
		"low":       schema.FlocculationLow,
		"medium":    schema.FlocculationMedium,
		"high":      schema.FlocculationHigh,
		"very high": schema.FlocculationVeryHigh,
	}
)

const (
	// DefaultSpargeTemp is used when the mash does not state one, °C.
	DefaultSpargeTemp = 78.0

	aromaMinutes  = 5.0
	dryHopMinutes = 24 * 60.0
)

var dateLayouts = []string{
	"2006-01-02",
	"02 Jan 2006",
	"2 Jan 2006",
	"01/02/2006",
	"02.01.2006",
}

var reNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)

type parser struct{}

// New creates a BeerXML parser.
func New() format.Parser {
	return parser{}
}

func (parser) Format() format.Format {
	return format.BeerXML
}

// Parse reads a document with exactly one recipe.
func (parser) Parse(data []byte) (*format.ParseResult, error) {
	root, err := xmlnode.Parse(data, xmlnode.Lower)
	if err != nil {
		return nil, format.MalformedInputError(format.BeerXML,
			"document is not readable XML", err)
	}

	containers := root.FindAll("recipes")
	if len(containers) == 0 {
		return nil, format.MalformedInputError(format.BeerXML,
			"RECIPES element is missing", nil)
	}

	recipes := containers[0].ChildrenByTag("recipe")
	switch len(recipes) {
	case 0:
		return nil, format.MalformedInputError(format.BeerXML,
			"document has no recipe", nil)
	case 1:
	default:
		return nil, format.MalformedInputError(format.BeerXML,
			"document has more than one recipe", nil)
	}

	rec := recipes[0]
	res := &format.ParseResult{
		Fermentables: fermentables(rec),
		Hops:         hops(rec),
		Yeasts:       yeasts(rec),
	}
	parseRecipe(&res.Recipe, rec)

	r := &res.Recipe
	if r.OG == nil {
		r.OG = res.EstimateOG()
	}
	if r.FG == nil {
		r.FG = res.EstimateFG(r.OG)
	}
	if r.SRM == nil && r.EBC == nil {
		r.SRM = res.EstimateSRM()
	}
	if r.IBU == nil {
		r.IBU = res.EstimateIBU(r.OG)
	}
	return res, nil
}

func parseRecipe(r *format.RecipeDraft, rec *xmlnode.Node) {
	r.Name = format.String(rec.Value("name"))
	r.Author = format.String(rec.Value("brewer"))
	r.Created = date(rec.Value("date"))
	r.StyleRaw = format.Kind(rec.Path("style").Value("name"))

	r.ExtractEfficiency = number(rec.Value("efficiency"))
	r.OG = first(number(rec.Value("og")), number(rec.Value("est_og")))
	r.FG = first(number(rec.Value("fg")), number(rec.Value("est_fg")))
	r.ABV = first(number(rec.Value("abv")), number(rec.Value("est_abv")))
	r.IBU = format.Positive(
		first(number(rec.Value("ibu")), number(rec.Value("est_ibu"))),
	)

	r.SRM, r.EBC = color(rec.Value("color"))
	if r.SRM == nil && r.EBC == nil {
		r.SRM, r.EBC = color(rec.Value("est_color"))
	}

	r.MashWater, r.SpargeWater = mashWater(rec.Child("mash"))
	r.CastOutWort = format.Positive(number(rec.Value("batch_size")))
	r.BoilingTime = number(rec.Value("boil_time"))
}

// color reads a value in SRM unless it ends with a unit.
func color(s string) (srm, ebc *float64) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return nil, nil
	case strings.HasSuffix(s, "ebc"):
		return nil, format.Float(strings.TrimSuffix(s, "ebc"))
	case strings.HasSuffix(s, "srm"):
		return format.Float(strings.TrimSuffix(s, "srm")), nil
	default:
		return format.Float(s), nil
	}
}

func mashWater(mash *xmlnode.Node) (water, sparge *float64) {
	if mash == nil {
		return nil, nil
	}

	spargeTemp := DefaultSpargeTemp
	if t := number(mash.Value("sparge_temp")); t != nil {
		spargeTemp = *t
	}

	steps := mash.Path("mash_steps").ChildrenByTag("mash_step")
	if len(steps) > 0 {
		water = format.Positive(number(steps[0].Value("infuse_amount")))
	}

	var sum float64
	for _, v := range steps {
		temp := number(v.Value("step_temp"))
		amount := number(v.Value("infuse_amount"))
		if temp != nil && amount != nil && *temp >= spargeTemp {
			sum += *amount
		}
	}
	if sum > 0 {
		sparge = &sum
	}
	return water, sparge
}

func fermentables(rec *xmlnode.Node) []format.FermentableDraft {
	var res []format.FermentableDraft
	for _, v := range rec.Path("fermentables").ChildrenByTag("fermentable") {
		res = append(res, format.FermentableDraft{
			Kind:     normalize.Kind(v.Value("name")),
			Amount:   format.Scale(number(v.Value("amount")), 1000),
			Form:     format.Lookup(fermentableForms, v.Value("type")),
			Origin:   format.Kind(v.Value("origin")),
			Lovibond: number(v.Value("color")),
			Yield:    number(v.Value("yield")),
		})
	}
	return res
}

func hops(rec *xmlnode.Node) []format.HopDraft {
	var res []format.HopDraft
	for _, v := range rec.Path("hops").ChildrenByTag("hop") {
		h := format.HopDraft{
			Kind:          normalize.Kind(v.Value("name")),
			Amount:        format.Scale(number(v.Value("amount")), 1000),
			Time:          number(v.Value("time")),
			Type:          format.Lookup(hopTypes, v.Value("type")),
			Form:          format.Lookup(hopForms, v.Value("form")),
			Alpha:         number(v.Value("alpha")),
			Beta:          number(v.Value("beta")),
			HSI:           number(v.Value("hsi")),
			Humulene:      number(v.Value("humulene")),
			Caryophyllene: number(v.Value("caryophyllene")),
			Cohumulone:    number(v.Value("cohumulone")),
			Myrcene:       number(v.Value("myrcene")),
			Substitutes:   format.Kind(v.Value("substitutes")),
		}
		h.Use = hopUse(v.Value("use"), h.Time)
		res = append(res, h)
	}
	return res
}

func hopUse(raw string, minutes *float64) *string {
	if use := format.Lookup(hopUses, raw); use != nil {
		return use
	}

	res := schema.HopUseBoil
	if minutes != nil {
		switch {
		case *minutes <= aromaMinutes:
			res = schema.HopUseAroma
		case *minutes > dryHopMinutes:
			res = schema.HopUseDryHop
		}
	}
	return &res
}

func yeasts(rec *xmlnode.Node) []format.YeastDraft {
	var res []format.YeastDraft
	for _, v := range rec.Path("yeasts").ChildrenByTag("yeast") {
		att := number(v.Value("attenuation"))
		res = append(res, format.YeastDraft{
			Kind:           normalize.Kind(v.Value("name")),
			Lab:            format.String(v.Value("laboratory")),
			ProductID:      productID(v.Value("product_id")),
			Form:           format.Lookup(yeastForms, v.Value("form")),
			Type:           format.Lookup(yeastTypes, v.Value("type")),
			Amount:         format.Scale(number(v.Value("amount")), 1000),
			AmountIsWeight: boolean(v.Value("amount_is_weight")),
			AttenuationMin: att,
			AttenuationMax: att,
			TemperatureMin: number(v.Value("min_temperature")),
			TemperatureMax: number(v.Value("max_temperature")),
			Flocculation:   format.Lookup(flocculations, v.Value("flocculation")),
		})
	}
	return res
}

// productID renders integral numeric ids without a fraction.
func productID(s string) *string {
	res := format.String(s)
	if res == nil {
		return nil
	}
	if f, err := strconv.ParseFloat(*res, 64); err == nil &&
		math.Abs(f) < 1<<53 && f == math.Round(f) {
		return format.Ptr(strconv.FormatInt(int64(f), 10))
	}
	return res
}

// number reads the leading number of a value, ignoring units such as
// "%", "vol", "SG" or "IBUs".
func number(s string) *float64 {
	s = strings.TrimSpace(s)
	if f := format.Float(s); f != nil {
		return f
	}
	m := reNumber.FindString(s)
	if m == "" {
		return nil
	}
	return format.Float(m)
}

func boolean(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return format.Ptr(true)
	case "false", "0", "no":
		return format.Ptr(false)
	}
	return nil
}

func date(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, v := range dateLayouts {
		if t, err := time.Parse(v, s); err == nil {
			return &t
		}
	}
	return nil
}

func first(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
