// Package mmum reads recipes exported by the "Maische Malz und Mehr"
// recipe database. A recipe is a flat JSON object with German keys and
// numbered ingredient fields (Malz1, Malz1_Menge, Hopfen_1_Sorte).
package mmum

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/brewdb/pkg/format"
	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/gnfmt"
)

const (
	dateLayout = "02.01.2006"

	// boil time label of hops added at flameout
	whirlpool = "Whirlpool"

	aromaMinutes = 5.0
)

// hop groups in the order they are read
var hopGroups = []struct {
	prefix string
	use    string
}{
	{"Hopfen_VWH", schema.HopUseFirstWort},
	{"Hopfen", schema.HopUseBoil},
	{"Stopfhopfen", schema.HopUseDryHop},
}

type parser struct {
	enc gnfmt.GNjson
}

// New creates a MMuM parser.
func New() format.Parser {
	return parser{}
}

func (parser) Format() format.Format {
	return format.MMuM
}

// Parse reads one recipe object.
func (p parser) Parse(data []byte) (*format.ParseResult, error) {
	var obj map[string]any
	if err := p.enc.Decode(data, &obj); err != nil {
		return nil, format.MalformedInputError(format.MMuM,
			"document is not a JSON object", err)
	}
	if obj == nil {
		return nil, format.MalformedInputError(format.MMuM,
			"document is empty", nil)
	}

	doc := fields(obj)
	res := &format.ParseResult{
		Fermentables: doc.fermentables(),
		Hops:         doc.hops(),
		Yeasts:       doc.yeasts(),
	}
	doc.recipe(&res.Recipe)
	return res, nil
}

// fields gives typed access to a decoded recipe object.
type fields map[string]any

func (f fields) recipe(r *format.RecipeDraft) {
	r.Name = f.str("Name")
	if d := f.str("Datum"); d != nil {
		if t, err := time.Parse(dateLayout, *d); err == nil {
			r.Created = &t
		}
	}
	r.StyleRaw = f.str("Sorte")

	r.ExtractEfficiency = f.float("Sudhausausbeute")
	r.OriginalPlato = f.float("Stammwuerze")
	r.ABV = f.float("Alkohol")
	r.EBC = f.int("Farbe")
	r.IBU = f.int("Bittere")

	r.MashWater = f.float("Infusion_Hauptguss")
	r.SpargeWater = f.float("Nachguss")

	r.CastOutWort = f.int("Ausschlagswuerze")
	r.BoilingTime = f.int("Kochzeit_Wuerze")
}

func (f fields) fermentables() []format.FermentableDraft {
	var res []format.FermentableDraft
	for i := 1; ; i++ {
		key := fmt.Sprintf("Malz%d", i)
		kind := f.str(key)
		if kind == nil {
			break
		}

		amount := f.float(key + "_Menge")
		if unit := f.str(key + "_Einheit"); unit != nil && *unit == "kg" {
			amount = format.Scale(amount, 1000)
		}
		res = append(res, format.FermentableDraft{
			Kind:   normalize.Kind(*kind),
			Amount: amount,
		})
	}
	return res
}

func (f fields) hops() []format.HopDraft {
	var res []format.HopDraft
	for _, g := range hopGroups {
		for i := 1; ; i++ {
			key := fmt.Sprintf("%s_%d_", g.prefix, i)
			kind := f.str(key + "Sorte")
			if kind == nil {
				break
			}

			h := format.HopDraft{
				Kind:   normalize.Kind(*kind),
				Alpha:  f.float(key + "alpha"),
				Amount: f.float(key + "Menge"),
			}
			h.Use, h.Time = f.boilTime(key + "Kochzeit")
			if g.use != schema.HopUseBoil {
				h.Use = format.Ptr(g.use)
			}
			res = append(res, h)
		}
	}
	return res
}

// boilTime reads the boil time of a kettle hop. Whirlpool and short
// additions are aroma hops.
func (f fields) boilTime(key string) (use *string, minutes *float64) {
	use = format.Ptr(schema.HopUseBoil)
	raw := f.str(key)
	if raw == nil {
		return use, nil
	}
	if *raw == whirlpool {
		return format.Ptr(schema.HopUseAroma), format.Ptr(0.0)
	}

	minutes = f.float(key)
	if minutes == nil {
		return use, nil
	}
	minutes = format.Ptr(math.Ceil(*minutes))
	if *minutes < aromaMinutes {
		use = format.Ptr(schema.HopUseAroma)
	}
	return use, minutes
}

func (f fields) yeasts() []format.YeastDraft {
	kind := f.str("Hefe")
	if kind == nil {
		return nil
	}
	return []format.YeastDraft{{Kind: normalize.Kind(*kind)}}
}

// str returns trimmed text of a string or number value.
func (f fields) str(key string) *string {
	switch v := f[key].(type) {
	case string:
		return format.String(v)
	case float64:
		return format.Ptr(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		return format.Ptr(strconv.FormatBool(v))
	}
	return nil
}

// float reads a number that may be written as a string.
func (f fields) float(key string) *float64 {
	switch v := f[key].(type) {
	case float64:
		return &v
	case string:
		return format.Float(strings.ReplaceAll(v, ",", "."))
	}
	return nil
}

// int reads a number rounded to the nearest integer.
func (f fields) int(key string) *float64 {
	v := f.float(key)
	if v == nil {
		return nil
	}
	return format.Ptr(math.Round(*v))
}
