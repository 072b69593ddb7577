// Package iocatalog seeds the catalog of canonical styles, hops,
// fermentables and yeasts from a YAML file.
//
// Records without an id get one generated from their names, so a seed
// file can be re-loaded to update existing entities.
package iocatalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gnames/brewdb/pkg/mapping"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/brewdb/pkg/store"
	"github.com/gnames/gn"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Styles       []styleSeed       `yaml:"styles"`
	Hops         []hopSeed         `yaml:"hops"`
	Fermentables []fermentableSeed `yaml:"fermentables"`
	Yeasts       []yeastSeed       `yaml:"yeasts"`
}

type names struct {
	Name          string  `yaml:"name"`
	AltNames      *string `yaml:"alt_names"`
	AltNamesExtra *string `yaml:"alt_names_extra"`
}

// span is a min/max pair, e.g. `abv: {min: 4.5, max: 6}`.
type span struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

type styleSeed struct {
	ID     string `yaml:"id"`
	names  `yaml:",inline"`
	Parent *string `yaml:"parent"`
	ABV    span    `yaml:"abv"`
	IBU    span    `yaml:"ibu"`
	SRM    span    `yaml:"srm"`
	OG     span    `yaml:"og"`
	FG     span    `yaml:"fg"`
}

type hopSeed struct {
	ID      string `yaml:"id"`
	names   `yaml:",inline"`
	Use     *string `yaml:"use"`
	Country *string `yaml:"country"`
	Alpha   span    `yaml:"alpha"`
}

type fermentableSeed struct {
	ID       string `yaml:"id"`
	names    `yaml:",inline"`
	Category *string  `yaml:"category"`
	Type     *string  `yaml:"type"`
	ColorEBC *float64 `yaml:"color_ebc"`
}

type yeastSeed struct {
	ID           string `yaml:"id"`
	names        `yaml:",inline"`
	Lab          string  `yaml:"lab"`
	AltLab       *string `yaml:"alt_lab"`
	Brand        *string `yaml:"brand"`
	AltBrand     *string `yaml:"alt_brand"`
	ProductID    *string `yaml:"product_id"`
	AltProductID *string `yaml:"alt_product_id"`
	Type         *string `yaml:"type"`
	Form         *string `yaml:"form"`
	Attenuation  span    `yaml:"attenuation"`
}

// Seeder writes catalog files to a store.
type Seeder struct {
	store store.Store
}

// New creates a Seeder.
func New(st store.Store) *Seeder {
	return &Seeder{store: st}
}

// Seed reads a catalog file and upserts all its records in one
// transaction.
func (s *Seeder) Seed(ctx context.Context, path string) (*mapping.Catalog, error) {
	cat, err := Read(path)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx store.Session) error {
		return tx.SaveCatalog(ctx, cat)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Catalog loaded", "path", path,
		"styles", len(cat.Styles),
		"hops", len(cat.Hops),
		"fermentables", len(cat.Fermentables),
		"yeasts", len(cat.Yeasts),
	)
	gn.Info("Loaded <em>%s</em> styles, <em>%s</em> hops, "+
		"<em>%s</em> fermentables and <em>%s</em> yeasts",
		humanize.Comma(int64(len(cat.Styles))),
		humanize.Comma(int64(len(cat.Hops))),
		humanize.Comma(int64(len(cat.Fermentables))),
		humanize.Comma(int64(len(cat.Yeasts))),
	)
	return cat, nil
}

// Read loads a catalog file.
func Read(path string) (*mapping.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, CatalogReadError(path, err)
	}
	var sf seedFile
	if err = yaml.Unmarshal(data, &sf); err != nil {
		return nil, CatalogReadError(path, err)
	}
	return sf.catalog()
}

func (sf *seedFile) catalog() (*mapping.Catalog, error) {
	var res mapping.Catalog
	var err error
	if res.Styles, err = styles(sf.Styles); err != nil {
		return nil, err
	}
	if res.Hops, err = hops(sf.Hops); err != nil {
		return nil, err
	}
	if res.Fermentables, err = fermentables(sf.Fermentables); err != nil {
		return nil, err
	}
	if res.Yeasts, err = yeasts(sf.Yeasts); err != nil {
		return nil, err
	}
	return &res, nil
}

// styleID pads numeric ids of categories to two digits.
func styleID(id string) string {
	if n, err := strconv.Atoi(id); err == nil {
		return fmt.Sprintf("%02d", n)
	}
	return id
}

// gravity accepts gravity points (1048) as well as specific gravity.
func gravity(v *float64) *float64 {
	if v == nil || *v < 2 {
		return v
	}
	res := *v / 1000
	return &res
}

// styles requires parents to be listed before their children.
func styles(seeds []styleSeed) ([]*schema.Style, error) {
	res := make([]*schema.Style, 0, len(seeds))
	ids := make(map[string]struct{})
	for i, v := range seeds {
		label := fmt.Sprintf("styles #%d", i+1)
		if v.ID == "" || v.Name == "" {
			return nil, CatalogSeedError(label, "id and name are required")
		}
		id := styleID(v.ID)
		if _, ok := ids[id]; ok {
			return nil, CatalogSeedError(label, "duplicate id "+id)
		}

		var parent *string
		if v.Parent != nil {
			p := styleID(*v.Parent)
			if _, ok := ids[p]; !ok {
				return nil, CatalogSeedError(label, "unknown parent "+p)
			}
			parent = &p
		}
		ids[id] = struct{}{}

		res = append(res, &schema.Style{
			ID:            id,
			Name:          v.Name,
			AltNames:      v.AltNames,
			AltNamesExtra: v.AltNamesExtra,
			ParentID:      parent,
			ABVMin:        v.ABV.Min,
			ABVMax:        v.ABV.Max,
			IBUMin:        v.IBU.Min,
			IBUMax:        v.IBU.Max,
			SRMMin:        v.SRM.Min,
			SRMMax:        v.SRM.Max,
			OGMin:         gravity(v.OG.Min),
			OGMax:         gravity(v.OG.Max),
			FGMin:         gravity(v.FG.Min),
			FGMax:         gravity(v.FG.Max),
		})
	}
	return res, nil
}

func hops(seeds []hopSeed) ([]*schema.Hop, error) {
	res := make([]*schema.Hop, 0, len(seeds))
	ids := make(map[string]struct{})
	for i, v := range seeds {
		label := fmt.Sprintf("hops #%d", i+1)
		id, err := entityID(label, v.ID, v.Name, schema.CatalogID(v.Name), ids)
		if err != nil {
			return nil, err
		}
		res = append(res, &schema.Hop{
			ID:            id,
			Name:          v.Name,
			AltNames:      v.AltNames,
			AltNamesExtra: v.AltNamesExtra,
			Use:           v.Use,
			Country:       v.Country,
			AlphaMin:      v.Alpha.Min,
			AlphaMax:      v.Alpha.Max,
		})
	}
	return res, nil
}

func fermentables(seeds []fermentableSeed) ([]*schema.Fermentable, error) {
	res := make([]*schema.Fermentable, 0, len(seeds))
	ids := make(map[string]struct{})
	for i, v := range seeds {
		label := fmt.Sprintf("fermentables #%d", i+1)
		id, err := entityID(label, v.ID, v.Name, schema.CatalogID(v.Name), ids)
		if err != nil {
			return nil, err
		}
		res = append(res, &schema.Fermentable{
			ID:            id,
			Name:          v.Name,
			AltNames:      v.AltNames,
			AltNamesExtra: v.AltNamesExtra,
			Category:      v.Category,
			Type:          v.Type,
			ColorEBC:      v.ColorEBC,
		})
	}
	return res, nil
}

func yeasts(seeds []yeastSeed) ([]*schema.Yeast, error) {
	res := make([]*schema.Yeast, 0, len(seeds))
	ids := make(map[string]struct{})
	for i, v := range seeds {
		label := fmt.Sprintf("yeasts #%d", i+1)
		if v.Lab == "" {
			return nil, CatalogSeedError(label, "lab is required")
		}
		y := &schema.Yeast{
			Name:           v.Name,
			AltNames:       v.AltNames,
			AltNamesExtra:  v.AltNamesExtra,
			Lab:            v.Lab,
			AltLab:         v.AltLab,
			Brand:          v.Brand,
			AltBrand:       v.AltBrand,
			ProductID:      v.ProductID,
			AltProductID:   v.AltProductID,
			Type:           v.Type,
			Form:           v.Form,
			AttenuationMin: v.Attenuation.Min,
			AttenuationMax: v.Attenuation.Max,
		}
		generated := schema.YeastID(v.Name, y.BrandName(), v.ProductID)
		id, err := entityID(label, v.ID, v.Name, generated, ids)
		if err != nil {
			return nil, err
		}
		y.ID = id
		res = append(res, y)
	}
	return res, nil
}

// entityID returns the given id or the generated one and registers it.
func entityID(
	label, id, name, generated string,
	ids map[string]struct{},
) (string, error) {
	if name == "" {
		return "", CatalogSeedError(label, "name is required")
	}
	if id == "" {
		id = generated
	}
	if id == "" {
		return "", CatalogSeedError(label, "cannot create id from "+name)
	}
	if _, ok := ids[id]; ok {
		return "", CatalogSeedError(label, "duplicate id "+id)
	}
	ids[id] = struct{}{}
	return id, nil
}
