package mapping

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/gnames/brewdb/pkg/schema"
)

var reProductToken = regexp.MustCompile(`^[\w-]{2,10}$`)

func brandVariants(name string) []string {
	return normalize.TranslitVariants(strings.ToLower(strings.TrimSpace(name)))
}

// brandClean puts the lab in front of the yeast name unless the name
// already mentions it. Labs of one or two letters are ignored.
func brandClean(it Item) string {
	s := it.Name
	if utf8.RuneCountInString(it.Lab) > 2 && !strings.Contains(s, it.Lab) {
		s = it.Lab + " " + s
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// NewYeastBrandMapper creates a mapper from yeast names to the lab or the
// brand that sells them.
func NewYeastBrandMapper(yeasts []*schema.Yeast) (*GenericMapper[string], error) {
	m := newGenericMapper[string](brandVariants, brandClean, false)
	for _, v := range yeasts {
		if v.Lab != "" {
			if err := m.names.Add(v.Lab, v.Lab); err != nil {
				return nil, err
			}
			if v.AltLab != nil {
				if err := m.addList(*v.AltLab, v.Lab); err != nil {
					return nil, err
				}
			}
		}
		if v.Brand != nil && *v.Brand != "" {
			if err := m.names.Add(*v.Brand, *v.Brand); err != nil {
				return nil, err
			}
			if v.AltBrand != nil {
				if err := m.addList(*v.AltBrand, *v.Brand); err != nil {
					return nil, err
				}
			}
		}
	}
	return m, nil
}

// productIDVariants expands a short code into its spellings and leaves
// longer text as it is.
func productIDVariants(name string) []string {
	name = normalize.Normalize(name, normalize.Short)
	if reProductToken.MatchString(name) {
		return normalize.ProductIDVariants(name)
	}
	return []string{name}
}

func productIDClean(it Item) string {
	s := it.ProductID
	if s == "" {
		s = it.Name
	}
	return normalize.Normalize(s, normalize.Short)
}

func newProductIDMapper(yeasts []*schema.Yeast) (*GenericMapper[*schema.Yeast], error) {
	m := newGenericMapper[*schema.Yeast](productIDVariants, productIDClean, false)
	for _, v := range yeasts {
		if err := m.names.Add(*v.ProductID, v); err != nil {
			return nil, err
		}
		if v.AltProductID != nil {
			if err := m.addList(*v.AltProductID, v); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func productNameVariants(name string) []string {
	var res []string
	for _, v := range normalize.TranslitVariants(name) {
		res = append(res, v)
		if strings.Contains(v, " yeast") {
			res = append(res, strings.ReplaceAll(v, " yeast", ""))
		}
	}
	return res
}

func productNameClean(it Item) string {
	return strings.ToLower(strings.TrimSpace(it.Name))
}

func newProductNameMapper(yeasts []*schema.Yeast) (*GenericMapper[*schema.Yeast], error) {
	m := newGenericMapper[*schema.Yeast](productNameVariants, productNameClean, true)
	if err := addSources(m, yeasts); err != nil {
		return nil, err
	}
	return m, nil
}

// YeastMapper finds the brand of a yeast first and then the product
// within that brand.
type YeastMapper struct {
	brands  *GenericMapper[string]
	byBrand map[string]*GenericMapper[*schema.Yeast]
}

// Map implements Mapper. A recognized brand without a matching product
// is not a match.
func (m *YeastMapper) Map(it Item) (*schema.Yeast, bool) {
	brand, ok := m.brands.Map(it)
	if !ok {
		return nil, false
	}
	sub, ok := m.byBrand[brand]
	if !ok {
		return nil, false
	}
	return sub.Map(it)
}

// groupByBrand lists yeasts under their lab and under their brand.
func groupByBrand(
	yeasts []*schema.Yeast,
	keep func(*schema.Yeast) bool,
) ([]string, map[string][]*schema.Yeast) {
	var keys []string
	res := make(map[string][]*schema.Yeast)
	add := func(key string, y *schema.Yeast) {
		if _, ok := res[key]; !ok {
			keys = append(keys, key)
		}
		res[key] = append(res[key], y)
	}
	for _, v := range yeasts {
		if !keep(v) {
			continue
		}
		add(v.Lab, v)
		if v.Brand != nil && *v.Brand != "" {
			add(*v.Brand, v)
		}
	}
	return keys, res
}

func newYeastMapper(
	brands *GenericMapper[string],
	yeasts []*schema.Yeast,
	keep func(*schema.Yeast) bool,
	build func([]*schema.Yeast) (*GenericMapper[*schema.Yeast], error),
) (*YeastMapper, error) {
	res := &YeastMapper{
		brands:  brands,
		byBrand: make(map[string]*GenericMapper[*schema.Yeast]),
	}
	keys, groups := groupByBrand(yeasts, keep)
	for _, k := range keys {
		m, err := build(groups[k])
		if err != nil {
			return nil, err
		}
		res.byBrand[k] = m
	}
	return res, nil
}

// NewYeastProductIDMapper matches product codes within a brand. Yeasts
// without a product id are not indexed.
func NewYeastProductIDMapper(
	brands *GenericMapper[string],
	yeasts []*schema.Yeast,
) (*YeastMapper, error) {
	hasID := func(y *schema.Yeast) bool {
		return y.ProductID != nil && *y.ProductID != ""
	}
	return newYeastMapper(brands, yeasts, hasID, newProductIDMapper)
}

// NewYeastProductNameMapper matches product names within a brand.
// Names shared by several products of a brand are ambiguous and never
// match.
func NewYeastProductNameMapper(
	brands *GenericMapper[string],
	yeasts []*schema.Yeast,
) (*YeastMapper, error) {
	all := func(*schema.Yeast) bool { return true }
	return newYeastMapper(brands, yeasts, all, newProductNameMapper)
}
