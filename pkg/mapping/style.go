package mapping

import (
	"strings"

	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/gnames/brewdb/pkg/schema"
)

var styleChain = normalize.Chain(normalize.StyleVariants)

// StyleVariants expands a style name.
func StyleVariants(name string) []string {
	return styleChain(normalize.StyleNormalize(name))
}

// StyleClean prepares a style name or a recipe name for matching.
func StyleClean(raw string) string {
	return strings.TrimSpace(normalize.StyleNormalize(raw))
}

func newStyleMapper(
	styles []*schema.Style,
	clean func(Item) string,
	exactOnly bool,
) (*GenericMapper[*schema.Style], error) {
	m := newGenericMapper[*schema.Style](StyleVariants, clean, false)
	m.exactOnly = exactOnly
	if err := addSources(m, styles); err != nil {
		return nil, err
	}
	return m, nil
}

func byStyle(it Item) string      { return StyleClean(it.Name) }
func byRecipeName(it Item) string { return StyleClean(it.RecipeName) }

// LeafStyles returns styles that are not categories. Only those can be
// assigned to a recipe.
func LeafStyles(styles []*schema.Style) []*schema.Style {
	var res []*schema.Style
	for _, v := range styles {
		if !v.IsCategory() {
			res = append(res, v)
		}
	}
	return res
}

// StyleMapper matches the style stated in a recipe. When the matched
// style has sub-styles, the recipe name may pick one of them.
type StyleMapper struct {
	assigned  *GenericMapper[*schema.Style]
	subStyles map[string]*GenericMapper[*schema.Style]
}

// NewStyleMapper creates a StyleMapper from all styles of a catalog.
func NewStyleMapper(styles []*schema.Style) (*StyleMapper, error) {
	leaves := LeafStyles(styles)
	assigned, err := newStyleMapper(leaves, byStyle, false)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]*schema.Style)
	for _, v := range leaves {
		children[*v.ParentID] = append(children[*v.ParentID], v)
	}

	res := &StyleMapper{
		assigned:  assigned,
		subStyles: make(map[string]*GenericMapper[*schema.Style]),
	}
	for _, v := range leaves {
		subs, ok := children[v.ID]
		if !ok {
			continue
		}
		// sub-styles are only picked by an exact recipe name
		m, err := newStyleMapper(subs, byRecipeName, true)
		if err != nil {
			return nil, err
		}
		res.subStyles[v.ID] = m
	}
	return res, nil
}

// Map implements Mapper.
func (m *StyleMapper) Map(it Item) (*schema.Style, bool) {
	style, ok := m.assigned.Map(it)
	if !ok {
		return nil, false
	}
	if sub, ok := m.subStyles[style.ID]; ok {
		if s, ok := sub.Map(it); ok {
			return s, true
		}
	}
	return style, true
}

// NewRecipeNameStyleMapper matches recipe names against all leaf styles.
// With exactOnly the name has to be one of the style names.
func NewRecipeNameStyleMapper(
	styles []*schema.Style,
	exactOnly bool,
) (*GenericMapper[*schema.Style], error) {
	return newStyleMapper(LeafStyles(styles), byRecipeName, exactOnly)
}

// StyleLimits decides if a recipe fits the ranges of a matched style.
type StyleLimits struct {
	// Enabled turns the check on.
	Enabled bool

	// Lower and Upper widen style ranges: a value passes if it lies in
	// [min*Lower, max*Upper].
	Lower float64
	Upper float64

	// ColorCeiling is the SRM maximum that counts as unbounded.
	ColorCeiling float64
}

// DefaultStyleLimits returns the tolerance used unless configured
// otherwise.
func DefaultStyleLimits() StyleLimits {
	return StyleLimits{
		Enabled:      true,
		Lower:        0.9,
		Upper:        1.1,
		ColorCeiling: 40,
	}
}

// Allows checks ABV, IBU and SRM of an item against the style. Absent
// values pass.
func (l StyleLimits) Allows(s *schema.Style, it Item) bool {
	if !l.Enabled {
		return true
	}

	srmMax := s.SRMMax
	if srmMax != nil && *srmMax >= l.ColorCeiling {
		srmMax = nil
	}

	return l.within(it.ABV, s.ABVMin, s.ABVMax) &&
		l.within(it.IBU, s.IBUMin, s.IBUMax) &&
		l.within(it.SRM, s.SRMMin, srmMax)
}

func (l StyleLimits) within(val, lo, hi *float64) bool {
	if val == nil {
		return true
	}
	if lo != nil && *val < *lo*l.Lower {
		return false
	}
	if hi != nil && *val > *hi*l.Upper {
		return false
	}
	return true
}
