package schema

import "github.com/gnames/brewdb/pkg/formulas"

// DeriveMissing fills values of a recipe that can be calculated from
// other known values. Known values are never overwritten.
func (r *Recipe) DeriveMissing() {
	derive(r.EBC, &r.SRM, formulas.EBCToSRM)
	derive(r.SRM, &r.EBC, formulas.SRMToEBC)
	derive(r.OriginalPlato, &r.OG, formulas.PlatoToGravity)
	derive(r.OG, &r.OriginalPlato, formulas.GravityToPlato)

	if r.FG == nil && r.FinalPlato == nil &&
		r.OriginalPlato != nil && r.ABV != nil {
		fp := formulas.FinalPlatoFromABV(*r.ABV, *r.OriginalPlato)
		r.FinalPlato = &fp
	}

	derive(r.FinalPlato, &r.FG, formulas.PlatoToGravity)
	derive(r.FG, &r.FinalPlato, formulas.GravityToPlato)

	if r.ABV == nil && r.OG != nil && r.FG != nil {
		abv := formulas.ABV(*r.OG, *r.FG)
		r.ABV = &abv
	}
}

// DeriveMissing fills the color of a fermentable in the missing unit.
func (f *RecipeFermentable) DeriveMissing() {
	derive(f.Lovibond, &f.EBC, formulas.LovibondToEBC)
	derive(f.EBC, &f.Lovibond, formulas.EBCToLovibond)
}

func derive(from *float64, to **float64, fn func(float64) float64) {
	if *to != nil || from == nil {
		return
	}
	v := fn(*from)
	*to = &v
}
