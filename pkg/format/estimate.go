package format

import (
	"github.com/gnames/brewdb/pkg/formulas"
	"github.com/gnames/brewdb/pkg/schema"
)

// DefaultAttenuation is used when no yeast reports its attenuation.
const DefaultAttenuation = 75.0

// EstimateOG calculates original gravity from fermentables. It returns
// nil if the batch volume is unknown or any fermentable lacks amount or
// yield.
func (r *ParseResult) EstimateOG() *float64 {
	liters := r.Recipe.CastOutWort
	if liters == nil || *liters <= 0 || len(r.Fermentables) == 0 {
		return nil
	}

	mashEff := formulas.DefaultMashEfficiency
	if eff := r.Recipe.ExtractEfficiency; eff != nil && *eff > 0 && *eff <= 100 {
		mashEff = *eff / 100
	}

	og := 1.0
	for _, v := range r.Fermentables {
		if v.Yield == nil || v.Amount == nil {
			return nil
		}
		gu := formulas.GravityUnits(*v.Yield, *v.Amount, *liters)
		eff := formulas.AdditionOf(v.Kind).Efficiency(mashEff)
		og += gu * eff / 1000.0
	}
	return &og
}

// EstimateFG calculates final gravity from og and the highest
// attenuation of the yeasts.
func (r *ParseResult) EstimateFG(og *float64) *float64 {
	if og == nil {
		return nil
	}

	var att float64
	for _, v := range r.Yeasts {
		for _, a := range []*float64{v.AttenuationMax, v.AttenuationMin} {
			if a != nil && *a > att {
				att = *a
			}
		}
	}
	if att <= 0 {
		att = DefaultAttenuation
	}

	fg := formulas.FinalGravity(*og, att)
	return &fg
}

// EstimateSRM calculates color with the Morey formula.
func (r *ParseResult) EstimateSRM() *float64 {
	liters := r.Recipe.CastOutWort
	if liters == nil || *liters <= 0 || len(r.Fermentables) == 0 {
		return nil
	}

	var mcu float64
	for _, v := range r.Fermentables {
		if v.Amount == nil || v.Lovibond == nil {
			continue
		}
		mcu += formulas.MaltColorUnits(*v.Amount, *v.Lovibond, *liters)
	}
	if mcu == 0 {
		return nil
	}

	srm := formulas.MoreySRM(mcu)
	return &srm
}

// EstimateIBU sums bitterness reported by hop additions. Without such
// reports it uses the Tinseth formula.
func (r *ParseResult) EstimateIBU(og *float64) *float64 {
	var ibu float64
	for _, v := range r.Hops {
		if v.IBUContribution != nil {
			ibu += *v.IBUContribution
		}
	}
	if ibu != 0 {
		return &ibu
	}

	liters := r.Recipe.CastOutWort
	if og == nil || liters == nil || *liters <= 0 || len(r.Hops) == 0 {
		return nil
	}

	for _, v := range r.Hops {
		if v.Use != nil && *v.Use == schema.HopUseDryHop {
			continue
		}
		if v.Alpha == nil || *v.Alpha == 0 || v.Amount == nil || v.Time == nil {
			continue
		}
		pellet := v.Form != nil && *v.Form == schema.HopFormPellet
		ibu += formulas.TinsethIBU(*og, *liters, *v.Alpha, *v.Amount, *v.Time, pellet)
	}
	if ibu == 0 {
		return nil
	}
	return &ibu
}
