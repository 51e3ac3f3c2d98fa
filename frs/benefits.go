package frs

import (
	"math"

	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/frs2csv/enum"
	"github.com/carbocation/frs2csv/numeric"
)

// Benefit codes with special handling.
const (
	JSA             = 14
	OtherBenefit    = 30
	WinterFuel      = 62
	FuneralGrant    = 24
	MaternityGrant  = 22
	WidowsPayment   = 60
	DWPLoanIS       = 65
	DWPLoanJSA      = 66
	DWPLoanUC       = 110
	OtherBenefitMax = 90 // BENPD at or above this means a one-off payment
)

// benefits lists, in output column order, the benefit codes that are carried
// into the person table. Codes missing from this list contribute nothing.
var benefits = []struct {
	Code int
	Name string
}{
	{1, "DLA_SC"},
	{2, "DLA_M"},
	{3, "child_benefit"},
	{4, "pension_credit"},
	{5, "state_pension"},
	{6, "BSP"},
	{8, "AFCS"},
	{9, "war_pension"},
	{10, "SDA"},
	{12, "AA"},
	{13, "carers_allowance"},
	{JSA, "JSA"},
	{15, "IIDB"},
	{17, "incapacity_benefit"},
	{19, "income_support"},
	{21, "maternity_allowance"},
	{37, "guardians_allowance"},
	{36, "GTA"},
	{OtherBenefit, "other_benefit"},
	{90, "working_tax_credit"},
	{91, "child_tax_credit"},
	{92, "WTC_lump_sum"},
	{93, "CTC_lump_sum"},
	{94, "housing_benefit"},
	{69, "SFL_IS"},
	{70, "SFL_JSA"},
	{111, "SFL_UC"},
	{WinterFuel, "winter_fuel_allowance"},
	{DWPLoanIS, "DWP_IS"},
	{DWPLoanJSA, "DWP_JSA"},
	{DWPLoanUC, "DWP_UC"},
	{FuneralGrant, "FG"},
	{MaternityGrant, "MG"},
	{WidowsPayment, "widows_payment"},
	{98, "DWP_loan"},
	{99, "LA_loan"},
	{95, "universal_credit"},
	{96, "PIP_DL"},
	{97, "PIP_M"},
}

var jsaSubtypes = []string{"contrib", "income"}

// jsaTypes maps the VAR2 sub-type of a JSA claim to contributory or
// income-based.
var jsaTypes = map[int]string{
	0: "income",
	1: "income",
	2: "income",
	3: "contrib",
	4: "contrib",
	5: "income",
	6: "income",
}

// ParseBenefit adds one benefit claim to the person's specific benefit field
// and to total_benefits. Unknown or unreadable benefit codes are skipped.
func (c *Converter) ParseBenefit(row entity.Row, person *entity.Record) (*entity.Record, error) {
	p := c.Person

	rawCode, ok := numeric.Parse(row.Get("BENEFIT"))
	if !ok || rawCode != math.Trunc(rawCode) {
		return person, nil
	}
	code := int(rawCode)

	field, exists := p.Benefits[code]
	if !exists {
		return person, nil
	}

	amount := numeric.Safe(row.Get("BENAMT"))

	switch {
	case code == OtherBenefit:
		if !equals(row, "PRES", 1) || int(numeric.Safe(row.Get("BENPD"))) >= OtherBenefitMax {
			amount = 0
		}
	case code == FuneralGrant || code == MaternityGrant || code == WidowsPayment:
		amount *= 7.0 / 365
	case code == DWPLoanIS || code == DWPLoanJSA || code == DWPLoanUC:
		if equals(row, "VAR2", 1) {
			amount = 0
		}
	case code == JSA:
		// An unreadable VAR2 is read as 0, like any other missing number.
		subtype := int(numeric.Safe(row.Get("VAR2")))
		jsaType, known := jsaTypes[subtype]
		if !known {
			return nil, &enum.UnknownCodeError{Field: "VAR2", Code: enum.Code(subtype)}
		}
		field = p.JSA[jsaType]
	case code == WinterFuel:
		amount /= 52
	}

	person.Add(p.TotalBenefits, amount)
	person.Add(field, amount)

	return person, nil
}
