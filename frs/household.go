package frs

import (
	"fmt"
	"math"

	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/frs2csv/numeric"
)

// averageCouncilTax is the yearly charge assumed for CTBAND 1 through 10 when
// a household does not report its bill.
var averageCouncilTax = []float64{1114, 1300, 1486, 1671, 2043, 2414, 2786, 3343, 3900, 0}

// AverageCouncilTax returns the fallback yearly charge for a band. Band 0 and
// blanks have no charge.
func AverageCouncilTax(rawBand string) (float64, error) {
	band := numeric.Safe(rawBand)
	if band == 0 {
		return 0, nil
	}
	if band != math.Trunc(band) || band < 1 || int(band) > len(averageCouncilTax) {
		return 0, fmt.Errorf("council tax band %q is not one of the %d known bands", rawBand, len(averageCouncilTax))
	}

	return averageCouncilTax[int(band)-1], nil
}

// councilTaxDiscount is the fraction of the bill discounted for each
// CT25D50D code.
var councilTaxDiscount = map[int]float64{0: 0, 1: 0.25, 2: 0.5}

// CouncilTaxDiscount returns the discount fraction for a raw CT25D50D value.
// Blanks have no discount.
func CouncilTaxDiscount(raw string) (float64, error) {
	code := numeric.Safe(raw)
	discount, exists := councilTaxDiscount[int(code)]
	if !exists || code != math.Trunc(code) {
		return 0, fmt.Errorf("council tax discount code %q is not one of 0, 1 or 2", raw)
	}

	return discount, nil
}

// ParseHousehold overwrites the household's fields.
func (c *Converter) ParseHousehold(row entity.Row, household *entity.Record) (*entity.Record, error) {
	h := c.Household

	fallback, err := AverageCouncilTax(row.Get("CTBAND"))
	if err != nil {
		return nil, fmt.Errorf("household %s: %v", HouseholdID(row), err)
	}

	discount, err := CouncilTaxDiscount(row.Get("CT25D50D"))
	if err != nil {
		return nil, fmt.Errorf("household %s: %v", HouseholdID(row), err)
	}

	household.SetLabel(h.ID, HouseholdID(row))
	household.SetNum(h.Weight, numeric.Safe(row.Get("GROSS4")))
	household.SetNum(h.CouncilTax, numeric.SafeOr(fallback, row.Get("CTANNUAL"))/52)
	household.SetNum(h.HousingCosts, numeric.Safe(row.Get("GBHSCOST"))+numeric.Safe(row.Get("NIHSCOST")))
	household.SetNum(h.NumBedrooms, numeric.Safe(row.Get("BEDROOM6")))
	household.SetNum(h.NumBenunits, numeric.Safe(row.Get("BENUNITS")))
	household.SetBool(h.IsSocial, equals(row, "PTENTYP2", 1) || equals(row, "PTENTYP2", 2))
	household.SetBool(h.IsShared, equals(row, "HHSTAT", 2))
	household.SetBool(h.BuildingInsured, equals(row, "COVOTHS", 1) || equals(row, "COVOTHS", 2))
	household.SetBool(h.ContentsInsured, equals(row, "COVOTHS", 2))
	household.SetBool(h.InInnerLondon, equals(row, "LONDON", 1))
	household.SetBool(h.InOuterLondon, equals(row, "LONDON", 2))
	household.SetNum(h.CouncilTaxDiscount, discount)
	household.SetNum(h.NumRooms, numeric.Safe(row.Get("ROOMS10")))
	household.SetNum(h.BusinessRooms, numeric.Safe(row.Get("PTBSROOM")))

	labels := []struct {
		field  entity.LabelField
		column string
	}{
		{h.Region, "GVTREGNO"},
		{h.Country, "COUNTRY"},
		{h.Tenure, "TENURE"},
		{h.HouseholdType, "MAINACC"},
		{h.CouncilTaxBand, "CTBAND"},
	}
	for _, l := range labels {
		label, err := c.codec.Lookup(l.field.Name(), row.Get(l.column))
		if err != nil {
			return nil, fmt.Errorf("household %s: %w", HouseholdID(row), err)
		}
		household.SetLabel(l.field, label)
	}

	weekly := []struct {
		field          entity.NumberField
		amount, period string
	}{
		{h.ServiceCharges, "CHRGAMT4", "CHRGPD4"},
	}
	for _, w := range weekly {
		v, err := c.weekly.Normalize(row.Get(w.amount), row.Get(w.period))
		if err != nil {
			return nil, err
		}
		household.SetNum(w.field, v)
	}

	yearly := []struct {
		field          entity.NumberField
		amount, period string
	}{
		{h.GroundRent, "CHRGAMT1", "CHRGPD1"},
		{h.ChiefRent, "CHRGAMT3", "CHRGPD3"},
		{h.RegularMaintenance, "CHRGAMT5", "CHRGPD5"},
		{h.SiteRent, "CHRGAMT6", "CHRGPD6"},
		{h.Factoring, "CHRGAMT7", "CHRGPD7"},
		{h.OtherRegularCharges, "CHRGAMT8", "CHRGPD8"},
		{h.CombinedServices, "CHRGAMT9", "CHRGPD9"},
		{h.CouncilTaxBenefit, "CTREBAMT", "CTREBPD"},
		{h.RatesRebate, "RTREBAMT", "RTTIMEPD"},
		{h.RateRelief, "RTRTRAMT", "RTTIMEPD"},
	}
	for _, y := range yearly {
		v, err := c.yearly.Normalize(row.Get(y.amount), row.Get(y.period))
		if err != nil {
			return nil, err
		}
		household.SetNum(y.field, v)
	}

	// Reported weekly.
	rates := []struct {
		field  entity.NumberField
		column string
	}{
		{h.Rent, "HHRENT"},
		{h.DomesticRates, "NIRATLIA"},
		{h.SewerageRate, "SEWANUL"},
		{h.WaterRate, "WATANUL"},
		{h.InsurancePremium, "STRAMT2"},
		{h.RentFromSubletting, "SUBRENT"},
	}
	for _, r := range rates {
		household.SetNum(r.field, c.yearly.Rate(row.Get(r.column)))
	}
	household.SetNum(h.TotalHousingCosts, c.yearly.Rate(row.Get("GBHSCOST"))+c.yearly.Rate(row.Get("NIHSCOST")))

	return household, nil
}

// ParseBenunit overwrites the benefit unit's identity and weight.
func (c *Converter) ParseBenunit(row entity.Row, benunit *entity.Record) (*entity.Record, error) {
	benunit.SetLabel(c.Benunit.ID, BenunitID(row))
	benunit.SetNum(c.Benunit.Weight, numeric.Safe(row.Get("GROSS4")))
	return benunit, nil
}

// ParseExtChild sets the weekly maintenance paid for children living outside
// the benefit unit. With several such children the last record wins.
func (c *Converter) ParseExtChild(row entity.Row, benunit *entity.Record) (*entity.Record, error) {
	v, err := c.weekly.Normalize(row.Get("NHHAMT"), row.Get("NHHPD"))
	if err != nil {
		return nil, err
	}

	benunit.SetNum(c.Benunit.ExternalChildMaintenance, v)
	return benunit, nil
}
