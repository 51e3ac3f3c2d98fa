// Package frs knows the layout of the Family Resources Survey extracts: which
// raw columns feed which person, benefit unit and household fields.
package frs

import (
	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/frs2csv/enum"
)

// Entity types.
const (
	PersonEntity    = "person"
	BenunitEntity   = "benunit"
	HouseholdEntity = "household"
)

// Person holds the person schema and a handle for each of its fields.
type Person struct {
	Schema *entity.Schema

	ID, BenunitID, HouseholdID, Role entity.LabelField

	IsMale, IsAdult, IsChild entity.BoolField
	Age                      entity.NumberField

	// IsHead and IsHouseholder are 0/1 numbers.
	IsHead, IsHouseholder entity.NumberField

	EmployeeEarnings      entity.NumberField
	Deductions            entity.NumberField
	SelfEmployedEarnings  entity.NumberField
	PensionIncome         entity.NumberField
	TotalBenefits         entity.NumberField
	Interest              entity.NumberField
	Assets                entity.NumberField
	MaintenanceExpense    entity.NumberField
	MiscIncome            entity.NumberField
	JSAContribEligible    entity.NumberField
	Disabled              entity.BoolField
	AdultWeight           entity.NumberField
	HoursWorked           entity.NumberField
	ActualNetIncome       entity.NumberField
	StudentLoanRepayments entity.NumberField
	NetIncomeAdjustment   entity.NumberField
	EligibleChildcareCost entity.NumberField
	SSP                   entity.NumberField
	IsBenunitHead         entity.BoolField
	TotalDisability       entity.NumberField

	// Childcare costs are yearly; hours are weekly.
	ChildcareCost         entity.NumberField
	WeeklyChildcareHours  entity.NumberField
	EmployerChildcareCost entity.NumberField
	RegisteredChildcare   entity.BoolField

	// Benefits maps a benefit code to its reported amount field.
	Benefits map[int]entity.NumberField

	// JSA holds the contributory and income-based split of code 14.
	JSA map[string]entity.NumberField
}

// NewPerson declares the person schema.
func NewPerson() *Person {
	s := entity.NewSchema(PersonEntity)
	p := &Person{
		Schema:      s,
		ID:          s.Label("person_id", ""),
		BenunitID:   s.Label("benunit_id", ""),
		HouseholdID: s.Label("household_id", ""),
		Role:        s.Label("role", ""),

		IsMale:        s.Bool("is_male"),
		IsAdult:       s.Bool("is_adult"),
		IsChild:       s.Bool("is_child"),
		Age:           s.Number("age"),
		IsHead:        s.Number("is_head"),
		IsHouseholder: s.Number("is_householder"),

		EmployeeEarnings:      s.Number("employee_earnings"),
		Deductions:            s.Number("deductions"),
		SelfEmployedEarnings:  s.Number("self_employed_earnings"),
		PensionIncome:         s.Number("pension_income"),
		TotalBenefits:         s.Number("total_benefits"),
		Interest:              s.Number("interest"),
		Assets:                s.Number("assets"),
		MaintenanceExpense:    s.Number("maintenance_expense"),
		MiscIncome:            s.Number("misc_income"),
		JSAContribEligible:    s.Number("JSA_contrib_eligible"),
		Disabled:              s.Bool("disabled"),
		AdultWeight:           s.Number("adult_weight"),
		HoursWorked:           s.Number("hours_worked"),
		ActualNetIncome:       s.Number("actual_net_income"),
		StudentLoanRepayments: s.Number("student_loan_repayments"),
		NetIncomeAdjustment:   s.Number("net_income_adjustment"),
		EligibleChildcareCost: s.Number("eligible_childcare_cost"),
		SSP:                   s.Number("SSP"),
		IsBenunitHead:         s.Bool("is_adult_1"),
		TotalDisability:       s.Number("total_disability_benefits"),

		ChildcareCost:         s.Number("childcare_cost"),
		WeeklyChildcareHours:  s.Number("weekly_childcare_hours"),
		EmployerChildcareCost: s.Number("employer_provided_childcare_cost"),
		RegisteredChildcare:   s.Bool("has_registered_childcare"),

		Benefits: make(map[int]entity.NumberField),
		JSA:      make(map[string]entity.NumberField),
	}

	for _, b := range benefits {
		p.Benefits[b.Code] = s.Number(b.Name + "_reported")

		// Code 14 amounts always land in one of the split columns; the
		// undivided column stays at 0.
		if b.Code == JSA {
			for _, sub := range jsaSubtypes {
				p.JSA[sub] = s.Number("JSA_" + sub + "_reported")
			}
		}
	}

	return p
}

// Benunit holds the benefit unit schema.
type Benunit struct {
	Schema *entity.Schema

	ID                       entity.LabelField
	Weight                   entity.NumberField
	ExternalChildMaintenance entity.NumberField
}

// NewBenunit declares the benefit unit schema.
func NewBenunit() *Benunit {
	s := entity.NewSchema(BenunitEntity)
	return &Benunit{
		Schema:                   s,
		ID:                       s.Label("benunit_id", ""),
		Weight:                   s.Number("benunit_weight"),
		ExternalChildMaintenance: s.Number("external_child_maintenance"),
	}
}

// Household holds the household schema. Monetary fields are weekly except
// the itemised charges, which are yearly.
type Household struct {
	Schema *entity.Schema

	ID             entity.LabelField
	Weight         entity.NumberField
	CouncilTax     entity.NumberField
	HousingCosts   entity.NumberField
	ServiceCharges entity.NumberField

	Region         entity.LabelField
	Country        entity.LabelField
	Tenure         entity.LabelField
	HouseholdType  entity.LabelField
	CouncilTaxBand entity.LabelField

	NumBedrooms entity.NumberField
	NumBenunits entity.NumberField
	IsSocial    entity.BoolField
	IsShared    entity.BoolField

	GroundRent          entity.NumberField
	ChiefRent           entity.NumberField
	RegularMaintenance  entity.NumberField
	SiteRent            entity.NumberField
	Factoring           entity.NumberField
	OtherRegularCharges entity.NumberField
	CombinedServices    entity.NumberField
	CouncilTaxBenefit   entity.NumberField
	Rent                entity.NumberField
	DomesticRates       entity.NumberField
	RatesRebate         entity.NumberField
	RateRelief          entity.NumberField
	SewerageRate        entity.NumberField
	WaterRate           entity.NumberField
	InsurancePremium    entity.NumberField
	RentFromSubletting  entity.NumberField
	TotalHousingCosts   entity.NumberField

	BuildingInsured    entity.BoolField
	ContentsInsured    entity.BoolField
	InInnerLondon      entity.BoolField
	InOuterLondon      entity.BoolField
	CouncilTaxDiscount entity.NumberField
	NumRooms           entity.NumberField
	BusinessRooms      entity.NumberField
}

// NewHousehold declares the household schema. Enum fields start at whatever
// label codec encodes as 0.
func NewHousehold(codec *enum.Codec) *Household {
	s := entity.NewSchema(HouseholdEntity)
	return &Household{
		Schema:         s,
		ID:             s.Label("household_id", ""),
		Weight:         s.Number("household_weight"),
		CouncilTax:     s.Number("council_tax"),
		HousingCosts:   s.Number("housing_costs"),
		ServiceCharges: s.Number("service_charges"),

		Region:         s.Label("region", codec.Default("region")),
		Country:        s.Label("country", codec.Default("country")),
		Tenure:         s.Label("tenure", codec.Default("tenure")),
		HouseholdType:  s.Label("household_type", codec.Default("household_type")),
		CouncilTaxBand: s.Label("council_tax_band", codec.Default("council_tax_band")),

		NumBedrooms: s.Number("num_bedrooms"),
		NumBenunits: s.Number("num_benunits"),
		IsSocial:    s.Bool("is_social"),
		IsShared:    s.Bool("is_shared"),

		GroundRent:          s.Number("ground_rent"),
		ChiefRent:           s.Number("chief_rent"),
		RegularMaintenance:  s.Number("regular_maintenance"),
		SiteRent:            s.Number("site_rent"),
		Factoring:           s.Number("factoring"),
		OtherRegularCharges: s.Number("other_regular_charges"),
		CombinedServices:    s.Number("combined_services"),
		CouncilTaxBenefit:   s.Number("council_tax_benefit"),
		Rent:                s.Number("rent"),
		DomesticRates:       s.Number("domestic_rates"),
		RatesRebate:         s.Number("rates_rebate"),
		RateRelief:          s.Number("rate_relief"),
		SewerageRate:        s.Number("sewerage_rate"),
		WaterRate:           s.Number("water_rate"),
		InsurancePremium:    s.Number("insurance_premium"),
		RentFromSubletting:  s.Number("rent_from_subletting"),
		TotalHousingCosts:   s.Number("total_housing_costs"),

		BuildingInsured:    s.Bool("building_insured"),
		ContentsInsured:    s.Bool("contents_insured"),
		InInnerLondon:      s.Bool("in_inner_london"),
		InOuterLondon:      s.Bool("in_outer_london"),
		CouncilTaxDiscount: s.Number("council_tax_discount"),
		NumRooms:           s.Number("num_rooms"),
		BusinessRooms:      s.Number("business_rooms"),
	}
}
