package frs

import (
	"fmt"
	"math"

	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/frs2csv/numeric"
)

// ageBands gives a representative age for each IAGEGR4 band.
var ageBands = []float64{2, 7, 13, 18, 22, 27, 32, 37, 42, 47, 52, 57, 62, 67, 72, 77, 82, 90}

// AgeFromBand returns the representative age of an adult's age band.
func AgeFromBand(raw string) (float64, error) {
	band, ok := numeric.Parse(raw)
	if !ok || band != math.Trunc(band) || band < 0 || int(band) >= len(ageBands) {
		return 0, fmt.Errorf("age band %q is not one of the %d known bands", raw, len(ageBands))
	}

	return ageBands[int(band)], nil
}

func (c *Converter) setIDs(row entity.Row, person *entity.Record) {
	p := c.Person
	person.SetLabel(p.ID, PersonID(row))
	person.SetLabel(p.BenunitID, BenunitID(row))
	person.SetLabel(p.HouseholdID, HouseholdID(row))
}

// ParseAdult overwrites the demographic and income fields of an adult.
func (c *Converter) ParseAdult(row entity.Row, person *entity.Record) (*entity.Record, error) {
	p := c.Person
	c.setIDs(row, person)

	age, err := AgeFromBand(row.Get("IAGEGR4"))
	if err != nil {
		return nil, fmt.Errorf("adult %s: %v", PersonID(row), err)
	}

	loan, err := c.weekly.Normalize(row.Get("SLREPAMT"), row.Get("SLREPPD"))
	if err != nil {
		return nil, err
	}

	person.SetLabel(p.Role, "adult")
	person.SetBool(p.IsMale, equals(row, "SEX", 1))
	person.SetBool(p.IsAdult, true)
	person.SetBool(p.IsChild, false)
	person.SetNum(p.Age, age)
	person.SetNum(p.MiscIncome, numeric.Safe(row.Get("NINRINC")))
	person.SetNum(p.StudentLoanRepayments, loan)
	person.SetNum(p.HoursWorked, numeric.Safe(row.Get("TOTHOURS")))
	person.SetBool(p.Disabled, equals(row, "DISACTA1", 1))
	person.SetNum(p.AdultWeight, numeric.Safe(row.Get("GROSS4")))
	person.SetNum(p.IsHead, indicator(equals(row, "COMBID", 1)))
	person.SetNum(p.IsHouseholder, indicator(equals(row, "HHOLDER", 1)))
	person.SetNum(p.ActualNetIncome, numeric.Safe(row.Get("NINDINC"))-numeric.Safe(row.Get("NINRINC")))
	person.SetNum(p.SelfEmployedEarnings, numeric.Safe(row.Get("SEINCAM2")))
	person.SetNum(p.EmployeeEarnings, numeric.Safe(row.Get("INEARNS")))
	person.SetNum(p.SSP, numeric.Safe(row.Get("SSPADJ")))
	person.SetBool(p.IsBenunitHead, false)
	person.SetNum(p.TotalDisability, numeric.Safe(row.Get("INDISBEN")))

	return person, nil
}

// ParseChild overwrites the demographic fields of a child.
func (c *Converter) ParseChild(row entity.Row, person *entity.Record) (*entity.Record, error) {
	p := c.Person
	c.setIDs(row, person)

	person.SetLabel(p.Role, "child")
	person.SetBool(p.IsMale, equals(row, "SEX", 1))
	person.SetBool(p.IsAdult, false)
	person.SetBool(p.IsChild, true)
	person.SetNum(p.Age, numeric.Safe(row.Get("AGE")))
	person.SetNum(p.MiscIncome, numeric.Safe(row.Get("CHRINC")))
	person.SetBool(p.Disabled, equals(row, "DISACTC1", 1))
	person.SetBool(p.IsBenunitHead, false)
	person.SetNum(p.TotalDisability, 0)

	return person, nil
}

// jobDeductions are the itemised deductions from gross pay on a job record.
var jobDeductions = []string{"DEDOTH", "DEDUC1", "DEDUC2", "DEDUC3", "DEDUC4", "DEDUC5", "DEDUC6", "DEDUC7", "DEDUC8", "DEDUC9"}

// ParseJob accumulates weekly pay deductions across a person's jobs.
func (c *Converter) ParseJob(row entity.Row, person *entity.Record) (*entity.Record, error) {
	raw := make([]string, len(jobDeductions))
	for i, column := range jobDeductions {
		raw[i] = row.Get(column)
	}

	deductions, err := c.weekly.NormalizeValue(numeric.AddUp(raw...), row.Get("GRWAGPD"))
	if err != nil {
		return nil, err
	}

	person.Add(c.Person.Deductions, deductions)
	return person, nil
}

// ParsePension accumulates private and occupational pension income.
func (c *Converter) ParsePension(row entity.Row, person *entity.Record) (*entity.Record, error) {
	person.Add(c.Person.PensionIncome, numeric.Safe(row.Get("PENPAY"))+numeric.Safe(row.Get("PTAMT")))
	return person, nil
}

// ParseAccount accumulates interest across accounts.
func (c *Converter) ParseAccount(row entity.Row, person *entity.Record) (*entity.Record, error) {
	person.Add(c.Person.Interest, numeric.Safe(row.Get("ACCINT")))
	return person, nil
}

// ParseAsset accumulates asset values, preferring the exact amount to the
// banded estimate.
func (c *Converter) ParseAsset(row entity.Row, person *entity.Record) (*entity.Record, error) {
	person.Add(c.Person.Assets, numeric.Safe(row.Get("HOWMUCHE"), row.Get("HOWMUCH")))
	return person, nil
}

// ParseMaintenance accumulates weekly maintenance paid.
func (c *Converter) ParseMaintenance(row entity.Row, person *entity.Record) (*entity.Record, error) {
	amount := numeric.Safe(row.Get("MRUAMT"), row.Get("MRAMT"))

	weekly, err := c.weekly.NormalizeValue(amount, row.Get("MRPD"))
	if err != nil {
		return nil, err
	}

	person.Add(c.Person.MaintenanceExpense, weekly)
	return person, nil
}

// ParseChildcare accumulates a person's childcare arrangements. Registered
// childcare also counts, at its weekly cost, towards the eligible cost.
func (c *Converter) ParseChildcare(row entity.Row, person *entity.Record) (*entity.Record, error) {
	p := c.Person
	yearly := c.yearly.Rate(row.Get("CHAMT"))

	person.Add(p.ChildcareCost, yearly)
	person.Add(p.WeeklyChildcareHours, numeric.Safe(row.Get("CHHR")))

	if equals(row, "EMPLPROV", 1) {
		person.Add(p.EmployerChildcareCost, yearly)
	}

	if equals(row, "REGISTRD", 1) {
		person.Add(p.EligibleChildcareCost, numeric.Safe(row.Get("CHAMT")))
		person.SetBool(p.RegisteredChildcare, true)
	}

	return person, nil
}
