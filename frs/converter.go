package frs

import (
	"strings"

	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/frs2csv/enum"
	"github.com/carbocation/frs2csv/numeric"
	"github.com/carbocation/frs2csv/period"
)

// Converter turns raw extract rows into entity fields. It holds only
// immutable lookup tables, so its merge functions depend on nothing but their
// arguments.
type Converter struct {
	Person    *Person
	Benunit   *Benunit
	Household *Household

	weekly *period.Normalizer
	yearly *period.Normalizer
	codec  *enum.Codec
}

// NewConverter builds a Converter around the given period and enum tables.
func NewConverter(periods period.Table, codec *enum.Codec) *Converter {
	return &Converter{
		Person:    NewPerson(),
		Benunit:   NewBenunit(),
		Household: NewHousehold(codec),
		weekly:    period.NewWeekly(periods),
		yearly:    period.NewYearly(periods),
		codec:     codec,
	}
}

// NewDefaultConverter uses the standard survey period codes and enum tables.
func NewDefaultConverter() (*Converter, error) {
	codec, err := enum.NewCodec(EnumTopics()...)
	if err != nil {
		return nil, err
	}

	return NewConverter(period.DefaultTable(), codec), nil
}

// Codec returns the enum tables the converter decodes with.
func (c *Converter) Codec() *enum.Codec {
	return c.codec
}

// Schema returns the schema of an entity type, or nil.
func (c *Converter) Schema(entityType string) *entity.Schema {
	switch entityType {
	case PersonEntity:
		return c.Person.Schema
	case BenunitEntity:
		return c.Benunit.Schema
	case HouseholdEntity:
		return c.Household.Schema
	}
	return nil
}

// PersonID is <sernum>p<PERSON>.
func PersonID(row entity.Row) string {
	return strings.TrimSpace(row.Get("sernum")) + "p" + strings.TrimSpace(row.Get("PERSON"))
}

// BenunitID is <sernum>b<BENUNIT>.
func BenunitID(row entity.Row) string {
	return strings.TrimSpace(row.Get("sernum")) + "b" + strings.TrimSpace(row.Get("BENUNIT"))
}

// HouseholdID is the household serial number.
func HouseholdID(row entity.Row) string {
	return strings.TrimSpace(row.Get("sernum"))
}

// equals is true when column holds the number v.
func equals(row entity.Row, column string, v float64) bool {
	x, ok := numeric.Parse(row.Get(column))
	return ok && x == v
}

// indicator is 1 for true and 0 for false.
func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
