// Package enum translates categorical survey codes into labels and labels into
// stable integers.
package enum

import (
	"fmt"
	"math"

	"github.com/carbocation/frs2csv/numeric"
)

// Code is a raw categorical value as it appears in a survey extract.
type Code int

// NoData is the code used for blank or "does not apply" answers. Any raw value
// that is not numeric is read as NoData.
const NoData Code = -1

// Entry pairs a raw code with its label.
type Entry struct {
	Code  Code
	Label string
}

// Mapping is the decode table for one field. Order matters: it determines the
// integer each label is encoded as.
type Mapping []Entry

// Topic holds the decode tables contributed by one survey extract.
type Topic struct {
	Name   string
	Fields map[string]Mapping
}

// Decode is the union of every topic's decode tables, keyed by field name.
type Decode map[string]Mapping

// Encode maps, per field, each label to its integer.
type Encode map[string]map[string]int

// DuplicateFieldError is returned when two topics both declare a field.
type DuplicateFieldError struct {
	Field  string
	Topics [2]string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("enum field %q is declared by both %s and %s", e.Field, e.Topics[0], e.Topics[1])
}

// UnknownCodeError is returned when a raw code is not in its field's decode
// table, or when a field has no decode table at all.
type UnknownCodeError struct {
	Field string
	Code  Code
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("code %d is not defined for enum field %q", e.Code, e.Field)
}

// BuildDecode merges per-topic tables. Field namespaces must be disjoint
// across topics.
func BuildDecode(topics ...Topic) (Decode, error) {
	out := make(Decode)
	owner := make(map[string]string)

	for _, topic := range topics {
		for field, mapping := range topic.Fields {
			if prior, exists := owner[field]; exists {
				return nil, &DuplicateFieldError{Field: field, Topics: [2]string{prior, topic.Name}}
			}
			owner[field] = topic.Name
			out[field] = append(Mapping(nil), mapping...)
		}
	}

	return out, nil
}

// BuildEncode numbers each field's distinct labels from 0 in the order their
// codes first appear. The NoData label always takes 0; if it was not already
// first, it trades places with whichever label was.
func BuildEncode(decode Decode) Encode {
	out := make(Encode, len(decode))

	for field, mapping := range decode {
		enc := make(map[string]int)
		labels := make([]string, 0, len(mapping))
		noDataLabel, hasNoData := "", false

		for _, entry := range mapping {
			if entry.Code == NoData && !hasNoData {
				noDataLabel, hasNoData = entry.Label, true
			}
			if _, seen := enc[entry.Label]; seen {
				continue
			}
			enc[entry.Label] = len(labels)
			labels = append(labels, entry.Label)
		}

		if hasNoData {
			if slot := enc[noDataLabel]; slot != 0 {
				displaced := labels[0]
				enc[displaced] = slot
				enc[noDataLabel] = 0
			}
		}

		out[field] = enc
	}

	return out
}

// Codec answers decode and encode questions for a fixed set of topics. It is
// immutable once built.
type Codec struct {
	decode Decode
	encode Encode
	byCode map[string]map[Code]string
	byInt  map[string]map[int]string
}

// NewCodec builds a Codec from the given topics.
func NewCodec(topics ...Topic) (*Codec, error) {
	decode, err := BuildDecode(topics...)
	if err != nil {
		return nil, err
	}

	return NewCodecFromDecode(decode), nil
}

// NewCodecFromDecode builds a Codec from an already-merged decode table.
func NewCodecFromDecode(decode Decode) *Codec {
	c := &Codec{
		decode: decode,
		encode: BuildEncode(decode),
		byCode: make(map[string]map[Code]string, len(decode)),
		byInt:  make(map[string]map[int]string, len(decode)),
	}

	for field, mapping := range decode {
		codes := make(map[Code]string, len(mapping))
		for _, entry := range mapping {
			if _, exists := codes[entry.Code]; !exists {
				codes[entry.Code] = entry.Label
			}
		}
		c.byCode[field] = codes

		ints := make(map[int]string, len(c.encode[field]))
		for label, i := range c.encode[field] {
			ints[i] = label
		}
		c.byInt[field] = ints
	}

	return c
}

// Has reports whether field has a decode table.
func (c *Codec) Has(field string) bool {
	_, exists := c.decode[field]
	return exists
}

// Fields lists every field with a decode table, in no particular order.
func (c *Codec) Fields() []string {
	out := make([]string, 0, len(c.decode))
	for field := range c.decode {
		out = append(out, field)
	}
	return out
}

// Lookup decodes a raw extract value. Blank and non-numeric values are read
// as NoData.
func (c *Codec) Lookup(field, raw string) (string, error) {
	v, ok := numeric.Parse(raw)
	if !ok {
		return c.LookupCode(field, NoData)
	}

	if v != math.Trunc(v) {
		return "", &UnknownCodeError{Field: field, Code: Code(v)}
	}

	return c.LookupCode(field, Code(v))
}

// LookupCode decodes a code.
func (c *Codec) LookupCode(field string, code Code) (string, error) {
	label, exists := c.byCode[field][code]
	if !exists {
		return "", &UnknownCodeError{Field: field, Code: code}
	}

	return label, nil
}

// Encode returns the integer for label.
func (c *Codec) Encode(field, label string) (int, error) {
	i, exists := c.encode[field][label]
	if !exists {
		return 0, fmt.Errorf("label %q is not defined for enum field %q", label, field)
	}

	return i, nil
}

// Decode returns the label for an encoded integer.
func (c *Codec) Decode(field string, i int) (string, error) {
	label, exists := c.byInt[field][i]
	if !exists {
		return "", fmt.Errorf("%d is not a valid encoding for enum field %q", i, field)
	}

	return label, nil
}

// Default is the label an untouched field should hold: whatever decodes
// from 0.
func (c *Codec) Default(field string) string {
	return c.byInt[field][0]
}

// Labels returns the field's labels ordered by their encoding.
func (c *Codec) Labels(field string) []string {
	ints := c.byInt[field]
	out := make([]string, len(ints))
	for i, label := range ints {
		out[i] = label
	}
	return out
}
