package frs

import "github.com/carbocation/frs2csv/enum"

// EnumTopics returns the decode tables of every extract with categorical
// fields.
func EnumTopics() []enum.Topic {
	return []enum.Topic{
		{Name: "househol", Fields: map[string]enum.Mapping{
			"tenure": {
				{Code: enum.NoData, Label: "owned"},
				{Code: 1, Label: "owned"},
				{Code: 2, Label: "mortgage"},
				{Code: 3, Label: "part_own_part_rent"},
				{Code: 4, Label: "rented"},
				{Code: 5, Label: "rent_free"},
				{Code: 6, Label: "squatting"},
			},
			"household_type": {
				{Code: enum.NoData, Label: "house"},
				{Code: 1, Label: "house"},
				{Code: 2, Label: "flat"},
				{Code: 3, Label: "room"},
				{Code: 4, Label: "other"},
			},
			"country": {
				{Code: enum.NoData, Label: "england"},
				{Code: 1, Label: "england"},
				{Code: 2, Label: "wales"},
				{Code: 3, Label: "scotland"},
				{Code: 4, Label: "northern_ireland"},
			},
			"region": {
				{Code: enum.NoData, Label: "unknown"},
				{Code: 1, Label: "north_east"},
				{Code: 2, Label: "north_west"},
				{Code: 4, Label: "yorkshire"},
				{Code: 5, Label: "east_midlands"},
				{Code: 6, Label: "west_midlands"},
				{Code: 7, Label: "east_of_england"},
				{Code: 8, Label: "london"},
				{Code: 9, Label: "south_east"},
				{Code: 10, Label: "south_west"},
				{Code: 11, Label: "wales"},
				{Code: 12, Label: "scotland"},
				{Code: 13, Label: "northern_ireland"},
			},
			"council_tax_band": {
				{Code: enum.NoData, Label: "unknown"},
				{Code: 0, Label: "unknown"},
				{Code: 1, Label: "A"},
				{Code: 2, Label: "B"},
				{Code: 3, Label: "C"},
				{Code: 4, Label: "D"},
				{Code: 5, Label: "E"},
				{Code: 6, Label: "F"},
				{Code: 7, Label: "G"},
				{Code: 8, Label: "H"},
				{Code: 9, Label: "I"},
				{Code: 10, Label: "unknown"},
			},
		}},
	}
}
