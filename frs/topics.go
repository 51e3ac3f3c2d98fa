package frs

import (
	"fmt"
	"sort"

	"github.com/carbocation/frs2csv/entity"
)

// Topic binds a survey extract to the entity type it enriches.
type Topic struct {
	Name     string
	Entity   string
	Identity entity.IdentityFunc
	Merge    entity.MergeFunc
}

// Topics returns every extract the converter understands, keyed by name.
func (c *Converter) Topics() map[string]Topic {
	topics := []Topic{
		{"adult", PersonEntity, PersonID, c.ParseAdult},
		{"child", PersonEntity, PersonID, c.ParseChild},
		{"job", PersonEntity, PersonID, c.ParseJob},
		{"pension", PersonEntity, PersonID, c.ParsePension},
		{"benefits", PersonEntity, PersonID, c.ParseBenefit},
		{"accounts", PersonEntity, PersonID, c.ParseAccount},
		{"assets", PersonEntity, PersonID, c.ParseAsset},
		{"maint", PersonEntity, PersonID, c.ParseMaintenance},
		{"chldcare", PersonEntity, PersonID, c.ParseChildcare},
		{"benunit", BenunitEntity, BenunitID, c.ParseBenunit},
		{"extchild", BenunitEntity, BenunitID, c.ParseExtChild},
		{"househol", HouseholdEntity, HouseholdID, c.ParseHousehold},
	}

	out := make(map[string]Topic, len(topics))
	for _, t := range topics {
		out[t.Name] = t
	}
	return out
}

// Topic looks up one extract by name.
func (c *Converter) Topic(name string) (Topic, error) {
	topics := c.Topics()
	t, exists := topics[name]
	if !exists {
		known := make([]string, 0, len(topics))
		for k := range topics {
			known = append(known, k)
		}
		sort.Strings(known)
		return Topic{}, fmt.Errorf("unknown topic %q. Known topics: %v", name, known)
	}
	return t, nil
}

// Step is one extract to merge, in order.
type Step struct {
	Entity string
	Topic  string
	File   string
}

// DefaultPlan lists the extracts in the order they are merged. When two
// extracts overwrite the same field, the later one wins: the child extract
// runs after the adult extract, and so on.
func DefaultPlan() []Step {
	return []Step{
		{PersonEntity, "adult", "adult.tab"},
		{PersonEntity, "child", "child.tab"},
		{PersonEntity, "job", "job.tab"},
		{PersonEntity, "pension", "pension.tab"},
		{PersonEntity, "benefits", "benefits.tab"},
		{PersonEntity, "accounts", "accounts.tab"},
		{PersonEntity, "assets", "assets.tab"},
		{PersonEntity, "maint", "maint.tab"},
		{PersonEntity, "chldcare", "chldcare.tab"},
		{BenunitEntity, "benunit", "benunit.tab"},
		{BenunitEntity, "extchild", "extchild.tab"},
		{HouseholdEntity, "househol", "househol.tab"},
	}
}

// Entities is the order in which entity tables are built and written.
func Entities() []string {
	return []string{PersonEntity, BenunitEntity, HouseholdEntity}
}
