package entity

// AssignGroupHeads walks t in insertion order and flags the first record of
// each parent group as its head; every later member is flagged non-head.
// Records whose parent was never set, or is blank, belong to no group and
// are never heads. It returns the number of heads.
func AssignGroupHeads(t *Table, parent LabelField, head BoolField) int {
	seen := make(map[string]struct{})

	t.Each(func(_ string, rec *Record) error {
		group := rec.Label(parent)
		if !rec.IsSet(parent) || group == "" {
			rec.SetBool(head, false)
			return nil
		}

		if _, exists := seen[group]; exists {
			rec.SetBool(head, false)
			return nil
		}

		seen[group] = struct{}{}
		rec.SetBool(head, true)
		return nil
	})

	return len(seen)
}
