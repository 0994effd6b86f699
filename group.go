package composer

// groupRowsByKey buckets rows by the normalized value of one column,
// preserving result-set order within each bucket. Rows missing the
// column (or carrying nil) are dropped rather than grouped under an
// empty key.
func groupRowsByKey(rows []Row, column string) map[string][]Row {
	groups := make(map[string][]Row)
	for _, row := range rows {
		v, ok := row[column]
		if !ok || v == nil {
			continue
		}
		k := anyToKeyString(v)
		groups[k] = append(groups[k], row)
	}
	return groups
}
