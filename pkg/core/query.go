package core

// Match reports whether rec carries every filter attribute with an equal
// value. Numbers compare by value regardless of their Go kind; everything
// else compares with ==, and values that are not comparable never match.
func Match(rec *Record, filter map[string]any) bool {
	for field, want := range filter {
		got, ok := rec.Get(field)
		if !ok || !equal(got, want) {
			return false
		}
	}
	return true
}

func equal(a, b any) (eq bool) {
	if IsNumeric(a) && IsNumeric(b) {
		na, errA := NormalizeKey(a)
		nb, errB := NormalizeKey(b)
		return errA == nil && errB == nil && na == nb
	}
	defer func() {
		// slices and maps panic on ==
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
