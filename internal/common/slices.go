package common

// AppendUnique appends the items of add that are not yet present in dst,
// keeping the first occurrence of each value.
func AppendUnique[S ~[]E, E comparable](dst S, add ...E) S {
	seen := make(map[E]struct{}, len(dst)+len(add))
	for _, v := range dst {
		seen[v] = struct{}{}
	}

	for _, v := range add {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		dst = append(dst, v)
	}

	return dst
}
