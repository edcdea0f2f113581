package core

import "strings"

// Merge fuses the left and right scans into a unified view keyed by
// canonical path, per spec.md §4.3. Canonicalization: for every key in
// left, look up right first by exact case, falling back to a
// case-insensitive match — but only if that right key has no exact-case
// match in left itself, preventing cross-theft of a case pair that both
// sides carry.
func Merge(left, right map[string]ScanEntry) map[string]FileMetadata {
	result := make(map[string]FileMetadata, len(left)+len(right))

	rightByLower := make(map[string][]string, len(right))
	for key := range right {
		lower := strings.ToLower(key)
		rightByLower[lower] = append(rightByLower[lower], key)
	}

	matchedRightKeys := make(map[string]struct{}, len(right))

	for leftKey, leftEntry := range left {
		var matchedKey string
		if _, ok := right[leftKey]; ok {
			matchedKey = leftKey
		} else if candidates, found := rightByLower[strings.ToLower(leftKey)]; found {
			for _, candidate := range candidates {
				if _, leftHasExact := left[candidate]; !leftHasExact {
					matchedKey = candidate
					break
				}
			}
		}

		if matchedKey == "" {
			result[leftKey] = FileMetadata{
				Path: leftKey,
				Left: sideFromScan(leftEntry),
			}
			continue
		}

		rightEntry := right[matchedKey]
		matchedRightKeys[matchedKey] = struct{}{}

		result[leftKey] = FileMetadata{
			Path:  leftKey,
			Left:  sideFromScan(leftEntry),
			Right: sideFromScan(rightEntry),
		}

		if matchedKey != leftKey {
			// Emit the case-variant entry under right's own casing: this is
			// the signal the reconciler's case-change detection consumes
			// (spec.md §4.5.4).
			result[matchedKey] = FileMetadata{
				Path:  matchedKey,
				Right: sideFromScan(rightEntry),
			}
		}
	}

	for rightKey, rightEntry := range right {
		if _, matched := matchedRightKeys[rightKey]; matched {
			continue
		}
		if _, present := result[rightKey]; present {
			// Already emitted as a case-variant entry above.
			continue
		}
		result[rightKey] = FileMetadata{
			Path:  rightKey,
			Right: sideFromScan(rightEntry),
		}
	}

	return result
}
