package builder

import (
	"fmt"
	"strconv"
)

// NameFn maps a star index to its name.
type NameFn func(idx int) string

// DefaultNameFn returns the decimal index: "0", "1", ...
func DefaultNameFn(idx int) string {
	return strconv.Itoa(idx)
}

// ExcelColumnNameFn returns spreadsheet-style column names: "A", ..., "Z",
// "AA", "AB", ... Panics on a negative index.
func ExcelColumnNameFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnNameFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// PrefixNameFn returns prefix followed by the decimal index.
func PrefixNameFn(prefix string) NameFn {
	return func(idx int) string {
		return prefix + strconv.Itoa(idx)
	}
}

// WithExcelColumnNames names stars "A", "B", ...
func WithExcelColumnNames() BuilderOption {
	return WithNameScheme(ExcelColumnNameFn)
}

// WithPrefixNames names stars prefix+index.
func WithPrefixNames(prefix string) BuilderOption {
	return WithNameScheme(PrefixNameFn(prefix))
}
