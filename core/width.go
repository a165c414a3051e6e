package core

import "github.com/rivo/uniseg"

// StringWidth returns the number of terminal cells the string occupies.
// Wide (CJK) characters count as two cells, combining marks as zero.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// FragmentsWidth returns the cell width of a fragment list's plain text.
func FragmentsWidth(fragments []Fragment) int {
	width := 0
	for _, f := range fragments {
		width += uniseg.StringWidth(f.Text)
	}
	return width
}
