// Package money formats integer minor-unit amounts for display.
//
// All prices and totals in the system are carried as int64 rand cents;
// formatting uses integer division only so no amount ever passes through
// a float.
package money

import "fmt"

// Format renders a minor-unit amount as a rand display string,
// e.g. 25000 -> "R250.00", 5099 -> "R50.99".
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%sR%d.%02d", sign, minor/100, minor%100)
}
