package booking

import "regexp"

// datePattern matches "YYYY-MM-DD" or "YYYY/MM/DD" with optional leading
// zeros on month and day.  Anything that does not match is treated as a
// mobile number fragment.
var datePattern = regexp.MustCompile(`^\d{4}[/-](0?[1-9]|1[012])[/-](0?[1-9]|[12][0-9]|3[01])$`)

// IsDateQuery reports whether a listing query selects the by-date mode.
func IsDateQuery(query string) bool {
	return datePattern.MatchString(query)
}

// PhoneFragment reduces a search query to its digits for matching
// against stored mobile numbers regardless of punctuation.
func PhoneFragment(query string) string {
	return digitsOnly(query)
}
