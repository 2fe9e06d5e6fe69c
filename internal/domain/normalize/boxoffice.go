package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`[\d,]+`)

// ParseBoxOffice converts free text such as "$2,187,463,944" to millions,
// rounded to one decimal with ties to even. Missing, "N/A" or unparsable
// input yields 0. Amounts of any length are accepted.
func ParseBoxOffice(s string) float64 {
	if s == "" || s == "N/A" {
		return 0
	}
	m := amountPattern.FindString(s)
	digits := strings.ReplaceAll(m, ",", "")
	if digits == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	millions, err := strconv.ParseFloat(strconv.FormatFloat(amount/1e6, 'f', 1, 64), 64)
	if err != nil {
		return 0
	}
	return millions
}

// ParseYear returns the leading four-digit year of a date such as
// "1997-12-19", or nil when it is absent or not numeric.
func ParseYear(date string) *int {
	if len(date) < 4 {
		return nil
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y < 0 {
		return nil
	}
	return &y
}
