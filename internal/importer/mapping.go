package importer

import (
	"strings"
)

// Canonical field names the import targets understand.
const (
	fieldName         = "name"
	fieldCategory     = "category"
	fieldDescription  = "description"
	fieldDailyRate    = "daily_rate"
	fieldWeeklyRate   = "weekly_rate"
	fieldMonthlyRate  = "monthly_rate"
	fieldCondition    = "condition"
	fieldEmail        = "email"
	fieldPhone        = "phone"
	fieldAddress      = "address"
	fieldCreditLimit  = "credit_limit"
	fieldPaymentTerms = "payment_terms"
)

// headerHints maps canonical fields to substrings found in real-world
// spreadsheet headers. Order matters: the first field whose hint matches
// a header claims it.
var headerHints = []struct {
	field string
	hints []string
}{
	{fieldMonthlyRate, []string{"monthly", "month rate", "per month"}},
	{fieldWeeklyRate, []string{"weekly", "week rate", "per week"}},
	{fieldDailyRate, []string{"daily", "day rate", "per day", "rate", "price"}},
	{fieldCreditLimit, []string{"credit"}},
	{fieldPaymentTerms, []string{"terms"}},
	{fieldEmail, []string{"email", "e-mail"}},
	{fieldPhone, []string{"phone", "mobile", "cell"}},
	{fieldAddress, []string{"address", "street", "location"}},
	{fieldCategory, []string{"category", "type", "class"}},
	{fieldCondition, []string{"condition"}},
	{fieldDescription, []string{"description", "details", "notes"}},
	{fieldName, []string{"name", "item", "equipment", "customer", "title"}},
}

// mapHeaders assigns each CSV column a canonical field name, or "" when no
// hint matches. Matching is case-insensitive substring, so "Daily Rate ($)"
// and "daily_rate" both land on daily_rate.
func mapHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	claimed := make(map[string]bool)

	for i, h := range headers {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for _, hint := range headerHints {
			if claimed[hint.field] {
				continue
			}
			for _, sub := range hint.hints {
				if strings.Contains(normalized, sub) {
					mapped[i] = hint.field
					claimed[hint.field] = true
					break
				}
			}
			if mapped[i] != "" {
				break
			}
		}
	}
	return mapped
}

// rowValues folds a CSV record into canonical field -> trimmed value.
func rowValues(mapped []string, record []string) map[string]string {
	values := make(map[string]string)
	for i, field := range mapped {
		if field == "" || i >= len(record) {
			continue
		}
		v := strings.TrimSpace(record[i])
		if v != "" {
			values[field] = v
		}
	}
	return values
}

// parseMoneyCents converts a decimal dollar string ("125", "125.5",
// "$1,250.00") to integer cents. Returns 0 for unparseable input.
func parseMoneyCents(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	whole, frac, _ := strings.Cut(s, ".")
	var cents int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0
		}
		cents = cents*10 + int64(r-'0')
	}
	cents *= 100

	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		var f int64
		for _, r := range frac {
			if r < '0' || r > '9' {
				return 0
			}
			f = f*10 + int64(r-'0')
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += f
	}
	return cents
}
