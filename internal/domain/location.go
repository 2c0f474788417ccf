package domain

import "strings"

// Location identifies a pickup or drop-off place by postal code and city.
// Postal codes follow the French five-digit scheme; the first two digits
// name the department, which the distance fallback relies on.
type Location struct {
	PostalCode string
	City       string
}

// Key returns the normalized identifier used for distance lookups and
// cache keys. Keys are stable for the same postal code and city spelling.
func (l Location) Key() string {
	code := strings.TrimSpace(l.PostalCode)
	city := strings.Join(strings.Fields(strings.ToLower(l.City)), " ")
	if city == "" {
		return code
	}
	return code + " " + city
}

// Complete reports whether the location carries enough information to be
// matched. Records with incomplete locations are filtered out, not errored.
func (l Location) Complete() bool {
	return strings.TrimSpace(l.PostalCode) != "" && strings.TrimSpace(l.City) != ""
}

// Department returns the two-digit administrative prefix of the postal code,
// or an empty string when the code is too short.
func (l Location) Department() string {
	code := strings.TrimSpace(l.PostalCode)
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}

// SameDepartment reports whether both locations sit in the same department.
func (l Location) SameDepartment(other Location) bool {
	d := l.Department()
	return d != "" && d == other.Department()
}
