package orders

import "strings"

// Normalize trims every field, strips phone formatting and country-code
// prefixes, defaults the country, and validates required fields. Phone
// must end up as 10 digits, postal code as 6.
func (a *Address) Normalize() error {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Phone = normalizePhone(a.Phone)
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = "India"
	}

	required := []struct{ field, value string }{
		{"fullName", a.FullName},
		{"phone", a.Phone},
		{"addressLine1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"postalCode", a.PostalCode},
	}
	for _, f := range required {
		if f.value == "" {
			return &AddressFieldError{Field: f.field, Reason: "is required"}
		}
	}

	if !allDigits(a.Phone) || len(a.Phone) != 10 {
		return &AddressFieldError{Field: "phone", Reason: "must be a 10-digit number"}
	}
	if !allDigits(a.PostalCode) || len(a.PostalCode) != 6 {
		return &AddressFieldError{Field: "postalCode", Reason: "must be a 6-digit code"}
	}
	return nil
}

// normalizePhone keeps digits only, then strips a +91/91 country code or
// a leading trunk zero.
func normalizePhone(p string) string {
	var b strings.Builder
	for _, r := range p {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	switch {
	case len(d) == 12 && strings.HasPrefix(d, "91"):
		return d[2:]
	case len(d) == 11 && strings.HasPrefix(d, "0"):
		return d[1:]
	}
	return d
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
