package compliance

import "strings"

// nipWeights are the checksum weights for the first nine digits of a NIP.
var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// NormalizeNIP strips separators commonly found in user-supplied NIP values
// ("123-456-78-90", "PL1234567890", spaces) and returns the bare digit string.
func NormalizeNIP(nip string) string {
	s := strings.TrimSpace(strings.ToUpper(nip))
	s = strings.TrimPrefix(s, "PL")
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateNIP reports whether the given value is a valid Polish tax
// identification number: ten digits whose weighted mod-11 checksum matches
// the final digit. A checksum of 10 is invalid by definition.
func ValidateNIP(nip string) bool {
	digits := NormalizeNIP(nip)
	if len(digits) != 10 {
		return false
	}

	sum := 0
	for i, w := range nipWeights {
		sum += int(digits[i]-'0') * w
	}
	checksum := sum % 11
	if checksum == 10 {
		return false
	}
	return checksum == int(digits[9]-'0')
}
