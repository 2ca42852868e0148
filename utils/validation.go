// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// Separators customers commonly type into phone fields.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// E.164-ish: optional + then 2-15 digits, no leading zero.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(phone))
}
