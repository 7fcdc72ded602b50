// Package cnpj validates Brazilian legal-entity tax identifiers (CNPJ)
// using the two-pass weighted modulo-11 checksum.
package cnpj

import (
	"strings"

	"anscli/pkg/contracts/domain"
)

var (
	firstPassWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondPassWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Normalize strips every non-digit character from raw.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate normalizes raw and checks its two trailing check digits.
// Pure function, no side effects. NormalizedTaxID is only meaningful
// when Valid is true.
func Validate(raw string) domain.ValidationOutcome {
	digits := Normalize(raw)
	if len(digits) != 14 {
		return domain.ValidationOutcome{Valid: false}
	}
	if allSame(digits) {
		// Sequences like 00000000000000 satisfy the checksum but are a
		// known degenerate pattern in source data.
		return domain.ValidationOutcome{Valid: false}
	}

	if checkDigit(digits, firstPassWeights) != int(digits[12]-'0') {
		return domain.ValidationOutcome{Valid: false}
	}
	if checkDigit(digits, secondPassWeights) != int(digits[13]-'0') {
		return domain.ValidationOutcome{Valid: false}
	}

	return domain.ValidationOutcome{NormalizedTaxID: digits, Valid: true}
}

// IsValid reports whether raw is a checksum-valid tax identifier.
func IsValid(raw string) bool {
	return Validate(raw).Valid
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
