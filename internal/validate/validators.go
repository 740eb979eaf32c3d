package validate

import (
	"regexp"
	"strings"
)

var (
	persianNameRe = regexp.MustCompile(`^[آابپتثجچحخدذرزژسشصضطظعغفقکگلمنوهی\s]+$`)
	persianPartRe = regexp.MustCompile(`^[آابپتثجچحخدذرزژسشصضطظعغفقکگلمنوهی]+$`)
	phoneRe       = regexp.MustCompile(`^09\d{9}$`)
)

// FullName accepts names made of Persian letters only, with at least two
// parts of at least three letters each.
func FullName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || !persianNameRe.MatchString(name) {
		return false
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if len([]rune(part)) < 3 || !persianPartRe.MatchString(part) {
			return false
		}
	}
	return true
}

// StudentID accepts numeric ids of at least 8 digits.
func StudentID(id string) bool {
	id = NormalizeDigits(strings.TrimSpace(id))
	return allASCIIDigits(id) && len(id) >= 8
}

// NationalID accepts exactly 10 digits.
func NationalID(id string) bool {
	id = NormalizeDigits(strings.TrimSpace(id))
	return allASCIIDigits(id) && len(id) == 10
}

// NationalIDChecksum verifies the Iranian national id check digit.
// The last digit must equal the weighted sum of the first nine modulo 11,
// or its complement when the remainder is 2 or more.
func NationalIDChecksum(id string) bool {
	id = NormalizeDigits(strings.TrimSpace(id))
	if !allASCIIDigits(id) || len(id) != 10 {
		return false
	}
	check := int(id[9] - '0')
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(id[i]-'0') * (10 - i)
	}
	sum %= 11
	if sum < 2 {
		return check == sum
	}
	return check+sum == 11
}

// Phone accepts Iranian mobile numbers in the 09xxxxxxxxx format.
func Phone(phone string) bool {
	phone = NormalizeDigits(strings.TrimSpace(phone))
	return phoneRe.MatchString(phone)
}

// MessageText accepts messages of at least 5 characters after trimming.
func MessageText(text string) bool {
	return len([]rune(strings.TrimSpace(text))) >= 5
}
