package format

import (
	"fmt"
	"strings"
	"time"
)

// Unknown is rendered when a date cannot be converted.
const Unknown = "نامشخص"

// JalaliDate formats t as a Jalali yyyy/mm/dd string.
func JalaliDate(t time.Time) string {
	jy, jm, jd := toJalali(t.Year(), int(t.Month()), t.Day())
	return fmt.Sprintf("%04d/%02d/%02d", jy, jm, jd)
}

// JalaliFromString converts a stored date to Jalali. Strings already in
// the yyyy/mm/dd shape pass through unchanged; unparseable input renders
// as Unknown.
func JalaliFromString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	if strings.Count(s, "/") == 2 {
		return s
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return JalaliDate(t)
		}
	}
	return Unknown
}

var jalaliMonthDays = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}

// toJalali converts a Gregorian date to Jalali using the arithmetic
// 33-year cycle algorithm.
func toJalali(gy, gm, gd int) (int, int, int) {
	gdm := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

	gy2 := gy - 1600
	gm2 := gm - 1
	gd2 := gd - 1

	gDayNo := 365*gy2 + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400
	for i := 0; i < gm2; i++ {
		gDayNo += gdm[i]
	}
	if gm2 > 1 && ((gy%4 == 0 && gy%100 != 0) || gy%400 == 0) {
		gDayNo++
	}
	gDayNo += gd2

	jDayNo := gDayNo - 79
	jNp := jDayNo / 12053
	jDayNo %= 12053

	jy := 979 + 33*jNp + 4*(jDayNo/1461)
	jDayNo %= 1461

	if jDayNo >= 366 {
		jy += (jDayNo - 1) / 365
		jDayNo = (jDayNo - 1) % 365
	}

	jm := 0
	for jm < 11 && jDayNo >= jalaliMonthDays[jm] {
		jDayNo -= jalaliMonthDays[jm]
		jm++
	}
	return jy, jm + 1, jDayNo + 1
}
