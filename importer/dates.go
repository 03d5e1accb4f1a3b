// ABOUTME: Date token normalization for spreadsheet date cells
// ABOUTME: Parses M/D/Y and year-less M/D tokens into ISO YYYY-MM-DD strings
package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// twoDigitYearPivot splits 2-digit years: below it 20xx, at or above 19xx.
const twoDigitYearPivot = 50

var (
	datePartSep  = regexp.MustCompile(`[/-]`)
	multiDateSep = regexp.MustCompile(`[,;:]`)

	// datePrefix recognizes cells that start like a date, used to reject
	// date values that land in a name column.
	datePrefix = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}|^\d{4}[/-]\d{1,2}[/-]\d{1,2}`)
)

// ParseDateToken parses a single date token. Tokens split on "/" or "-" into
// either month/day/year or a year-less month/day, in which case defaultYear
// is applied; a zero defaultYear fails the token. Two-digit years pivot at
// 50, impossible calendar dates such as 2/30 are rejected by round-tripping
// through time.Date.
func ParseDateToken(token string, defaultYear int) (string, bool) {
	parts := datePartSep.Split(strings.TrimSpace(token), -1)

	var month, day, year int
	switch len(parts) {
	case 3:
		m, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		d, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		y, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return "", false
		}
		month, day, year = m, d, expandYear(y)
	case 2:
		if defaultYear == 0 {
			return "", false
		}
		m, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		d, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return "", false
		}
		month, day, year = m, d, defaultYear
	default:
		return "", false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2100 {
		return "", false
	}

	// time.Date normalizes overflow (Feb 30 becomes Mar 1/2), so an exact
	// round-trip check rejects impossible calendar dates.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != month || t.Day() != day || t.Year() != year {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// ParseDateCell parses a cell that may hold several date tokens separated by
// commas, semicolons or colons. Unparseable tokens are dropped, survivors are
// returned ascending.
func ParseDateCell(cell string, defaultYear int) []string {
	var dates []string
	for _, token := range multiDateSep.Split(cell, -1) {
		if strings.TrimSpace(token) == "" {
			continue
		}
		if iso, ok := ParseDateToken(token, defaultYear); ok {
			dates = append(dates, iso)
		}
	}
	sort.Strings(dates)
	return dates
}

// YearlessTokens scans a date column's raw values for tokens that carry no
// year. It returns up to a handful of samples for the clarification prompt
// and the total count of affected tokens.
func YearlessTokens(values []string) (samples []string, count int) {
	const maxSamples = 5
	for _, cell := range values {
		for _, token := range multiDateSep.Split(cell, -1) {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if !isYearlessToken(token) {
				continue
			}
			count++
			if len(samples) < maxSamples {
				samples = append(samples, token)
			}
		}
	}
	return samples, count
}

// isYearlessToken reports whether a token has exactly two numeric parts.
func isYearlessToken(token string) bool {
	parts := datePartSep.Split(token, -1)
	if len(parts) != 2 {
		return false
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(strings.TrimSpace(p)); err != nil {
			return false
		}
	}
	return true
}

// looksLikeDate reports whether a value starts like a date. Used to keep
// date-shaped values out of the name field.
func looksLikeDate(value string) bool {
	return datePrefix.MatchString(strings.TrimSpace(value))
}

func expandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y < twoDigitYearPivot {
		return 2000 + y
	}
	return 1900 + y
}
