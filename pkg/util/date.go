// Folio: catalog adapters for manga reader applications.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package util

import (
	"strings"
	"time"
)

// ParseNullableDate safely parses a date string, returning nil if empty or invalid
func ParseNullableDate(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil
	}

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}

// EpochSeconds converts a timestamp to seconds since the Unix epoch.
// Empty or unparseable input yields -1.
func EpochSeconds(dateStr string) float64 {
	t := ParseNullableDate(dateStr)
	if t == nil {
		return -1
	}
	return float64(t.Unix())
}

// FormatEpoch formats epoch seconds for display
func FormatEpoch(seconds float64) string {
	if seconds < 0 {
		return "Unknown"
	}
	return time.Unix(int64(seconds), 0).UTC().Format("2006-01-02")
}
