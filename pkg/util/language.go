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
	"sort"
	"strings"

	"github.com/samber/lo"
)

var languageNames = map[string]string{
	"en":    "English",
	"es":    "Spanish",
	"es-la": "Spanish (Latin America)",
	"fr":    "French",
	"de":    "German",
	"pt":    "Portuguese",
	"pt-br": "Portuguese (Brazil)",
	"it":    "Italian",
	"ru":    "Russian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"zh":    "Chinese (Simplified)",
	"zh-hk": "Chinese (Traditional)",
	"ar":    "Arabic",
	"tr":    "Turkish",
	"nl":    "Dutch",
	"pl":    "Polish",
	"th":    "Thai",
	"vi":    "Vietnamese",
	"id":    "Indonesian",
	"uk":    "Ukrainian",
}

// LanguageName returns a display name for a language code, or the code itself
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// LanguageCodes returns every code LanguageName knows, sorted
func LanguageCodes() []string {
	codes := lo.Keys(languageNames)
	sort.Strings(codes)
	return codes
}

// SplitList splits a comma separated string, trimming entries and
// dropping empty ones. Order is kept.
func SplitList(value string) []string {
	return lo.FilterMap(strings.Split(value, ","), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
}

// ParseLanguageList splits a comma separated list of language codes,
// lowercasing them and removing duplicates.
func ParseLanguageList(value string) []string {
	return lo.Uniq(lo.Map(SplitList(value), func(code string, _ int) string {
		return strings.ToLower(code)
	}))
}
