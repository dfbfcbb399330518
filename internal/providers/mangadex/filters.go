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

package mangadex

import (
	"strings"

	"Folio/pkg/core"
	"Folio/pkg/util"
)

// tag is one entry of the curated tag table. Ids come from /manga/tag.
type tag struct {
	ID    string
	Name  string
	Group string
}

var tags = []tag{
	{"b11fda93-8f1d-4bef-b2ed-8803d3733170", "4-Koma", "format"},
	{"f5ba408b-0e7a-484d-8d49-4e9125ac96de", "Full Color", "format"},
	{"3e2b8dae-350e-4ab8-a8ce-016e844b9f0d", "Long Strip", "format"},
	{"0234a31e-a729-4e28-9d6a-3f87c4966b9e", "Oneshot", "format"},
	{"e197df38-d0e7-43b5-9b09-2842d0c326dd", "Web Comic", "format"},
	{"391b0423-d847-456f-aff0-8b0cfc03066b", "Action", "genre"},
	{"87cc87cd-a395-47af-b27a-93258283bbc6", "Adventure", "genre"},
	{"4d32cc48-9f00-4cca-9b5a-a839f0764984", "Comedy", "genre"},
	{"b9af3a63-f058-46de-a9a0-e0c13906197a", "Drama", "genre"},
	{"cdc58593-87dd-415e-bbc0-2ec27bf404cc", "Fantasy", "genre"},
	{"33771934-028e-4cb3-8744-691e866a923e", "Historical", "genre"},
	{"cdad7e68-1419-41dd-bdce-27753074a640", "Horror", "genre"},
	{"ace04997-f6bd-436e-b261-779182193d3d", "Isekai", "genre"},
	{"50880a9d-5440-4732-9afb-8f457127e836", "Mecha", "genre"},
	{"c8cbe35b-1b2b-4a3f-9c37-db84c4514856", "Medical", "genre"},
	{"ee968100-4191-4968-93d3-f82d72be7e46", "Mystery", "genre"},
	{"3b60b75c-a2d7-4860-ab56-05f391bb889c", "Psychological", "genre"},
	{"423e2eae-a7a2-4a8b-ac03-a8351462d71d", "Romance", "genre"},
	{"256c8bd9-4904-4360-bf4f-508a76d67183", "Sci-Fi", "genre"},
	{"e5301a23-ebd9-49dd-a0cb-2add944c7fe9", "Slice of Life", "genre"},
	{"69964a64-2f90-4d33-beeb-f3ed2875eb4c", "Sports", "genre"},
	{"07251805-a27e-4d59-b488-f0bfbec15168", "Thriller", "genre"},
	{"f8f62932-27da-4fe4-8ee1-6779a8c5edba", "Tragedy", "genre"},
	{"a1f53773-c69a-4ce5-8cab-fffcd90b1565", "Magic", "theme"},
	{"799c202e-7daa-44eb-9cf7-8a3c0441531e", "Martial Arts", "theme"},
	{"f42fbf9e-188a-447b-9fdc-f19dc1e4d685", "Music", "theme"},
	{"caaa44eb-cd40-4177-b930-79d3ef2afe87", "School Life", "theme"},
	{"eabc5b4c-6aff-42f3-b657-3e90cbd00b75", "Supernatural", "theme"},
}

// TagID looks up a tag id by its display name
func TagID(name string) (string, bool) {
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return t.ID, true
		}
	}
	return "", false
}

// SortIndex looks up a sort key index by name
func SortIndex(name string) (int, bool) {
	for i, key := range sortKeys {
		if strings.EqualFold(key, name) {
			return i, true
		}
	}
	return 0, false
}

// SortKeys lists the sort keys in index order
func SortKeys() []string {
	return append([]string(nil), sortKeys...)
}

var originalLanguages = []string{"ja", "ko", "zh", "zh-hk", "en", "fr", "es", "id", "vi"}

// Filters describes every filter GetMangaList understands
func (p *Provider) Filters() []core.FilterDefinition {
	defs := []core.FilterDefinition{
		{Kind: core.FilterText, Name: "Title"},
		{Kind: core.FilterAuthor, Name: "Author"},
		{Kind: core.FilterToggle, Name: filterAvailableChapters},
	}

	defs = append(defs, toggles("Content rating", "contentRating", []string{"safe", "suggestive", "erotica", "pornographic"}, false)...)
	defs = append(defs, toggles("Original language", "originalLanguage", originalLanguages, true)...)
	defs = append(defs, toggles("Demographic", "publicationDemographic", []string{"shounen", "shoujo", "seinen", "josei", "none"}, false)...)
	defs = append(defs, toggles("Status", "status", []string{"ongoing", "completed", "hiatus", "cancelled"}, false)...)

	for _, t := range tags {
		defs = append(defs, core.FilterDefinition{
			Kind:       core.FilterTag,
			Name:       t.Name,
			Group:      "Tags: " + t.Group,
			ID:         t.ID,
			CanExclude: true,
		})
	}

	defs = append(defs,
		core.FilterDefinition{Kind: core.FilterSort, Name: "Sort", Options: SortKeys()},
		core.FilterDefinition{Kind: core.FilterSelect, Name: filterIncludedTagsMode, Options: []string{"AND", "OR"}},
		core.FilterDefinition{Kind: core.FilterSelect, Name: filterExcludedTagsMode, Options: []string{"AND", "OR"}},
	)
	return defs
}

func toggles(group, param string, values []string, canExclude bool) []core.FilterDefinition {
	defs := make([]core.FilterDefinition, len(values))
	for i, value := range values {
		name := value
		if param == "originalLanguage" {
			name = util.LanguageName(value)
		}
		defs[i] = core.FilterDefinition{
			Kind:       core.FilterToggle,
			Name:       name,
			Group:      group,
			ID:         param + "=" + value,
			CanExclude: canExclude,
		}
	}
	return defs
}
