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

package commands

import (
	"fmt"
	"strings"

	"Folio/pkg/core"
	"Folio/pkg/errors"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// searchOptions are the search flags before they are bound to a provider's
// filter catalog
type searchOptions struct {
	Title       string
	Author      string
	Tags        []string
	ExcludeTags []string
	Sort        string
	Ascending   bool
	Languages   []string
	Available   bool
	Page        int
}

var searchOpts searchOptions

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog",
	Long: `Search the catalog of a provider by title, author, tags and original language.
Tag, sort and language names are matched against the provider's filter catalog (see 'folio filters').`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prov, err := selectedProvider()
		if err != nil {
			return err
		}

		filters, err := buildFilters(prov.Filters(), searchOpts)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := prov.GetMangaList(ctx, filters, searchOpts.Page)
		if err != nil {
			return err
		}

		return emit(cmd, result, func() {
			if debugMode {
				formatter.PrintSearchInfo(filters, searchOpts.Page)
			}
			formatter.PrintMangaPage(result, prov, fmt.Sprintf("Results from %s", prov.Name()), searchOpts.Page)
		})
	},
}

// buildFilters translates search flags into filters understood by the
// catalog described by defs. Names are matched case-insensitively.
func buildFilters(defs []core.FilterDefinition, opts searchOptions) ([]core.Filter, error) {
	var filters []core.Filter

	if opts.Title != "" {
		def, _ := findDefinition(defs, core.FilterText, "")
		filters = append(filters, core.TextFilter(lo.Ternary(def.Name != "", def.Name, "Title"), opts.Title))
	}
	if opts.Author != "" {
		def, _ := findDefinition(defs, core.FilterAuthor, "")
		filters = append(filters, core.AuthorFilter(lo.Ternary(def.Name != "", def.Name, "Author"), opts.Author))
	}

	for _, lang := range opts.Languages {
		def, ok := lo.Find(defs, func(d core.FilterDefinition) bool {
			return d.Kind == core.FilterToggle && strings.HasPrefix(d.ID, "originalLanguage=") &&
				strings.EqualFold(strings.TrimPrefix(d.ID, "originalLanguage="), lang)
		})
		if !ok {
			return nil, unknownFilterValue("language", lang)
		}
		filters = append(filters, core.ToggleFilter(def.Name, def.ID, core.StateIncluded))
	}

	if opts.Available {
		def, ok := lo.Find(defs, func(d core.FilterDefinition) bool {
			return d.Kind == core.FilterToggle && d.ID == "" && strings.Contains(strings.ToLower(d.Name), "available")
		})
		if !ok {
			return nil, unknownFilterValue("filter", "available chapters")
		}
		filters = append(filters, core.ToggleFilter(def.Name, "", core.StateIncluded))
	}

	for _, group := range []struct {
		names []string
		state int
	}{{opts.Tags, core.StateIncluded}, {opts.ExcludeTags, core.StateExcluded}} {
		for _, name := range group.names {
			def, ok := findDefinition(defs, core.FilterTag, name)
			if !ok {
				return nil, unknownFilterValue("tag", name)
			}
			if group.state == core.StateExcluded && !def.CanExclude {
				return nil, errors.Track(errors.ErrInvalidInput).
					WithMessagef("tag '%s' cannot be excluded", def.Name).
					AsValidation().
					Error()
			}
			filters = append(filters, core.TagFilter(def.Name, def.ID, group.state))
		}
	}

	if opts.Sort != "" {
		def, ok := findDefinition(defs, core.FilterSort, "")
		if !ok {
			return nil, unknownFilterValue("sort", opts.Sort)
		}
		index := lo.IndexOf(lo.Map(def.Options, func(o string, _ int) string { return strings.ToLower(o) }), strings.ToLower(opts.Sort))
		if index < 0 {
			return nil, errors.Track(unknownFilterValue("sort", opts.Sort)).
				WithContext("options", strings.Join(def.Options, ", ")).
				Error()
		}
		filters = append(filters, core.SortFilter(def.Name, index, opts.Ascending))
	}

	return filters, nil
}

// findDefinition returns the first definition of kind, matching name when given
func findDefinition(defs []core.FilterDefinition, kind core.FilterKind, name string) (core.FilterDefinition, bool) {
	return lo.Find(defs, func(d core.FilterDefinition) bool {
		return d.Kind == kind && (name == "" || strings.EqualFold(d.Name, name))
	})
}

func unknownFilterValue(what, value string) error {
	return errors.Track(errors.ErrInvalidInput).
		WithMessagef("unknown %s '%s'", what, value).
		WithContext("hint", "run 'folio filters' to list what the provider supports").
		AsValidation().
		Error()
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchOpts.Title, "title", "", "Title to search for")
	searchCmd.Flags().StringVar(&searchOpts.Author, "author", "", "Author to search for")
	searchCmd.Flags().StringSliceVar(&searchOpts.Tags, "tag", nil, "Tag that results must have (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchOpts.ExcludeTags, "exclude-tag", nil, "Tag that results must not have (repeatable)")
	searchCmd.Flags().StringVar(&searchOpts.Sort, "sort", "", "Sort key, e.g. followedCount or title")
	searchCmd.Flags().BoolVar(&searchOpts.Ascending, "asc", false, "Sort ascending instead of descending")
	searchCmd.Flags().StringSliceVar(&searchOpts.Languages, "lang", nil, "Original language code (repeatable)")
	searchCmd.Flags().BoolVar(&searchOpts.Available, "available", false, "Only entries with chapters in the preferred languages")
	searchCmd.Flags().IntVar(&searchOpts.Page, "page", 1, "Page number, starting at 1")
}
