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

var listPage int

var listCmd = &cobra.Command{
	Use:   "list [listing]",
	Short: "Show one page of a named listing",
	Long:  `Show one page of a provider listing such as Popular or Latest. Without an argument the first listing of the provider is used.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prov, err := selectedProvider()
		if err != nil {
			return err
		}

		listings := prov.Listings()
		if len(listings) == 0 {
			return errors.Track(errors.ErrInvalidInput).
				WithMessagef("provider '%s' has no listings", prov.ID()).
				AsValidation().
				Error()
		}

		listing := listings[0]
		if len(args) == 1 {
			found, ok := lo.Find(listings, func(l core.Listing) bool {
				return strings.EqualFold(l.Name, args[0])
			})
			if !ok {
				names := lo.Map(listings, func(l core.Listing, _ int) string { return l.Name })
				return errors.Track(errors.ErrInvalidInput).
					WithMessagef("unknown listing '%s'", args[0]).
					WithContext("available_listings", strings.Join(names, ", ")).
					AsValidation().
					Error()
			}
			listing = found
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := prov.GetMangaListing(ctx, listing, listPage)
		if err != nil {
			return err
		}

		return emit(cmd, result, func() {
			formatter.PrintMangaPage(result, prov, fmt.Sprintf("%s on %s", listing.Name, prov.Name()), listPage)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number, starting at 1")
}
