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
	"Folio/pkg/core"
	"Folio/pkg/provider"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// providerInfo is the JSON shape of one provider
type providerInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SiteURL     string   `json:"site_url"`
	Listings    []string `json:"listings"`
}

func describeProvider(p provider.Provider) providerInfo {
	return providerInfo{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		SiteURL:     p.SiteURL(),
		Listings:    lo.Map(p.Listings(), func(l core.Listing, _ int) string { return l.Name }),
	}
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List all available catalog providers",
	Long:  `Display a list of all catalog providers that Folio can query.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provs := appEngine.AllProviders()
		return emit(cmd, lo.Map(provs, func(p provider.Provider, _ int) providerInfo { return describeProvider(p) }), func() {
			formatter.PrintProviderList(provs)
		})
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
