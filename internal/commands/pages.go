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
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages [provider:chapter-id]",
	Short: "List the page images of a chapter",
	Long:  `List the page image URLs of a chapter. Data-saver and port preferences apply.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prov, chapterID, err := resolveID(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		pages, err := prov.GetPageList(ctx, chapterID)
		if err != nil {
			return err
		}

		return emit(cmd, pages, func() {
			formatter.PrintPageList(chapterID, pages)
		})
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
