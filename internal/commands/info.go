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
	"context"

	"Folio/pkg/core"
	"Folio/pkg/errors"
	"Folio/pkg/provider"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var infoChapters bool

// mangaInfo is the JSON shape of the info command
type mangaInfo struct {
	Manga    *core.Manga    `json:"manga"`
	Chapters []core.Chapter `json:"chapters,omitempty"`
}

var infoCmd = &cobra.Command{
	Use:   "info [provider:manga-id]",
	Short: "Get detailed information about a manga",
	Long:  `Get detailed information about a manga. With --chapters the full chapter list is fetched alongside the details.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prov, mangaID, err := resolveID(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		info, err := fetchMangaInfo(ctx, prov, mangaID, infoChapters)
		if err != nil {
			return err
		}

		return emit(cmd, info, func() {
			chapters := info.Chapters
			if infoChapters && chapters == nil {
				chapters = []core.Chapter{}
			}
			formatter.PrintMangaInfo(info.Manga, chapters, prov)
		})
	},
}

// fetchMangaInfo loads details and, when asked, the chapter list in parallel
func fetchMangaInfo(ctx context.Context, prov provider.Provider, mangaID string, withChapters bool) (*mangaInfo, error) {
	info := &mangaInfo{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		manga, err := prov.GetMangaDetails(gctx, mangaID)
		info.Manga = manga
		return err
	})
	if withChapters {
		g.Go(func() error {
			chapters, err := prov.GetChapterList(gctx, mangaID)
			info.Chapters = chapters
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return info, nil
}

// resolveID splits "provider:id" and looks up the provider. Bare ids use
// the --provider flag.
func resolveID(combined string) (provider.Provider, string, error) {
	provID, id, err := core.ParseMangaID(combined, providerID)
	if err != nil {
		return nil, "", errors.Track(errors.ErrInvalidInput).
			WithMessage(err.Error()).
			WithContext("id", combined).
			AsValidation().
			Error()
	}

	prov, err := appEngine.GetProvider(provID)
	if err != nil {
		return nil, "", err
	}
	return prov, id, nil
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoChapters, "chapters", false, "Also list every chapter")
}
