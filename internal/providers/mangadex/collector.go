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
	"context"
	"encoding/json"

	"Folio/pkg/engine/network"

	"github.com/samber/lo"
)

// collectOptions bounds one paginated walk
type collectOptions struct {
	PageSize int
	// Offset of the first page
	Offset int
	// MaxPages caps the number of requests; 0 means until total
	MaxPages int
}

// collected is the raw outcome of a paginated walk
type collected struct {
	Records []json.RawMessage
	// Total as reported by the first page
	Total   int
	Offsets []int
}

// collect walks an offset-paginated endpoint. urlFor builds the request for
// one offset. The total of the first page is authoritative for the whole
// walk; an empty page also ends it. Any fetch failure fails the walk.
func collect(ctx context.Context, fetcher network.Fetcher, opts collectOptions, urlFor func(offset int) string) (*collected, error) {
	if opts.PageSize <= 0 {
		opts.PageSize = listingPageSize
	}
	result := &collected{}
	offset := opts.Offset

	for {
		var page collectionResponse
		if err := fetcher.GetJSON(ctx, urlFor(offset), &page); err != nil {
			return nil, err
		}

		if len(result.Offsets) == 0 {
			result.Total = page.Total
		}
		result.Offsets = append(result.Offsets, offset)
		result.Records = append(result.Records, page.Data...)

		offset += opts.PageSize
		switch {
		case len(page.Data) == 0:
			return result, nil
		case offset >= result.Total:
			return result, nil
		case opts.MaxPages > 0 && len(result.Offsets) >= opts.MaxPages:
			return result, nil
		}
	}
}

// distinctOwners lists the manga referenced by feed records in first-seen
// order without duplicates. Records that cannot be read are dropped.
func (p *Provider) distinctOwners(records []json.RawMessage) []string {
	owners := mapEach(records, p.logger, p.mapper.owners)
	return lo.Uniq(lo.Flatten(owners))
}
