// Package paging drains cursor-paginated sources into complete in-memory
// slices.
package paging

import "context"

// Page is one slice of a paged result set. An empty Cursor means the source
// is exhausted.
type Page[T any] struct {
	Items  []T
	Cursor string
}

// FetchFunc returns the page at cursor. The first call receives an empty
// cursor; later calls receive the cursor from the previous response.
type FetchFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Drain collects every page into one slice, preserving page order and item
// order within pages. Fetches are strictly sequential because each cursor
// comes from the previous response. Any page error aborts the drain with no
// partial result.
func Drain[T any](ctx context.Context, fetch FetchFunc[T]) ([]T, error) {
	var items []T
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)

		if page.Cursor == "" {
			return items, nil
		}
		cursor = page.Cursor
	}
}
