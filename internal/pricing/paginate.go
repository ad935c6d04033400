package pricing

const PageSize = 5

type Page[T any] struct {
	Items   []T
	Current int // zero-based, already clamped
	Total   int // at least 1
}

func (p Page[T]) HasPrev() bool { return p.Current > 0 }
func (p Page[T]) HasNext() bool { return p.Current < p.Total-1 }

// Paginate slices items into pages of size and clamps page into [0, Total-1].
// Out of range pages never fail.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = PageSize
	}
	total := (len(items) + size - 1) / size
	if total < 1 {
		total = 1
	}
	if page < 0 {
		page = 0
	}
	if page > total-1 {
		page = total - 1
	}
	start := page * size
	end := min(start+size, len(items))
	if start > len(items) {
		start = len(items)
	}
	return Page[T]{Items: items[start:end], Current: page, Total: total}
}
