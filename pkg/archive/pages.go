package archive

// TotalPages is the number of pages needed to show total messages perPage at
// a time.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// PageOf returns the 1-based page of the message at chronological position
// index (0 is the oldest) in a month of total messages.
//
// Oldest-first pages fill from the start of the month. New-on-top pages fill
// from the newest message, so the last page is the one shown first and page 1
// holds the remainder.
func PageOf(index, total, perPage int, newOnTop bool) int {
	if perPage <= 0 {
		return 1
	}
	if !newOnTop {
		return index/perPage + 1
	}
	return TotalPages(total, perPage) - (total-1-index)/perPage
}

// Page is one page of a month with the messages shown on it.
type Page struct {
	Number   int
	Messages []Message
}

// Paginate splits the messages of a month into pages numbered with PageOf.
// Pages and the messages on each are oldest first, or newest first when
// newOnTop is set.
func Paginate(msgs []Message, perPage int, newOnTop bool) []Page {
	total := len(msgs)
	if total == 0 || perPage <= 0 {
		return nil
	}
	sorted := append([]Message(nil), msgs...)
	SortMessages(sorted)

	pages := make([]Page, TotalPages(total, perPage))
	for i := range pages {
		pages[i].Number = i + 1
	}
	for i, m := range sorted {
		n := PageOf(i, total, perPage, newOnTop)
		pages[n-1].Messages = append(pages[n-1].Messages, m)
	}
	if newOnTop {
		reverse(pages)
		for i := range pages {
			reverse(pages[i].Messages)
		}
	}
	return pages
}
