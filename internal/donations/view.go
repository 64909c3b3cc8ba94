package donations

import (
	"strings"
	"time"

	"givetrack/internal/domain"
)

// ViewItem is the render-ready projection of a single donation.
type ViewItem struct {
	ID            string    `json:"id"`
	DonorName     string    `json:"donor_name"`
	ReceiverName  string    `json:"receiver_name"`
	Amount        float64   `json:"amount"`
	AmountDisplay string    `json:"amount_display"`
	Date          time.Time `json:"date"`
}

// ViewModel is one page of the filtered donation list.
type ViewModel struct {
	Items      []ViewItem `json:"items"`
	Query      string     `json:"query"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
	TotalCount int        `json:"total_count"`
}

// DeriveView projects the cached collection into a filtered, paginated view.
// It is pure: the cache is never mutated, and calling it twice with the same
// inputs yields the same output.
//
// The filter matches the query case-insensitively as a substring against
// donor name, receiver name, and the decimal form of the amount. The page
// is clamped into [1, max(1, totalPages)], so a query change with no page
// sent lands on page 1 and a stale high page after a shrink clamps to the
// last page instead of rendering empty.
func DeriveView(cache []domain.Donation, query string, page, pageSize int) ViewModel {
	if pageSize < 1 {
		pageSize = 1
	}

	filtered := filter(cache, query)

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	// 1 <= page <= max(1, totalPages) always holds.
	if page > totalPages {
		page = totalPages
		if page < 1 {
			page = 1
		}
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	items := make([]ViewItem, 0, end-start)
	for _, d := range filtered[start:end] {
		items = append(items, ViewItem{
			ID:            d.ID,
			DonorName:     d.DonorName,
			ReceiverName:  d.ReceiverName,
			Amount:        d.Amount,
			AmountDisplay: d.AmountDisplay(),
			Date:          d.Date,
		})
	}

	return ViewModel{
		Items:      items,
		Query:      query,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: len(filtered),
	}
}

func filter(cache []domain.Donation, query string) []domain.Donation {
	if query == "" {
		return cache
	}
	q := strings.ToLower(query)
	var out []domain.Donation
	for _, d := range cache {
		if strings.Contains(strings.ToLower(d.DonorName), q) ||
			strings.Contains(strings.ToLower(d.ReceiverName), q) ||
			strings.Contains(d.AmountSearchText(), q) {
			out = append(out, d)
		}
	}
	return out
}
