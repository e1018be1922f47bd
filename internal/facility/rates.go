package facility

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/sells-group/scout-cli/internal/model"
)

// RoomRate is one line of the "Room Types and Rates" overview.
type RoomRate struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

// RoomRates renders the three room slots. A slot without a room type or
// with an "N/A" price shows "N/A"; unnamed slots fall back to "Room Type N".
func RoomRates(f model.Facility) []RoomRate {
	slots := f.RoomSlots()
	rates := make([]RoomRate, 0, len(slots))
	for i, s := range slots {
		label := s.Type
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("Room Type %d", i+1)
		}
		price := model.NotAvailable
		if model.Present(s.Type) && model.Present(s.Price) {
			price = FormatPrice(s.Price)
		}
		rates = append(rates, RoomRate{Label: label, Price: price})
	}
	return rates
}

// Amenity display limits on the profile page.
const (
	MaxAmenities       = 25
	AmenitiesPerColumn = 5
)

var markupTag = regexp.MustCompile(`<[^>]*>`)

// Amenities splits the facility's amenity markup on "<li>" and returns at
// most limit cleaned items. Text before the first "<li>" is not an item.
// limit <= 0 means no limit.
func Amenities(f model.Facility, limit int) []string {
	if f.FacAmenities == "" {
		return nil
	}
	parts := strings.Split(f.FacAmenities, "<li>")[1:]
	if limit > 0 && len(parts) > limit {
		parts = parts[:limit]
	}
	var items []string
	for _, p := range parts {
		item := strings.TrimSpace(html.UnescapeString(markupTag.ReplaceAllString(p, "")))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Columns chunks items into columns of perColumn entries.
func Columns(items []string, perColumn int) [][]string {
	if perColumn < 1 {
		perColumn = 1
	}
	var cols [][]string
	for start := 0; start < len(items); start += perColumn {
		end := min(start+perColumn, len(items))
		cols = append(cols, items[start:end])
	}
	return cols
}

// ReviewScore renders the average review score, or "N/A" when absent or zero.
func ReviewScore(f model.Facility) string {
	if f.AverageReviewScore == nil || *f.AverageReviewScore == 0 {
		return model.NotAvailable
	}
	return fmt.Sprintf("%.1f", *f.AverageReviewScore)
}
