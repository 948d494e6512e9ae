package client

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/tobibamidele/spotter/models"
)

// scrapeBookings parses the server-rendered bookings page. The page is a
// flat list of <li> items: date headers carry a .col-full column and
// booking rows carry the table-row class plus a numeric data-id. Rows
// whose data-id is empty or still an unrendered {{template}} are skipped,
// as are rows that fail to parse.
func scrapeBookings(html io.Reader, logger zerolog.Logger) ([]models.Booking, error) {
	doc, err := goquery.NewDocumentFromReader(html)
	if err != nil {
		return nil, fmt.Errorf("parse bookings page: %w", err)
	}

	var bookings []models.Booking
	currentDate := "unknown date"

	doc.Find("li").Each(func(_ int, item *goquery.Selection) {
		// Date headers apply to every row until the next header.
		if header := strings.TrimSpace(item.Find(".col-full").Text()); header != "" {
			currentDate = header
			return
		}

		if !item.HasClass("table-row") {
			return
		}

		dataID, _ := item.Attr("data-id")
		if dataID == "" || strings.Contains(dataID, "{{") || strings.Contains(dataID, "}}") {
			return
		}
		id, err := strconv.Atoi(dataID)
		if err != nil {
			logger.Debug().Str("data_id", dataID).Msg("skipping booking row with non-numeric id")
			return
		}

		// Location and table name share one column; the table name sits
		// in a nested <p> and is stripped from the combined text.
		tableName := strings.TrimSpace(item.Find(".booking-l p").Text())
		location := strings.TrimSpace(strings.Replace(
			strings.TrimSpace(item.Find(".booking-l").Text()), tableName, "", 1))

		statusText := strings.TrimSpace(item.Find(".col-6").Text())

		bookings = append(bookings, models.Booking{
			ID:         id,
			Date:       currentDate,
			StartTime:  strings.TrimSpace(item.Find(".fromtime").Text()),
			EndTime:    strings.TrimSpace(item.Find(".totime").Text()),
			Location:   location,
			TableName:  tableName,
			StatusText: statusText,
			Status:     models.ParseBookingStatus(statusText),
		})
	})

	return bookings, nil
}

// ExtractAlias pulls the logged-in user's display name out of a captured
// page. The name sits in the account dropdown followed by " -"; returns
// "" when the page has no such element.
func ExtractAlias(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	text := strings.TrimSpace(doc.Find("div.dropdown-item.info-name p").First().Text())
	if text == "" {
		return ""
	}
	text = strings.TrimSuffix(text, "-")
	return strings.TrimSpace(text)
}
