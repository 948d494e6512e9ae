package client

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tobibamidele/spotter/models"
)

const bookingsPage = `
<ul>
  <li><div class="col-full">Miércoles, 07/01/2026</div></li>
  <li class="table-row" data-id="1234">
    <span class="fromtime">08:30</span>
    <span class="totime">10:30</span>
    <div class="booking-l">Planta 2 <p>Fila 1;Mesa 04</p></div>
    <div class="col-6">Aceptado</div>
  </li>
  <li class="table-row" data-id="{{id}}">
    <span class="fromtime">10:30</span>
    <div class="col-6">Aceptado</div>
  </li>
  <li class="table-row" data-id="">
    <div class="col-6">Aceptado</div>
  </li>
  <li class="table-row" data-id="notanumber">
    <div class="col-6">Aceptado</div>
  </li>
  <li><div class="col-full">Jueves, 08/01/2026</div></li>
  <li class="table-row" data-id="5678">
    <span class="fromtime">12:30</span>
    <span class="totime">14:30</span>
    <div class="booking-l">Planta 1 <p>Fila 2;Mesa 01</p></div>
    <div class="col-6">Cancelado</div>
  </li>
</ul>`

func TestScrapeBookings(t *testing.T) {
	bookings, err := scrapeBookings(strings.NewReader(bookingsPage), zerolog.Nop())
	if err != nil {
		t.Fatalf("scrapeBookings: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("bookings = %d, want 2 (template, empty and junk ids skipped)", len(bookings))
	}

	first := bookings[0]
	if first.ID != 1234 {
		t.Errorf("ID = %d", first.ID)
	}
	if first.Date != "Miércoles, 07/01/2026" {
		t.Errorf("Date = %q", first.Date)
	}
	if first.StartTime != "08:30" || first.EndTime != "10:30" {
		t.Errorf("window = %s-%s", first.StartTime, first.EndTime)
	}
	if first.TableName != "Fila 1;Mesa 04" {
		t.Errorf("TableName = %q", first.TableName)
	}
	if first.Location != "Planta 2" {
		t.Errorf("Location = %q", first.Location)
	}
	if first.Status != models.StatusAccepted || first.StatusText != "Aceptado" {
		t.Errorf("status = %v (%q)", first.Status, first.StatusText)
	}
	if first.ReservationTime != nil {
		t.Error("scraped bookings carry no reservation time")
	}

	second := bookings[1]
	if second.ID != 5678 || second.Date != "Jueves, 08/01/2026" {
		t.Errorf("second = %+v", second)
	}
	if second.Status != models.StatusCancelled {
		t.Errorf("second status = %v", second.Status)
	}
}

func TestScrapeBookingsRowBeforeHeader(t *testing.T) {
	page := `<ul><li class="table-row" data-id="9">
	  <span class="fromtime">08:30</span><span class="totime">10:30</span>
	  <div class="col-6">Aceptado</div>
	</li></ul>`

	bookings, err := scrapeBookings(strings.NewReader(page), zerolog.Nop())
	if err != nil {
		t.Fatalf("scrapeBookings: %v", err)
	}
	if len(bookings) != 1 || bookings[0].Date != "unknown date" {
		t.Errorf("bookings = %+v, want one row under the placeholder date", bookings)
	}
}

func TestScrapeBookingsEmptyPage(t *testing.T) {
	bookings, err := scrapeBookings(strings.NewReader("<html><body></body></html>"), zerolog.Nop())
	if err != nil {
		t.Fatalf("scrapeBookings: %v", err)
	}
	if len(bookings) != 0 {
		t.Errorf("bookings = %d, want 0", len(bookings))
	}
}

func TestExtractAlias(t *testing.T) {
	html := `<div class="dropdown-item info-name"><p> María García - </p></div>`
	if got := ExtractAlias(html); got != "María García" {
		t.Errorf("ExtractAlias = %q, want María García", got)
	}

	if got := ExtractAlias("<html><body></body></html>"); got != "" {
		t.Errorf("ExtractAlias on empty page = %q, want empty", got)
	}
}
