package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tobibamidele/spotter/config"
	"github.com/tobibamidele/spotter/errors"
	"github.com/tobibamidele/spotter/events"
	"github.com/tobibamidele/spotter/models"
	"github.com/tobibamidele/spotter/session"
)

// API paths of the booking service.
const (
	pathServices     = "/myturner/api/get-services"
	pathServiceSlots = "/myturner/api/service-slots/"
	pathMakeBooking  = "/myturner/api/make-booking"
	pathMultiBooking = "/myturner/api/make-multi-booking"
	pathCancel       = "/myturner/api/cancel-booking"
	pathCheckin      = "/myturner/api/make-checkin"
	pathBookings     = "/bookings"
)

// Client talks to the remote booking service through the session-aware
// transport. All methods return result values; transport failures are
// surfaced as-is and never retried here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
	bus        *events.Bus
	logger     zerolog.Logger
}

// New creates a new booking service client. The session store feeds the
// transport hooks and the bus receives detached session-expiry events.
func New(cfg *config.Config, sessions session.Store, bus *events.Bus, logger zerolog.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSec), cfg.RateLimit.BurstSize)
	}

	return &Client{
		baseURL: cfg.Remote.BaseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Remote.RequestTimeout,
			Transport: newSessionTransport(nil, sessions, cfg.Remote, limiter, logger),
		},
		sessions: sessions,
		bus:      bus,
		logger:   logger,
	}
}

// apiEnvelope is the common shape of the service's JSON responses. A
// response is only a business success when Status is "ok", even on
// HTTP 200.
type apiEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *apiEnvelope) ok() bool {
	return e.Status == "ok"
}

// reject builds the business-rejection error: the server-provided message
// when present, wrapped around the operation's fallback sentinel.
func (e *apiEnvelope) reject(fallback error) error {
	if e.Message != "" {
		return fmt.Errorf("%w: %s", fallback, e.Message)
	}
	return fallback
}

// Services fetches the service catalog.
func (c *Client) Services(ctx context.Context) ([]models.Service, error) {
	raw, err := c.getRaw(ctx, pathServices)
	if err != nil {
		return nil, fmt.Errorf("client.Services: %w", err)
	}

	var resp servicesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("client.Services: decode response: %w", err)
	}

	services := make([]models.Service, 0, len(resp.Data))
	for _, dto := range resp.Data {
		services = append(services, dto.toDomain())
	}
	return services, nil
}

// ServiceSlots fetches and normalizes per-service availability. Missing
// fields in the document are defaulted, never fatal; the only error paths
// are transport and top-level deserialization failures.
func (c *Client) ServiceSlots(ctx context.Context, serviceID int) (map[string]models.DaySlots, error) {
	raw, err := c.getRaw(ctx, pathServiceSlots+strconv.Itoa(serviceID))
	if err != nil {
		return nil, fmt.Errorf("client.ServiceSlots: %w", err)
	}

	slots, err := normalizeFreeSlots(raw)
	if err != nil {
		return nil, fmt.Errorf("client.ServiceSlots: %w", err)
	}
	return slots, nil
}

// MakeBooking creates a booking and returns the new booking id, or -1
// when the server confirms without reporting one.
func (c *Client) MakeBooking(ctx context.Context, serviceID, tableID, people int, date, start, end string) (int, error) {
	env, err := c.postMultipart(ctx, pathMakeBooking, [][2]string{
		{"people", strconv.Itoa(people)},
		{"date", date},
		{"hour", start + "-" + end},
		{"service", strconv.Itoa(serviceID)},
		{"myturn_pitch", strconv.Itoa(tableID)},
	})
	if err != nil {
		return 0, fmt.Errorf("client.MakeBooking: %w", err)
	}
	if !env.ok() {
		return 0, fmt.Errorf("client.MakeBooking: %w", env.reject(errors.ErrBookingRejected))
	}

	var data struct {
		BookingID *int `json:"booking_id"`
	}
	if err := json.Unmarshal(env.Data, &data); err == nil && data.BookingID != nil {
		return *data.BookingID, nil
	}
	return -1, nil
}

// MakeMultiBooking extends an existing booking with additional slots. The
// slot list travels as a JSON-array string inside a multipart field.
func (c *Client) MakeMultiBooking(ctx context.Context, originalBookingID int, items []models.MultiBookingItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("client.MakeMultiBooking: encode items: %w", err)
	}

	env, err := c.postMultipart(ctx, pathMultiBooking, [][2]string{
		{"bookingId", strconv.Itoa(originalBookingID)},
		{"mbdata", string(payload)},
	})
	if err != nil {
		return fmt.Errorf("client.MakeMultiBooking: %w", err)
	}
	if !env.ok() {
		return fmt.Errorf("client.MakeMultiBooking: %w", env.reject(errors.ErrBookingRejected))
	}
	return nil
}

// CancelBooking cancels a booking by id.
func (c *Client) CancelBooking(ctx context.Context, bookingID int) error {
	env, err := c.postMultipart(ctx, pathCancel, [][2]string{
		{"booking", strconv.Itoa(bookingID)},
	})
	if err != nil {
		return fmt.Errorf("client.CancelBooking: %w", err)
	}
	if !env.ok() {
		return fmt.Errorf("client.CancelBooking: %w", env.reject(errors.ErrBookingRejected))
	}
	return nil
}

// MakeCheckin checks in to a booking. The server must both answer "ok"
// and report result true in the payload.
func (c *Client) MakeCheckin(ctx context.Context, bookingID, people int, freeCapacity bool) error {
	env, err := c.postMultipart(ctx, pathCheckin, [][2]string{
		{"people", strconv.Itoa(people)},
		{"booking_id", strconv.Itoa(bookingID)},
		{"freecapacity", strconv.FormatBool(freeCapacity)},
	})
	if err != nil {
		return fmt.Errorf("client.MakeCheckin: %w", err)
	}
	if !env.ok() {
		return fmt.Errorf("client.MakeCheckin: %w", env.reject(errors.ErrCheckinIncomplete))
	}

	var data struct {
		Result bool `json:"result"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || !data.Result {
		return fmt.Errorf("client.MakeCheckin: %w", errors.ErrCheckinIncomplete)
	}
	return nil
}

// MyBookings fetches the bookings page and scrapes it into booking rows.
// The page is server-rendered HTML; rows that fail to parse are skipped.
func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	raw, err := c.getRaw(ctx, pathBookings)
	if err != nil {
		return nil, fmt.Errorf("client.MyBookings: %w", err)
	}

	bookings, err := scrapeBookings(bytes.NewReader(raw), c.logger)
	if err != nil {
		return nil, fmt.Errorf("client.MyBookings: %w", err)
	}
	return bookings, nil
}

// getRaw performs a GET and returns the response body, classifying any
// non-2xx status.
func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.classify(resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// postMultipart performs a multipart form POST and decodes the JSON
// envelope, classifying any non-2xx status.
func (c *Client) postMultipart(ctx context.Context, path string, fields [][2]string) (*apiEnvelope, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("encode form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.classify(resp.StatusCode, readErrorBody(resp.Body))
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}

// readErrorBody extracts a short context message from an error response.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 1<<10))
	if err != nil {
		return ""
	}
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return ""
}
