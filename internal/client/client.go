package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotelms/internal/booking"
	"hotelms/internal/domain"
	"hotelms/internal/models"

	"github.com/redis/go-redis/v9"
)

// HotelClient is a typed HTTP client for the hotel REST API. The booking
// front end and other internal consumers talk to the service through it.
type HotelClient struct {
	baseURL    string
	apiKey     string
	apiExtra   string
	httpClient *http.Client

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewHotelClient constructs a client with baseURL, API key and extra header.
func NewHotelClient(baseURL, apiKey, apiExtra string) *HotelClient {
	return &HotelClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		apiExtra:   apiExtra,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache configures optional Redis caching for GET endpoints.
func (c *HotelClient) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// ListRooms returns all rooms.
func (c *HotelClient) ListRooms(ctx context.Context) ([]models.Room, error) {
	return c.roomList(ctx, "/api/v1/rooms", "rooms:all")
}

// ListAvailableRooms returns rooms currently open for booking.
func (c *HotelClient) ListAvailableRooms(ctx context.Context) ([]models.Room, error) {
	return c.roomList(ctx, "/api/v1/rooms/available", "rooms:available")
}

func (c *HotelClient) roomList(ctx context.Context, path, cacheKey string) ([]models.Room, error) {
	var wrap struct {
		Rooms []models.Room `json:"rooms"`
	}

	if c.readCache(ctx, cacheKey, &wrap) {
		return wrap.Rooms, nil
	}

	if err := c.doGet(ctx, c.baseURL+path, &wrap); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, wrap)
	return wrap.Rooms, nil
}

// CreateBookingRequest mirrors the POST /bookings body.
type CreateBookingRequest struct {
	RoomID          int64  `json:"room_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// ValidationError is returned when the API rejects a booking with 422.
type ValidationError struct {
	Fields []booking.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking rejected: %d invalid fields", len(e.Fields))
}

// CreateBooking submits a stay request. A 422 comes back as a typed
// *ValidationError so callers can surface the field failures.
func (c *HotelClient) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	endpoint := c.baseURL + "/api/v1/bookings"

	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.addHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var body struct {
			Fields []booking.FieldError `json:"fields"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("http %d", resp.StatusCode)
		}
		return nil, &ValidationError{Fields: body.Fields}
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	var b models.Booking
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBooking fetches a booking by id.
func (c *HotelClient) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	if err := c.doGet(ctx, fmt.Sprintf("%s/api/v1/bookings/%d", c.baseURL, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GuestBookings returns a guest's bookings with lifecycle phases and the
// aggregate spend.
func (c *HotelClient) GuestBookings(ctx context.Context, email string) ([]domain.GuestBooking, float64, error) {
	var wrap struct {
		Bookings   []domain.GuestBooking `json:"bookings"`
		TotalSpend float64               `json:"total_spend"`
	}
	query := url.Values{"email": {email}}
	endpoint := c.baseURL + "/api/v1/bookings/guest?" + query.Encode()
	if err := c.doGet(ctx, endpoint, &wrap); err != nil {
		return nil, 0, err
	}
	return wrap.Bookings, wrap.TotalSpend, nil
}

// ConfirmBooking confirms a pending booking at the given version.
func (c *HotelClient) ConfirmBooking(ctx context.Context, id, version int64) error {
	endpoint := fmt.Sprintf("%s/api/v1/bookings/%d/confirm?version=%d", c.baseURL, id, version)
	return c.doJSON(ctx, http.MethodPost, endpoint, nil, nil)
}

// CancelBooking cancels a booking at the given version.
func (c *HotelClient) CancelBooking(ctx context.Context, id, version int64) error {
	endpoint := fmt.Sprintf("%s/api/v1/bookings/%d?version=%d", c.baseURL, id, version)
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Chat sends a chat message and returns the reply plus the session id the
// server assigned or echoed.
func (c *HotelClient) Chat(ctx context.Context, sessionID, message string) (string, string, error) {
	body := map[string]string{"session_id": sessionID, "message": message}
	var resp struct {
		SessionID string `json:"session_id"`
		Reply     string `json:"reply"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/api/v1/chat", body, &resp); err != nil {
		return "", "", err
	}
	return resp.SessionID, resp.Reply, nil
}

func (c *HotelClient) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *HotelClient) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *HotelClient) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.addHeaders(req)
	return c.do(req, out)
}

func (c *HotelClient) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.addHeaders(req)
	return c.do(req, out)
}

func (c *HotelClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

func (c *HotelClient) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if c.apiExtra != "" {
		req.Header.Set("x-api-extra", c.apiExtra)
	}
}
