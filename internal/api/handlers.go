package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"hotelms/internal/booking"
	"hotelms/internal/domain"
	"hotelms/internal/export"
	"hotelms/internal/metrics"
	"hotelms/internal/models"

	"github.com/google/uuid"
)

func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rooms, err := s.rooms.ListRooms(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})

	case http.MethodPost:
		var room models.Room
		if err := decodeJSON(r, &room); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		room.Available = true
		if err := s.rooms.CreateRoom(r.Context(), &room); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, room)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAvailableRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, err := s.rooms.ListAvailableRooms(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *HTTPServer) handleRoomByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "/api/v1/rooms/")
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		room, err := s.rooms.GetRoom(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, room)

	case http.MethodPut:
		var room models.Room
		if err := decodeJSON(r, &room); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		room.ID = id
		if err := s.rooms.UpdateRoom(r.Context(), &room); err != nil {
			writeServiceErrorOrBadRequest(w, err)
			return
		}
		writeJSON(w, http.StatusOK, room)

	case http.MethodDelete:
		if err := s.rooms.DeleteRoom(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type createBookingBody struct {
	RoomID          int64  `json:"room_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	SpecialRequests string `json:"special_requests"`
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		bookings, err := s.bookings.ListBookings(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})

	case http.MethodPost:
		var body createBookingBody
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		req := domain.CreateBookingRequest{
			RoomID:          body.RoomID,
			GuestName:       body.GuestName,
			GuestEmail:      body.GuestEmail,
			SpecialRequests: body.SpecialRequests,
			Today:           s.now(),
		}

		// Empty dates stay zero so validation reports them as missing;
		// malformed dates are a transport error.
		if strings.TrimSpace(body.CheckIn) != "" {
			checkIn, err := booking.ParseDate(body.CheckIn)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid check_in; expected YYYY-MM-DD")
				return
			}
			req.CheckIn = checkIn
		}
		if strings.TrimSpace(body.CheckOut) != "" {
			checkOut, err := booking.ParseDate(body.CheckOut)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid check_out; expected YYYY-MM-DD")
				return
			}
			req.CheckOut = checkOut
		}

		b, result, err := s.bookings.CreateBooking(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !result.Valid() {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation failed",
				"fields": result.Errors,
			})
			return
		}

		metrics.IncBooking(b.Status)
		writeJSON(w, http.StatusCreated, b)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/bookings/")

	if strings.HasSuffix(rest, "/confirm") {
		s.handleConfirmBooking(w, r, strings.TrimSuffix(rest, "/confirm"))
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		b, err := s.bookings.GetBooking(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case http.MethodDelete:
		version, ok := s.bookingVersion(w, r, id)
		if !ok {
			return
		}
		if err := s.bookings.CancelBooking(r.Context(), id, version); err != nil {
			writeServiceError(w, err)
			return
		}
		metrics.IncBooking(models.StatusCancelled)
		writeJSON(w, http.StatusOK, map[string]string{"status": models.StatusCancelled})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleConfirmBooking(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	version, ok := s.bookingVersion(w, r, id)
	if !ok {
		return
	}

	if err := s.bookings.ConfirmBooking(r.Context(), id, version); err != nil {
		writeServiceError(w, err)
		return
	}
	metrics.IncBooking(models.StatusConfirmed)
	writeJSON(w, http.StatusOK, map[string]string{"status": models.StatusConfirmed})
}

// bookingVersion reads the optimistic-locking version from the query,
// falling back to the stored version when the caller does not send one.
func (s *HTTPServer) bookingVersion(w http.ResponseWriter, r *http.Request, id int64) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("version"))
	if raw != "" {
		version, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || version <= 0 {
			writeError(w, http.StatusBadRequest, "invalid version")
			return 0, false
		}
		return version, true
	}

	b, err := s.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return 0, false
	}
	return b.Version, true
}

func (s *HTTPServer) handleGuestBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	bookings, err := s.bookings.ListGuestBookings(r.Context(), email, s.now())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	spend, err := s.bookings.GuestSpend(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bookings":    bookings,
		"total_spend": spend,
	})
}

type chatBody struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *HTTPServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body chatBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	sessionID := strings.TrimSpace(body.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := s.chat.Reply(r.Context(), sessionID, body.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.IncChatMessage()
	writeJSON(w, http.StatusOK, map[string]string{
		"session_id": sessionID,
		"reply":      reply,
	})
}

func (s *HTTPServer) handleGuests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	guests, err := s.repo.ListGuests(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guests": guests})
}

func (s *HTTPServer) handleGuestByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := pathID(w, r, "/api/v1/admin/guests/")
	if !ok {
		return
	}

	if err := s.repo.DeleteGuest(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	today := s.now()
	fileName := "bookings_" + today.Format(booking.DateLayout) + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)

	if err := export.WriteBookingReport(w, bookings, today); err != nil {
		s.logger.Error().Err(err).Msg("export write error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func pathID(w http.ResponseWriter, r *http.Request, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// writeServiceErrorOrBadRequest keeps room validation messages visible while
// storage sentinels still map to their statuses.
func writeServiceErrorOrBadRequest(w http.ResponseWriter, err error) {
	if isServiceSentinel(err) {
		writeServiceError(w, err)
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
