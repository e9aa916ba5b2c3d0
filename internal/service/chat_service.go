package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelms/internal/config"
	"hotelms/internal/domain"
	"hotelms/internal/models"

	"github.com/rs/zerolog"
)

// ErrChatRateLimited is returned when a session exceeds the per-window
// message quota.
var ErrChatRateLimited = errors.New("chat rate limit exceeded")

// Session context keys kept in ChatState.TempData.
const (
	tempKeyRoomType      = "room_type"
	tempKeyGreetedAt     = "greeted_at"
	tempKeyUnknownStreak = "unknown_streak"
)

// Chat topics recorded in the session state.
const (
	topicAvailability = "availability"
	topicBooking      = "booking"
	topicCheckIn      = "check_in"
	topicCheckOut     = "check_out"
	topicCancellation = "cancellation"
	topicPricing      = "pricing"
	topicAmenities    = "amenities"
	topicSupport      = "support"
	topicGreeting     = "greeting"
	topicFarewell     = "farewell"
	topicUnknown      = "unknown"
)

// ChatService answers front-desk questions from the chat widget. All rates,
// amenity lists and contact details come from configuration; the service
// itself carries no hotel-specific literals.
type ChatService struct {
	repo    domain.Repository
	states  domain.StateRepository
	catalog config.CatalogConfig
	hotel   config.HotelConfig
	logger  *zerolog.Logger
}

func NewChatService(repo domain.Repository, states domain.StateRepository, catalog config.CatalogConfig, hotel config.HotelConfig, logger *zerolog.Logger) *ChatService {
	return &ChatService{
		repo:    repo,
		states:  states,
		catalog: catalog,
		hotel:   hotel,
		logger:  logger,
	}
}

func (s *ChatService) Reply(ctx context.Context, sessionID, message string) (string, error) {
	window := time.Duration(s.hotel.ChatRateWindowSec) * time.Second
	allowed, err := s.states.CheckRateLimit(ctx, sessionID, s.hotel.ChatRateMessages, window)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("chat rate limit check error")
	} else if !allowed {
		return "", ErrChatRateLimited
	}

	state, err := s.states.GetState(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("chat state load error")
	}
	if state == nil {
		state = &models.ChatState{SessionID: sessionID}
	}
	if state.TempData == nil {
		state.TempData = map[string]interface{}{}
	}

	topic, reply := s.respond(ctx, state, message)

	state.LastTopic = topic
	state.MessageCount++
	state.UpdatedAt = time.Now()
	if topic != topicUnknown {
		delete(state.TempData, tempKeyUnknownStreak)
	}

	if err := s.states.SetState(ctx, state); err != nil {
		// Losing conversation context is not worth failing the reply.
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("chat state update error")
	}

	return reply, nil
}

// respond answers the message and records conversation context in the
// session state: a mentioned room type personalizes later rate questions,
// repeat greetings get a shorter hello, and after two messages in a row the
// bot could not place, the reply includes the support contact.
func (s *ChatService) respond(ctx context.Context, state *models.ChatState, message string) (string, string) {
	msg := strings.ToLower(message)

	if roomType := mentionedRoomType(msg); roomType != "" {
		state.TempData[tempKeyRoomType] = roomType
	}

	switch {
	case containsAny(msg, "available", "rooms", "how many"):
		return topicAvailability, s.availabilityReply(ctx)
	case containsAny(msg, "book"):
		return topicBooking, fmt.Sprintf(
			"You can book a room by navigating to our booking page. We offer %s. Would you like me to help you with anything else?",
			s.rateList())
	case containsAny(msg, "check-in", "checkin"):
		return topicCheckIn, fmt.Sprintf(
			"Check-in time is from %s onwards. Check-out time is %s. Early check-in and late check-out can be arranged based on availability.",
			s.hotel.CheckInTime, s.hotel.CheckOutTime)
	case containsAny(msg, "check-out", "checkout"):
		return topicCheckOut, fmt.Sprintf(
			"Check-out time is %s. Late check-out can be arranged based on availability. Please contact our front desk for arrangements.",
			s.hotel.CheckOutTime)
	case containsAny(msg, "cancel"):
		return topicCancellation, "You can cancel your booking from your dashboard. Cancellations must be made at least 24 hours before check-in."
	case containsAny(msg, "price", "cost", "rate"):
		reply := fmt.Sprintf(
			"Our room rates are: %s. All rates are subject to availability and may vary during peak seasons.",
			s.rateList())
		if roomType := state.GetString(tempKeyRoomType); roomType != "" {
			if entry, ok := s.catalog.Entry(roomType); ok {
				reply = fmt.Sprintf("The %s room is %s/night. %s",
					displayName(roomType), s.formatPrice(entry.NightlyRate), reply)
			}
		}
		return topicPricing, reply
	case containsAny(msg, "amenities", "facilities"):
		return topicAmenities, s.amenitiesReply()
	case containsAny(msg, "help", "support"):
		return topicSupport, fmt.Sprintf(
			"For any assistance, you can contact our support team at %s or call us at %s. Our staff is available 24/7 to help you.",
			s.hotel.SupportEmail, s.hotel.SupportPhone)
	case containsAny(msg, "hello", "hi", "hey"):
		if !state.GetTime(tempKeyGreetedAt).IsZero() {
			return topicGreeting, "Hello again! What can I help you with?"
		}
		// Stored as RFC3339 so the state survives the JSON round trip.
		state.TempData[tempKeyGreetedAt] = time.Now().Format(time.RFC3339)
		return topicGreeting, "Hello! I'm your hotel assistant. I can help you with booking rooms, checking availability, room rates, amenities, and more. How can I assist you today?"
	case containsAny(msg, "thank"):
		return topicGreeting, "You're welcome! Is there anything else I can help you with?"
	case containsAny(msg, "bye", "goodbye"):
		return topicFarewell, "Thank you for choosing our hotel! Have a wonderful day and feel free to reach out if you need anything else."
	default:
		streak := state.GetInt64(tempKeyUnknownStreak) + 1
		state.TempData[tempKeyUnknownStreak] = streak

		reply := "I'm sorry, I didn't understand that. You can ask me about room availability, booking, check-in/check-out times, prices, amenities, or cancellation policies. How can I help you?"
		if streak >= 2 {
			reply = fmt.Sprintf("%s You can also reach our team directly at %s.", reply, s.hotel.SupportEmail)
		}
		return topicUnknown, reply
	}
}

func (s *ChatService) availabilityReply(ctx context.Context) string {
	total, available, err := s.repo.CountRooms(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("room count error")
		return "I could not check availability right now. Please try again in a moment."
	}

	if available == 0 {
		return "Unfortunately, all rooms are currently booked. Please check back later for availability or contact us for assistance."
	}

	return fmt.Sprintf(
		"We currently have %d rooms available out of %d total rooms. You can view and book available rooms on our booking page. Would you like me to help you with anything else?",
		available, total)
}

func (s *ChatService) amenitiesReply() string {
	var parts []string
	for _, roomType := range models.KnownRoomTypes {
		entry, ok := s.catalog.Entry(roomType)
		if !ok || len(entry.Amenities) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s rooms include %s", displayName(roomType), strings.Join(entry.Amenities, ", ")))
	}

	if len(parts) == 0 {
		return "Our rooms include WiFi, TV and private bathrooms. Ask the front desk about specific room types."
	}

	return strings.Join(parts, ". ") + "."
}

// rateList renders "Standard - $100/night, Deluxe - $150/night, ..." in
// catalog display order.
func (s *ChatService) rateList() string {
	var parts []string
	for _, roomType := range models.KnownRoomTypes {
		entry, ok := s.catalog.Entry(roomType)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s - %s/night", displayName(roomType), s.formatPrice(entry.NightlyRate)))
	}
	return strings.Join(parts, ", ")
}

func (s *ChatService) formatPrice(v float64) string {
	if s.hotel.Currency == "" || s.hotel.Currency == "USD" {
		return fmt.Sprintf("$%.0f", v)
	}
	return fmt.Sprintf("%.0f %s", v, s.hotel.Currency)
}

func mentionedRoomType(msg string) string {
	for _, roomType := range models.KnownRoomTypes {
		if strings.Contains(msg, roomType) {
			return roomType
		}
	}
	return ""
}

func containsAny(msg string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func displayName(roomType string) string {
	if roomType == "" {
		return ""
	}
	return strings.ToUpper(roomType[:1]) + roomType[1:]
}
