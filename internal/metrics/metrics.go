package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelms",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelms",
			Name:      "bookings_total",
			Help:      "Booking lifecycle transitions by status.",
		},
		[]string{"status"},
	)

	chatMessages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelms",
			Name:      "chat_messages_total",
			Help:      "Chat widget messages handled.",
		},
	)

	roomsReleased = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelms",
			Name:      "rooms_released_total",
			Help:      "Rooms returned to the available pool by housekeeping.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsTotal, chatMessages, roomsReleased)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBooking increments the booking counter for a status label.
func IncBooking(status string) {
	bookingsTotal.WithLabelValues(status).Inc()
}

// IncChatMessage counts one handled chat message.
func IncChatMessage() {
	chatMessages.Inc()
}

// IncRoomReleased counts one housekeeping room release.
func IncRoomReleased() {
	roomsReleased.Inc()
}
