package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"hotelms/internal/domain"
	"hotelms/internal/events"
	"hotelms/internal/metrics"
	"hotelms/internal/models"

	"github.com/rs/zerolog"
)

// ErrQueueFull is returned when the release queue cannot accept more work.
var ErrQueueFull = errors.New("housekeeping queue is full")

type releaseTask struct {
	RoomID    int64
	BookingID int64
}

// HousekeepingWorker returns rooms to the available pool. Releases arrive
// on a channel queue when bookings are cancelled; a periodic sweep catches
// stays whose check-out date has passed.
type HousekeepingWorker struct {
	repo          domain.Repository
	eventBus      domain.EventPublisher
	retryPolicy   RetryPolicy
	queue         chan releaseTask
	sweepInterval time.Duration
	now           func() time.Time
	logger        *zerolog.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// NewHousekeepingWorker builds a worker with sane defaults. eventBus may be
// nil; releases are then only logged and counted.
func NewHousekeepingWorker(repo domain.Repository, eventBus domain.EventPublisher, retry RetryPolicy, sweepInterval time.Duration, logger *zerolog.Logger) *HousekeepingWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if sweepInterval <= 0 {
		sweepInterval = 15 * time.Minute
	}

	return &HousekeepingWorker{
		repo:          repo,
		eventBus:      eventBus,
		retryPolicy:   retry,
		queue:         make(chan releaseTask, models.HousekeepingQueueSize),
		sweepInterval: sweepInterval,
		now:           time.Now,
		logger:        logger,
	}
}

// EnqueueRelease schedules a room to be returned to the available pool.
func (w *HousekeepingWorker) EnqueueRelease(ctx context.Context, roomID int64, bookingID int64) error {
	select {
	case w.queue <- releaseTask{RoomID: roomID, BookingID: bookingID}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the main loop; it runs until Stop is called or ctx ends.
func (w *HousekeepingWorker) Start(ctx context.Context) {
	w.stop = make(chan struct{})
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop drains the queue and waits for the loop to exit.
func (w *HousekeepingWorker) Stop() {
	w.stopOnce.Do(func() {
		if w.stop != nil {
			close(w.stop)
		}
	})
	w.wg.Wait()
}

func (w *HousekeepingWorker) run(ctx context.Context) {
	defer w.wg.Done()

	w.logger.Info().Msg("Housekeeping worker started")
	defer w.logger.Info().Msg("Housekeeping worker stopped")

	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.drain(context.Background())
			return
		case <-w.stop:
			w.drain(ctx)
			return
		case task := <-w.queue:
			w.processRelease(ctx, task)
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// drain processes whatever is still queued so cancelled bookings do not
// leave rooms locked across a restart.
func (w *HousekeepingWorker) drain(ctx context.Context) {
	for {
		select {
		case task := <-w.queue:
			w.processRelease(ctx, task)
		default:
			return
		}
	}
}

func (w *HousekeepingWorker) processRelease(ctx context.Context, task releaseTask) {
	var err error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		err = w.repo.SetRoomAvailability(ctx, task.RoomID, true)
		if err == nil {
			metrics.IncRoomReleased()
			w.publishReleased(task)
			w.logger.Info().
				Int64("room_id", task.RoomID).
				Int64("booking_id", task.BookingID).
				Msg("Room released")
			return
		}

		delay := w.retryPolicy.NextDelay(attempt)
		w.logger.Warn().Err(err).
			Int64("room_id", task.RoomID).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("Room release failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	w.logger.Error().Err(err).
		Int64("room_id", task.RoomID).
		Int64("booking_id", task.BookingID).
		Msg("Room release abandoned after retries")
}

// Sweep closes out stays whose check-out has passed: each booking goes to
// the terminal completed status first, then the room re-opens. Marking
// before releasing keeps a stay from being swept twice; once the room is
// re-booked, the old stay no longer matches the expired query. Exported so
// the entry point can run one pass at startup before the ticker takes over.
func (w *HousekeepingWorker) Sweep(ctx context.Context) {
	stays, err := w.repo.ListExpiredStays(ctx, w.now())
	if err != nil {
		w.logger.Error().Err(err).Msg("Expired stay sweep failed")
		return
	}

	for _, stay := range stays {
		if err := w.repo.UpdateBookingStatus(ctx, stay.ID, models.StatusCompleted); err != nil {
			w.logger.Error().Err(err).
				Int64("booking_id", stay.ID).
				Msg("Sweep could not complete stay")
			continue
		}
		if err := w.repo.SetRoomAvailability(ctx, stay.RoomID, true); err != nil {
			w.logger.Error().Err(err).Int64("room_id", stay.RoomID).Msg("Sweep release failed")
			continue
		}
		metrics.IncRoomReleased()
		w.publishReleased(releaseTask{RoomID: stay.RoomID, BookingID: stay.ID})
		w.logger.Info().
			Int64("room_id", stay.RoomID).
			Int64("booking_id", stay.ID).
			Str("reference", stay.Reference).
			Msg("Room released by sweep")
	}
}

func (w *HousekeepingWorker) publishReleased(task releaseTask) {
	if w.eventBus == nil {
		return
	}
	payload := events.RoomReleasedPayload{RoomID: task.RoomID, BookingID: task.BookingID}
	if err := w.eventBus.PublishJSON(events.EventRoomReleased, payload); err != nil {
		w.logger.Error().Err(err).Int64("room_id", task.RoomID).Msg("publish release event error")
	}
}
