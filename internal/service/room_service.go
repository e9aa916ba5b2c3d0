package service

import (
	"context"
	"fmt"
	"strings"

	"hotelms/internal/domain"
	"hotelms/internal/models"

	"github.com/rs/zerolog"
)

type RoomService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRoomService(repo domain.Repository, logger *zerolog.Logger) *RoomService {
	return &RoomService{
		repo:   repo,
		logger: logger,
	}
}

func (s *RoomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return s.repo.ListRooms(ctx)
}

func (s *RoomService) ListAvailableRooms(ctx context.Context) ([]*models.Room, error) {
	return s.repo.ListAvailableRooms(ctx)
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}

	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return err
	}

	s.logger.Info().Str("number", room.Number).Str("type", room.Type).Msg("Room created")
	return nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, room *models.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}

	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return err
	}

	s.logger.Info().Int64("room_id", room.ID).Msg("Room updated")
	return nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("room_id", id).Msg("Room deleted")
	return nil
}

func validateRoom(room *models.Room) error {
	if strings.TrimSpace(room.Number) == "" {
		return fmt.Errorf("room number is required")
	}
	if !models.IsKnownRoomType(room.Type) {
		return fmt.Errorf("unknown room type: %s", room.Type)
	}
	if room.Price < 0 {
		return fmt.Errorf("room price must not be negative")
	}
	return nil
}
