package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"hotelms/internal/database"
	"hotelms/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type RoomsConfig struct {
	Rooms []models.Room `yaml:"rooms"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		roomsPath = flag.String("rooms", "configs/config.yaml", "path to yaml with a rooms section")
		dbPath    = flag.String("db", "./data/hotel.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*roomsPath)
	if err != nil {
		return fmt.Errorf("read rooms: %w", err)
	}
	var cfg RoomsConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse rooms: %w", err)
	}
	if len(cfg.Rooms) == 0 {
		return fmt.Errorf("no rooms in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created := 0
	updated := 0
	for _, room := range cfg.Rooms {
		if room.Number == "" {
			continue
		}
		existing, err := db.GetRoomByNumber(ctx, room.Number)
		if err == nil {
			room.ID = existing.ID
			room.Available = existing.Available
			if err = db.UpdateRoom(ctx, &room); err != nil {
				return fmt.Errorf("update %s: %w", room.Number, err)
			}
			updated++
			continue
		}
		if !errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("get %s: %w", room.Number, err)
		}
		room.Available = true
		if err = db.CreateRoom(ctx, &room); err != nil {
			return fmt.Errorf("create %s: %w", room.Number, err)
		}
		created++
	}

	fmt.Printf("done: created=%d updated=%d\n", created, updated)
	return nil
}
