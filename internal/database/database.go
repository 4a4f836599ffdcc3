package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

type DatabaseConfig interface {
	DBUrl() string
}

// DatabaseService stores the last saved view centre of each map.
type DatabaseService interface {
	Close() error
	GetView(ctx context.Context, mapName string) (image.Point, bool, error)
	WriteView(ctx context.Context, mapName string, center image.Point) error
}

type service struct {
	cfg DatabaseConfig
	db  *sql.DB
}

func NewDatabaseService(cfg DatabaseConfig) DatabaseService {
	db, err := sql.Open("sqlite3", cfg.DBUrl())
	if err != nil {
		panic(fmt.Sprintf("could not open database %s", err))
	}

	_, err = db.Exec("CREATE TABLE IF NOT EXISTS views (map TEXT PRIMARY KEY, center_x INTEGER NOT NULL, center_y INTEGER NOT NULL)")
	if err != nil {
		panic(fmt.Sprintf("could not initialise database %s", err))
	}

	return &service{cfg, db}
}

func (s *service) Close() error {
	log.Printf("disconnected from database: %s", s.cfg.DBUrl())
	return s.db.Close()
}

func (s *service) GetView(ctx context.Context, mapName string) (image.Point, bool, error) {
	var p image.Point
	err := s.db.QueryRowContext(ctx, "SELECT center_x, center_y FROM views WHERE map=?", mapName).Scan(&p.X, &p.Y)
	if errors.Is(err, sql.ErrNoRows) {
		return image.Point{}, false, nil
	}
	if err != nil {
		return image.Point{}, false, fmt.Errorf("could not read view of %q: %w", mapName, err)
	}
	return p, true, nil
}

func (s *service) WriteView(ctx context.Context, mapName string, center image.Point) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO views (map, center_x, center_y) VALUES (?, ?, ?) ON CONFLICT (map) DO UPDATE SET center_x=excluded.center_x, center_y=excluded.center_y",
		mapName, center.X, center.Y)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("could not write view of %q: %w", mapName, err)
	}

	return tx.Commit()
}
