package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertHand(ctx context.Context, h Hand) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO hands (id, session_id, table_size, hero_position,
		                   small_blind, big_blind, pot, hero_net, showdown, record)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, h.ID, h.SessionID, h.TableSize, h.HeroPosition,
		h.SmallBlind, h.BigBlind, h.Pot, h.HeroNet, h.Showdown, h.Record)
	return err
}

func (s *Store) GetHand(ctx context.Context, id string) (Hand, error) {
	var h Hand
	err := s.Pool.QueryRow(ctx, `
		SELECT id, session_id, table_size, hero_position,
		       small_blind, big_blind, pot, hero_net, showdown, record, created_at
		  FROM hands WHERE id = $1
	`, id).Scan(&h.ID, &h.SessionID, &h.TableSize, &h.HeroPosition,
		&h.SmallBlind, &h.BigBlind, &h.Pot, &h.HeroNet, &h.Showdown, &h.Record, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Hand{}, ErrNotFound
	}
	return h, err
}

// ListHands returns the newest hands first, capped at limit.
func (s *Store) ListHands(ctx context.Context, limit int) ([]HandSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, table_size, hero_position, small_blind, big_blind,
		       pot, hero_net, showdown, created_at
		  FROM hands
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []HandSummary{}
	for rows.Next() {
		var h HandSummary
		if err := rows.Scan(&h.ID, &h.TableSize, &h.HeroPosition, &h.SmallBlind,
			&h.BigBlind, &h.Pot, &h.HeroNet, &h.Showdown, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
