package postgres

import (
	"context"

	"github.com/Muhsin-Gun/mobile-app/internal/model"

	"github.com/google/uuid"
)

func (s *Store) CreateTrade(ctx context.Context, tr model.TradeRecord) (model.TradeRecord, error) {
	if tr.Reference == "" {
		tr.Reference = uuid.NewString()
	}

	var out model.TradeRecord
	err := s.pool.QueryRow(ctx, `
		insert into public.trades (user_id, symbol, side, amount, price, reference)
		values ($1::uuid, $2, $3, $4, $5, $6)
		returning id::text, user_id::text, symbol, side, amount, price, reference, created_at
	`, tr.UserID, tr.Symbol, string(tr.Side), tr.Amount, tr.Price, tr.Reference).Scan(
		&out.ID,
		&out.UserID,
		&out.Symbol,
		&out.Side,
		&out.Amount,
		&out.Price,
		&out.Reference,
		&out.CreatedAt,
	)
	if err != nil {
		return model.TradeRecord{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) ListTrades(ctx context.Context, userID string) ([]model.TradeRecord, error) {
	rows, err := s.pool.Query(ctx, `
		select id::text, user_id::text, symbol, side, amount, price, reference, created_at
		from public.trades
		where user_id = $1::uuid
		order by created_at desc
	`, userID)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var out []model.TradeRecord
	for rows.Next() {
		var tr model.TradeRecord
		if err := rows.Scan(&tr.ID, &tr.UserID, &tr.Symbol, &tr.Side, &tr.Amount, &tr.Price, &tr.Reference, &tr.CreatedAt); err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, tr)
	}
	return out, nil
}
