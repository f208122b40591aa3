package gamesessions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pitlane/internal/common"
	"github.com/dmitrijs2005/pitlane/internal/dbx"
	"github.com/dmitrijs2005/pitlane/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts s. A UserID that matches no user yields
// common.ErrorInvalidReference.
func (r *SQLRepository) Create(ctx context.Context, s *models.GameSession) (*models.GameSession, error) {
	query :=
		`INSERT INTO game_sessions (car_name, lap_count, lap_time, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	var userID sql.NullInt64
	if s.UserID != nil {
		userID = sql.NullInt64{Int64: *s.UserID, Valid: true}
	}

	var created dbx.Timestamp
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		s.CarName, s.LapCount, s.LapTime, userID).Scan(&s.ID, &created)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorInvalidReference
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.CreatedAt = created.Time

	return s, nil
}

// List returns every session, newest first.
func (r *SQLRepository) List(ctx context.Context) ([]models.GameSession, error) {
	query :=
		`SELECT id, car_name, lap_count, lap_time, user_id, created_at
		 FROM game_sessions
		 ORDER BY id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.GameSession
	for rows.Next() {
		var (
			s       models.GameSession
			userID  sql.NullInt64
			created dbx.Timestamp
		)
		if err := rows.Scan(&s.ID, &s.CarName, &s.LapCount, &s.LapTime, &userID, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if userID.Valid {
			id := userID.Int64
			s.UserID = &id
		}
		s.CreatedAt = created.Time
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
