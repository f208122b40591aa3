package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/pitlane/internal/common"
	"github.com/dmitrijs2005/pitlane/internal/server/models"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/repomanager"
)

type HistoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHistoryService(db *sql.DB, m repomanager.RepositoryManager) *HistoryService {
	return &HistoryService{db: db, repomanager: m}
}

// List returns every recorded game session, newest first.
func (s *HistoryService) List(ctx context.Context) ([]models.GameSession, error) {
	sessions, err := s.repomanager.GameSessions(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return sessions, nil
}

// Record validates and stores a game session. userID is nil for sessions
// not tied to an account; an id with no matching user is a validation
// error on FieldUserID.
func (s *HistoryService) Record(ctx context.Context, userID *int64, in SessionInput) (*models.GameSession, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repomanager.GameSessions(s.db).Create(ctx, &models.GameSession{
		CarName:  in.CarName,
		LapCount: in.LapCount,
		LapTime:  in.LapTime,
		UserID:   userID,
	})
	if errors.Is(err, common.ErrorInvalidReference) {
		return nil, &ValidationError{Fields: map[string]string{FieldUserID: "Usuário não encontrado."}}
	}
	if err != nil {
		return nil, common.ErrorInternal
	}
	return created, nil
}
