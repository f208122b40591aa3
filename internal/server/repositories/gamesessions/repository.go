package gamesessions

import (
	"context"

	"github.com/dmitrijs2005/pitlane/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.GameSession) (*models.GameSession, error)
	List(ctx context.Context) ([]models.GameSession, error)
}
