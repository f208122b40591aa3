package services

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pitlane/internal/dbx"
	"github.com/dmitrijs2005/pitlane/internal/server/auth"
	"github.com/dmitrijs2005/pitlane/internal/server/config"
	"github.com/dmitrijs2005/pitlane/internal/server/models"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/gamesessions"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/pitlane/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	auth.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
}

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	return NewUserService(db, rm, testConfig())
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	created   int

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = 1
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeSessionsRepo struct {
	listOut   []models.GameSession
	listErr   error
	createErr error
	got       *models.GameSession
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.GameSession) (*models.GameSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.got = s
	out := *s
	out.ID = 7
	return &out, nil
}

func (f *fakeSessionsRepo) List(ctx context.Context) ([]models.GameSession, error) {
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository           { return m.u }
func (m *fakeRepoManager) GameSessions(db dbx.DBTX) gamesessions.Repository { return m.s }
