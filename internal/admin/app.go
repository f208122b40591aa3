// Package admin implements the operator command line: schema migrations,
// account creation and seeding of game sessions.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pitlane/internal/server/config"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pitlane/internal/server/services"
	"github.com/urfave/cli/v2"
)

// NewApp builds the pitlane-admin command tree. in and out replace stdin
// and stdout.
func NewApp(in io.Reader, out io.Writer) *cli.App {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	return &cli.App{
		Name:      "pitlane-admin",
		Usage:     "administer a pitlane database",
		Reader:    in,
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"d"},
				Usage:   "PostgreSQL URL or SQLite path",
				EnvVars: []string{"PITLANE_DATABASE_DSN"},
				Value:   defaults.DatabaseDSN,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply pending schema migrations",
				Action: migrateAction,
			},
			{
				Name:  "create-user",
				Usage: "create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "password", Usage: "prompted for when omitted"},
				},
				Action: createUserAction,
			},
			{
				Name:  "add-session",
				Usage: "record a game session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "car", Required: true},
					&cli.StringFlag{Name: "laps"},
					&cli.Float64Flag{Name: "time", Required: true, Usage: "lap time in seconds"},
					&cli.Int64Flag{Name: "user-id", Usage: "owner account, if any"},
				},
				Action: addSessionAction,
			},
		},
	}
}

type env struct {
	db *sql.DB
	rm *repomanager.SQLRepositoryManager
}

// open connects to the database and brings the schema up to date.
func open(c *cli.Context) (*env, error) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	db, dialect, err := repomanager.Open(ctx, c.String("database"))
	if err != nil {
		return nil, err
	}

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return &env{db: db, rm: rm}, nil
}

func migrateAction(c *cli.Context) error {
	e, err := open(c)
	if err != nil {
		return err
	}
	defer e.db.Close()

	fmt.Fprintf(c.App.Writer, "schema is up to date (%s)\n", e.rm.Dialect())
	return nil
}

func createUserAction(c *cli.Context) error {
	password := c.String("password")
	if password == "" {
		pw, err := GetPassword(c.App.Reader, c.App.Writer)
		if err != nil {
			return err
		}
		password = pw
	}

	e, err := open(c)
	if err != nil {
		return err
	}
	defer e.db.Close()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	us := services.NewUserService(e.db, e.rm, cfg)

	u, err := us.Register(c.Context, services.Registration{
		Name:     c.String("name"),
		Email:    c.String("email"),
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "created user %d <%s>\n", u.ID, u.Email)
	return nil
}

func addSessionAction(c *cli.Context) error {
	e, err := open(c)
	if err != nil {
		return err
	}
	defer e.db.Close()

	var userID *int64
	if c.IsSet("user-id") {
		id := c.Int64("user-id")
		userID = &id
	}

	hs := services.NewHistoryService(e.db, e.rm)
	s, err := hs.Record(c.Context, userID, services.SessionInput{
		CarName:  c.String("car"),
		LapCount: c.String("laps"),
		LapTime:  c.Float64("time"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "recorded session %d: %s %s\n", s.ID, s.CarName, s.FormattedLapTime())
	return nil
}
