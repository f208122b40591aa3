package models

import (
	"fmt"
	"time"
)

// GameSession is one lap record reported by the game. LapCount is kept as
// the game sends it.
type GameSession struct {
	ID        int64     `json:"id"`
	CarName   string    `json:"nome_carro"`
	LapCount  string    `json:"quantidade_volta"`
	LapTime   float64   `json:"tempo_volta"`
	UserID    *int64    `json:"usuario_id,omitempty"`
	CreatedAt time.Time `json:"criado_em"`
}

// FormattedLapTime renders the lap time with two decimals and the seconds
// unit, e.g. "25.91 s".
func (s GameSession) FormattedLapTime() string {
	return FormatLapTime(s.LapTime)
}

func FormatLapTime(seconds float64) string {
	return fmt.Sprintf("%.2f s", seconds)
}
