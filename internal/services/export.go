package services

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/soaringjerry/Quizline/internal/models"
)

// ExportLeaderboardCSV renders a leaderboard as CSV, one row per participant
// in the order given, with a 1-based rank column.
func ExportLeaderboardCSV(board []models.QuizUser) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"rank", "user_id", "username", "score", "joined_at"})
	for i, qu := range board {
		rec := []string{
			strconv.Itoa(i + 1),
			qu.UserID.String(),
			qu.Username,
			strconv.Itoa(qu.Score),
			qu.JoinedAt,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
