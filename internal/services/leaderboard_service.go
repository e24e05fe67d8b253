package services

import (
	"context"
	"log"

	"github.com/soaringjerry/Quizline/internal/models"
)

type LeaderboardService struct {
	client *APIClient
}

func NewLeaderboardService(client *APIClient) *LeaderboardService {
	return &LeaderboardService{client: client}
}

// GetLeaderboard returns the participants of quizID in the backend's ranking order.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, quizID any) ([]models.QuizUser, error) {
	var out []models.QuizUser
	if err := s.client.getJSON(ctx, "/quizzes/"+pathID(quizID)+"/leaderboard", nil, &out); err != nil {
		log.Printf("error fetching leaderboard for quiz %v: %v", quizID, err)
		return nil, err
	}
	return out, nil
}
