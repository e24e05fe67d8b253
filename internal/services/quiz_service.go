package services

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/soaringjerry/Quizline/internal/models"
)

// QuizFilter narrows GET /quizzes. Empty fields are not sent.
type QuizFilter struct {
	Difficulty string
	CategoryID string
}

func (f QuizFilter) Values() url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(f.Difficulty); v != "" {
		q.Set("difficulty", v)
	}
	if v := strings.TrimSpace(f.CategoryID); v != "" {
		q.Set("category_id", v)
	}
	return q
}

type QuizService struct {
	client *APIClient
}

func NewQuizService(client *APIClient) *QuizService {
	return &QuizService{client: client}
}

func (s *QuizService) GetQuizzes(ctx context.Context, f QuizFilter) ([]models.Quiz, error) {
	var out []models.Quiz
	if err := s.client.getJSON(ctx, "/quizzes", f.Values(), &out); err != nil {
		log.Printf("error fetching quizzes: %v", err)
		return nil, err
	}
	return out, nil
}

// GetQuizBySlug accepts a slug or an id. A missing quiz comes back as an
// *HTTPStatusError with Status 404.
func (s *QuizService) GetQuizBySlug(ctx context.Context, slug any) (*models.Quiz, error) {
	var out models.Quiz
	if err := s.client.getJSON(ctx, "/quizzes/"+pathID(slug), nil, &out); err != nil {
		log.Printf("error fetching quiz with slug %v: %v", slug, err)
		return nil, err
	}
	return &out, nil
}

func (s *QuizService) GetFeaturedQuizzes(ctx context.Context) ([]models.Quiz, error) {
	var out []models.Quiz
	if err := s.client.getJSON(ctx, "/quizzes/featured", nil, &out); err != nil {
		log.Printf("error fetching featured quizzes: %v", err)
		return nil, err
	}
	return out, nil
}

func (s *QuizService) GetDifficultyLevels(ctx context.Context) ([]models.DifficultyLevel, error) {
	var out []models.DifficultyLevel
	if err := s.client.getJSON(ctx, "/quiz-difficulty-levels", nil, &out); err != nil {
		log.Printf("error fetching difficulty levels: %v", err)
		return nil, err
	}
	return out, nil
}
