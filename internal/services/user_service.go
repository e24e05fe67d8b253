package services

import (
	"context"
	"log"

	"github.com/soaringjerry/Quizline/internal/models"
)

type UserService struct {
	client *APIClient
}

func NewUserService(client *APIClient) *UserService {
	return &UserService{client: client}
}

func (s *UserService) CreateUser(ctx context.Context, username string) (*models.User, error) {
	var out models.User
	body := map[string]string{"username": username}
	if err := s.client.postJSON(ctx, "/users", body, &out); err != nil {
		log.Printf("error creating user: %v", err)
		return nil, err
	}
	return &out, nil
}

// JoinQuiz registers userID as a participant of quizID.
func (s *UserService) JoinQuiz(ctx context.Context, quizID, userID any) (*models.QuizUser, error) {
	var out models.QuizUser
	body := map[string]any{"user_id": userID}
	if err := s.client.postJSON(ctx, "/quizzes/"+pathID(quizID)+"/users", body, &out); err != nil {
		log.Printf("error joining quiz %v: %v", quizID, err)
		return nil, err
	}
	return &out, nil
}

func (s *UserService) GetQuizUser(ctx context.Context, quizID, userID any) (*models.QuizUser, error) {
	var out models.QuizUser
	path := "/quizzes/" + pathID(quizID) + "/users/" + pathID(userID)
	if err := s.client.getJSON(ctx, path, nil, &out); err != nil {
		log.Printf("error getting quiz user for quiz %v and user %v: %v", quizID, userID, err)
		return nil, err
	}
	return &out, nil
}
