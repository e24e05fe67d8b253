package services

import (
	"context"
	"log"

	"github.com/soaringjerry/Quizline/internal/models"
)

type QuestionService struct {
	client *APIClient
}

func NewQuestionService(client *APIClient) *QuestionService {
	return &QuestionService{client: client}
}

func (s *QuestionService) GetQuizQuestions(ctx context.Context, quizID any) ([]models.Question, error) {
	var out []models.Question
	if err := s.client.getJSON(ctx, "/quizzes/"+pathID(quizID)+"/questions", nil, &out); err != nil {
		log.Printf("error fetching questions for quiz %v: %v", quizID, err)
		return nil, err
	}
	return out, nil
}

type submitAnswerRequest struct {
	ChoiceID any `json:"choice_id"`
	UserID   any `json:"user_id"`
}

// SubmitAnswer posts {"choice_id", "user_id"}; ids are sent as given.
func (s *QuestionService) SubmitAnswer(ctx context.Context, quizID, questionID, userID, choiceID any) (*models.AnswerResult, error) {
	path := "/quizzes/" + pathID(quizID) + "/questions/" + pathID(questionID) + "/answers"
	var out models.AnswerResult
	if err := s.client.postJSON(ctx, path, submitAnswerRequest{ChoiceID: choiceID, UserID: userID}, &out); err != nil {
		log.Printf("error submitting answer for question %v: %v", questionID, err)
		return nil, err
	}
	return &out, nil
}
