package services

import (
	"context"
	"log"

	"github.com/soaringjerry/Quizline/internal/models"
)

type CategoryService struct {
	client *APIClient
}

func NewCategoryService(client *APIClient) *CategoryService {
	return &CategoryService{client: client}
}

// GetCategories lists every category: GET /categories.
func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.client.getJSON(ctx, "/categories", nil, &out); err != nil {
		log.Printf("error fetching categories: %v", err)
		return nil, err
	}
	return out, nil
}
