package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/quizdesk/quizdesk/internal/apperrors"
	"github.com/quizdesk/quizdesk/internal/logger"
	"github.com/quizdesk/quizdesk/internal/models"
)

// Backend is the slice of the API client the engine needs
type Backend interface {
	ListTests(ctx context.Context) ([]models.Test, error)
	CreateTest(ctx context.Context, test models.Test) error
	DeleteTest(ctx context.Context, id string) error
}

var validate = validator.New()

// Service owns the local test catalog and keeps it in sync with the
// backend: wholesale refresh on Sync, incremental updates on create
// and delete, local-only question edits.
type Service struct {
	backend Backend
	catalog *Catalog
	logger  logger.Logger
}

func NewService(backend Backend, log logger.Logger) (*Service, error) {
	if backend == nil {
		return nil, errors.New("backend must not be nil")
	}
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Service{
		backend: backend,
		catalog: NewCatalog(),
		logger:  log,
	}, nil
}

// Sync fetches the full catalog and replaces the local one
func (s *Service) Sync(ctx context.Context) error {
	tests, err := s.backend.ListTests(ctx)
	if err != nil {
		return fmt.Errorf("error while fetching tests. Err: %w", err)
	}

	s.catalog.Replace(tests)
	s.logger.Debug("Catalog synced", "tests", len(tests))
	return nil
}

// Create builds a test with a fresh UUID, validates it and submits it.
// The catalog grows only after the backend accepted the test.
func (s *Service) Create(ctx context.Context, title string, questions []models.Question) (models.Test, error) {
	test := models.Test{
		ID:        uuid.NewString(),
		Title:     title,
		Questions: questions,
	}

	if err := validate.Struct(test); err != nil {
		return models.Test{}, fmt.Errorf("test is not valid: %w", err)
	}

	if err := s.backend.CreateTest(ctx, test); err != nil {
		return models.Test{}, err
	}

	s.catalog.Append(test)
	return test, nil
}

// UpdateQuestions replaces the question list of a test in the local
// catalog. The backend has no update endpoint, so the edit lives only
// until the next Sync.
func (s *Service) UpdateQuestions(testID string, questions []models.Question) error {
	current, ok := s.catalog.Get(testID)
	if !ok {
		return apperrors.ErrTestNotFound
	}

	current.Questions = questions
	if err := validate.Struct(current); err != nil {
		return fmt.Errorf("questions are not valid: %w", err)
	}

	s.catalog.SetQuestions(testID, questions)
	s.logger.Debug("Questions updated locally", "test_id", testID, "questions", len(questions))
	return nil
}

// Delete removes a test on the backend and, on success, locally
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteTest(ctx, id); err != nil {
		return err
	}

	s.catalog.Remove(id)
	return nil
}

// Search filters the local catalog by title, case-insensitive
func (s *Service) Search(query string) []models.Test {
	return s.catalog.Search(query)
}

func (s *Service) Tests() []models.Test {
	return s.catalog.Tests()
}

func (s *Service) Get(id string) (models.Test, bool) {
	return s.catalog.Get(id)
}
