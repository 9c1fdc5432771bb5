package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdesk/quizdesk/internal/apperrors"
	"github.com/quizdesk/quizdesk/internal/models"
)

// fakeBackend records calls and answers from canned state
type fakeBackend struct {
	tests []models.Test

	listErr   error
	createErr error
	deleteErr error

	created []models.Test
	deleted []string
}

func (f *fakeBackend) ListTests(ctx context.Context) ([]models.Test, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tests, nil
}

func (f *fakeBackend) CreateTest(ctx context.Context, test models.Test) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, test)
	return nil
}

func (f *fakeBackend) DeleteTest(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func validQuestions() []models.Question {
	return []models.Question{
		{Text: "2+2", Answers: []string{"3", "4", "5", "6"}, CorrectAnswer: "B"},
	}
}

func newService(t *testing.T, backend Backend) *Service {
	t.Helper()

	s, err := NewService(backend, nil)
	require.NoError(t, err, "service should be created without errors")
	return s
}

func Test_Service_Sync(t *testing.T) {
	t.Parallel()

	t.Run("replaces catalog wholesale", func(t *testing.T) {
		backend := &fakeBackend{tests: []models.Test{
			{ID: "id-1", Title: "Math"},
			{ID: "id-2", Title: "History"},
		}}
		s := newService(t, backend)

		require.NoError(t, s.Sync(context.Background()))
		require.Len(t, s.Tests(), 2)

		// A second sync with a shrunken server list drops the stale entry
		backend.tests = backend.tests[:1]
		require.NoError(t, s.Sync(context.Background()))
		assert.Len(t, s.Tests(), 1)
	})

	t.Run("fetch failure leaves catalog untouched", func(t *testing.T) {
		backend := &fakeBackend{tests: []models.Test{{ID: "id-1", Title: "Math"}}}
		s := newService(t, backend)
		require.NoError(t, s.Sync(context.Background()))

		backend.listErr = errors.New("backend down")

		require.Error(t, s.Sync(context.Background()))
		assert.Len(t, s.Tests(), 1, "old snapshot should survive a failed sync")
	})
}

func Test_Service_Create(t *testing.T) {
	t.Parallel()

	t.Run("mints uuid and appends on success", func(t *testing.T) {
		backend := &fakeBackend{}
		s := newService(t, backend)

		test, err := s.Create(context.Background(), "Math", validQuestions())

		require.NoError(t, err)
		_, err = uuid.Parse(test.ID)
		assert.NoError(t, err, "created test should get a generated uuid")

		require.Len(t, backend.created, 1)
		assert.Equal(t, test, backend.created[0], "backend receives the exact test")

		got, ok := s.Get(test.ID)
		require.True(t, ok, "created test should land in the catalog")
		assert.Equal(t, "Math", got.Title)
		assert.Equal(t, "B", got.Questions[0].CorrectAnswer)
	})

	t.Run("backend failure leaves catalog untouched", func(t *testing.T) {
		backend := &fakeBackend{createErr: errors.New("permission denied")}
		s := newService(t, backend)

		_, err := s.Create(context.Background(), "Math", validQuestions())

		require.Error(t, err)
		assert.Empty(t, s.Tests())
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name      string
			title     string
			questions []models.Question
		}{
			{
				name:      "empty title",
				title:     "",
				questions: validQuestions(),
			},
			{
				name:  "three answers",
				title: "Math",
				questions: []models.Question{
					{Text: "2+2", Answers: []string{"3", "4", "5"}, CorrectAnswer: "A"},
				},
			},
			{
				name:  "blank answer",
				title: "Math",
				questions: []models.Question{
					{Text: "2+2", Answers: []string{"3", "4", "5", ""}, CorrectAnswer: "A"},
				},
			},
			{
				name:  "correct answer outside A-D",
				title: "Math",
				questions: []models.Question{
					{Text: "2+2", Answers: []string{"3", "4", "5", "6"}, CorrectAnswer: "E"},
				},
			},
			{
				name:  "question without text",
				title: "Math",
				questions: []models.Question{
					{Text: "", Answers: []string{"3", "4", "5", "6"}, CorrectAnswer: "A"},
				},
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				backend := &fakeBackend{}
				s := newService(t, backend)

				_, err := s.Create(context.Background(), tc.title, tc.questions)

				require.Error(t, err)
				assert.Empty(t, backend.created, "invalid test must not reach the backend")
			})
		}
	})

	t.Run("zero questions allowed", func(t *testing.T) {
		s := newService(t, &fakeBackend{})

		test, err := s.Create(context.Background(), "Draft", nil)

		require.NoError(t, err, "the client enforces no minimum question count")
		assert.Empty(t, test.Questions)
	})
}

func Test_Service_UpdateQuestions(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*Service, string) {
		s := newService(t, &fakeBackend{})
		test, err := s.Create(context.Background(), "Math", validQuestions())
		require.NoError(t, err)
		return s, test.ID
	}

	t.Run("replaces questions locally", func(t *testing.T) {
		s, id := seed(t)

		edited := []models.Question{
			{Text: "3+3", Answers: []string{"5", "6", "7", "8"}, CorrectAnswer: "B"},
			{Text: "4+4", Answers: []string{"6", "7", "8", "9"}, CorrectAnswer: "C"},
		}
		require.NoError(t, s.UpdateQuestions(id, edited))

		got, _ := s.Get(id)
		assert.Equal(t, edited, got.Questions)
	})

	t.Run("unknown test", func(t *testing.T) {
		s, _ := seed(t)

		err := s.UpdateQuestions("missing-id", validQuestions())
		require.ErrorIs(t, err, apperrors.ErrTestNotFound)
	})

	t.Run("invalid questions rejected", func(t *testing.T) {
		s, id := seed(t)

		bad := []models.Question{{Text: "q", Answers: []string{"only one"}, CorrectAnswer: "A"}}
		require.Error(t, s.UpdateQuestions(id, bad))

		got, _ := s.Get(id)
		assert.Equal(t, validQuestions(), got.Questions, "catalog keeps the old questions")
	})
}

func Test_Service_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes exactly one test", func(t *testing.T) {
		backend := &fakeBackend{}
		s := newService(t, backend)

		first, err := s.Create(context.Background(), "Math", validQuestions())
		require.NoError(t, err)
		second, err := s.Create(context.Background(), "History", validQuestions())
		require.NoError(t, err)

		require.NoError(t, s.Delete(context.Background(), first.ID))

		assert.Equal(t, []string{first.ID}, backend.deleted)
		_, ok := s.Get(first.ID)
		assert.False(t, ok)
		_, ok = s.Get(second.ID)
		assert.True(t, ok, "other tests stay in the catalog")
	})

	t.Run("backend failure leaves catalog unchanged", func(t *testing.T) {
		backend := &fakeBackend{}
		s := newService(t, backend)

		test, err := s.Create(context.Background(), "Math", validQuestions())
		require.NoError(t, err)

		backend.deleteErr = errors.New("backend down")

		require.Error(t, s.Delete(context.Background(), test.ID))
		_, ok := s.Get(test.ID)
		assert.True(t, ok)
	})
}

func Test_Service_Search(t *testing.T) {
	t.Parallel()

	s := newService(t, &fakeBackend{})
	_, err := s.Create(context.Background(), "Pop Quiz", validQuestions())
	require.NoError(t, err)
	_, err = s.Create(context.Background(), "History", validQuestions())
	require.NoError(t, err)

	found := s.Search("qu")

	require.Len(t, found, 1)
	assert.Equal(t, "Pop Quiz", found[0].Title)
}
