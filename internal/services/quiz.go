package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/requestdata"
	"github.com/quizforge/quizforge-backend/internal/types"
)

var ErrQuizNotFound = errors.New("quiz not found")

const defaultQuestionCount = 10

type QuizRequest struct {
	Title         string  `json:"title"`
	Prompt        string  `json:"prompt"`
	Category      *string `json:"category"`
	Difficulty    string  `json:"difficulty"`
	QuestionCount int     `json:"question_count"`
}

type QuestionUpdate struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
	Order   *int     `json:"order"`
}

type QuizUpdateRequest struct {
	Title      string            `json:"title"`
	Prompt     string            `json:"prompt"`
	Category   *string           `json:"category"`
	Difficulty string            `json:"difficulty"`
	Questions  []*QuestionUpdate `json:"questions"`
}

type QuizSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Prompt        string    `json:"prompt"`
	Category      *string   `json:"category"`
	Difficulty    string    `json:"difficulty"`
	OwnerID       uuid.UUID `json:"owner_id"`
	CreatedAt     string    `json:"created_at"`
	QuestionCount int       `json:"question_count"`
}

type QuizService interface {
	CreateQuiz(ctx context.Context, req *QuizRequest) (*types.Quiz, error)
	ListQuizzes(ctx context.Context, skip, limit int) ([]*QuizSummary, int64, error)
	GetQuiz(ctx context.Context, quizID uuid.UUID) (*types.Quiz, error)
	UpdateQuiz(ctx context.Context, quizID uuid.UUID, req *QuizUpdateRequest) (*types.Quiz, error)
	DeleteQuiz(ctx context.Context, quizID uuid.UUID) error
}

type quizService struct {
	db           *gorm.DB
	log          *logger.Logger
	quizRepo     repos.QuizRepo
	questionRepo repos.QuestionRepo
	genClient    GenerationClient
}

func NewQuizService(
	db *gorm.DB,
	log *logger.Logger,
	quizRepo repos.QuizRepo,
	questionRepo repos.QuestionRepo,
	genClient GenerationClient,
) QuizService {
	serviceLog := log.With("service", "QuizService")
	return &quizService{
		db:           db,
		log:          serviceLog,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		genClient:    genClient,
	}
}

func ownerFromContext(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no authenticated user in context")
	}
	return rd.UserID, nil
}

// buildQuestionDrafts runs the generation pipeline for a request and always
// returns exactly the requested number of drafts. Generation and parse
// failures are logged with their classification and degrade to sample
// questions; nothing here can fail the quiz creation.
func (s *quizService) buildQuestionDrafts(ctx context.Context, req *QuizRequest) []QuestionDraft {
	var drafts []QuestionDraft

	category := ""
	if req.Category != nil {
		category = *req.Category
	}

	if !s.genClient.Available() {
		s.log.Info("Generation client unavailable, using sample questions", "topic", req.Title)
	} else {
		raw, genErr := s.genClient.Generate(ctx, req.Title, req.Prompt, req.QuestionCount, req.Difficulty, category)
		if genErr != nil {
			kind := ClassifyGenerationError(genErr.Error())
			s.log.Warn("Quiz generation failed, falling back to sample questions",
				"kind", string(kind),
				"error", genErr,
			)
		} else {
			parsed, parseErr := parseGeneratedQuestions(raw)
			if parseErr != nil {
				s.log.Warn("Failed to parse generated questions, falling back to sample questions", "error", parseErr)
			} else {
				drafts = parsed
			}
		}
	}

	return reconcileDrafts(drafts, req.QuestionCount, req.Title)
}

func draftOptionsJSON(options []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (s *quizService) CreateQuiz(ctx context.Context, req *QuizRequest) (*types.Quiz, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.QuestionCount <= 0 {
		req.QuestionCount = defaultQuestionCount
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	drafts := s.buildQuestionDrafts(ctx, req)

	quiz := &types.Quiz{
		ID:         uuid.New(),
		Title:      req.Title,
		Prompt:     req.Prompt,
		Category:   req.Category,
		Difficulty: req.Difficulty,
		OwnerID:    ownerID,
	}

	// Quiz row and question batch commit or roll back together so a store
	// failure cannot leave an empty quiz behind.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.quizRepo.Create(ctx, tx, []*types.Quiz{quiz}); cErr != nil {
			return fmt.Errorf("failed to create quiz: %w", cErr)
		}
		questions := make([]*types.Question, 0, len(drafts))
		for order, draft := range drafts {
			optionsJSON, oErr := draftOptionsJSON(draft.Options)
			if oErr != nil {
				return fmt.Errorf("failed to encode question options: %w", oErr)
			}
			questions = append(questions, &types.Question{
				ID:      uuid.New(),
				QuizID:  quiz.ID,
				Text:    draft.Text,
				Options: optionsJSON,
				Correct: draft.Correct,
				Index:   order,
			})
		}
		if _, qErr := s.questionRepo.Create(ctx, tx, questions); qErr != nil {
			return fmt.Errorf("failed to create quiz questions: %w", qErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.quizRepo.GetByIDForOwner(ctx, nil, quiz.ID, ownerID)
}

func (s *quizService) ListQuizzes(ctx context.Context, skip, limit int) ([]*QuizSummary, int64, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	quizzes, err := s.quizRepo.ListByOwner(ctx, nil, ownerID, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}
	total, err := s.quizRepo.CountByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count quizzes: %w", err)
	}

	summaries := make([]*QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, &QuizSummary{
			ID:            quiz.ID,
			Title:         quiz.Title,
			Prompt:        quiz.Prompt,
			Category:      quiz.Category,
			Difficulty:    quiz.Difficulty,
			OwnerID:       quiz.OwnerID,
			CreatedAt:     quiz.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			QuestionCount: len(quiz.Questions),
		})
	}
	return summaries, total, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID uuid.UUID) (*types.Quiz, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizRepo.GetByIDForOwner(ctx, nil, quizID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, quizID uuid.UUID, req *QuizUpdateRequest) (*types.Quiz, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz, gErr := s.quizRepo.GetByIDForOwner(ctx, tx, quizID, ownerID)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return fmt.Errorf("failed to get quiz: %w", gErr)
		}

		quiz.Title = req.Title
		quiz.Prompt = req.Prompt
		quiz.Category = req.Category
		if req.Difficulty != "" {
			quiz.Difficulty = req.Difficulty
		}
		if uErr := s.quizRepo.Update(ctx, tx, quiz); uErr != nil {
			return fmt.Errorf("failed to update quiz: %w", uErr)
		}

		// Replace-all question semantics: nil means keep, anything else
		// (including empty) wipes and reinserts.
		if req.Questions == nil {
			return nil
		}
		if dErr := s.questionRepo.DeleteByQuizIDs(ctx, tx, []uuid.UUID{quizID}); dErr != nil {
			return fmt.Errorf("failed to delete quiz questions: %w", dErr)
		}
		questions := make([]*types.Question, 0, len(req.Questions))
		for order, questionUpdate := range req.Questions {
			optionsJSON, oErr := draftOptionsJSON(questionUpdate.Options)
			if oErr != nil {
				return fmt.Errorf("failed to encode question options: %w", oErr)
			}
			index := order
			if questionUpdate.Order != nil {
				index = *questionUpdate.Order
			}
			questions = append(questions, &types.Question{
				ID:      uuid.New(),
				QuizID:  quizID,
				Text:    questionUpdate.Text,
				Options: optionsJSON,
				Correct: questionUpdate.Correct,
				Index:   index,
			})
		}
		if _, qErr := s.questionRepo.Create(ctx, tx, questions); qErr != nil {
			return fmt.Errorf("failed to create quiz questions: %w", qErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.quizRepo.GetByIDForOwner(ctx, nil, quizID, ownerID)
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID uuid.UUID) error {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, gErr := s.quizRepo.GetByIDForOwner(ctx, tx, quizID, ownerID)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return fmt.Errorf("failed to get quiz: %w", gErr)
		}
		if dErr := s.questionRepo.DeleteByQuizIDs(ctx, tx, []uuid.UUID{quizID}); dErr != nil {
			return fmt.Errorf("failed to delete quiz questions: %w", dErr)
		}
		if dErr := s.quizRepo.DeleteByID(ctx, tx, quizID); dErr != nil {
			return fmt.Errorf("failed to delete quiz: %w", dErr)
		}
		return nil
	})
}
