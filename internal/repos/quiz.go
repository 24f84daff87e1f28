package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error)
	GetByIDForOwner(ctx context.Context, tx *gorm.DB, quizID, ownerID uuid.UUID) (*types.Quiz, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, skip, limit int) ([]*types.Quiz, error)
	CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) error
	DeleteByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	repoLog := baseLog.With("repo", "QuizRepo")
	return &quizRepo{db: db, log: repoLog}
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(quizzes) == 0 {
		return []*types.Quiz{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) GetByIDForOwner(ctx context.Context, tx *gorm.DB, quizID, ownerID uuid.UUID) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Quiz
	err := transaction.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND owner_id = ?", quizID, ownerID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *quizRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, skip, limit int) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Quiz
	if err := transaction.WithContext(ctx).
		Preload("Questions").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizRepo) CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Quiz{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *quizRepo) Update(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Quiz{}).
		Where("id = ?", quiz.ID).
		Updates(map[string]interface{}{
			"title":      quiz.Title,
			"prompt":     quiz.Prompt,
			"category":   quiz.Category,
			"difficulty": quiz.Difficulty,
		}).Error
}

func (r *quizRepo) DeleteByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", quizID).
		Delete(&types.Quiz{}).Error
}
