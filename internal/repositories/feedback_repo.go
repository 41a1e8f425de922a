package repositories

import (
	"context"
	"sync"

	"gorm.io/gorm"
	"tabiplan/internal/models/db_models"
)

type FeedbackRepositoryInterface interface {
	CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error
	ListFeedback(ctx context.Context, page, pageSize int) ([]db_models.Feedback, error)
}

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackRepository) ListFeedback(ctx context.Context, page, pageSize int) ([]db_models.Feedback, error) {
	var feedbacks []db_models.Feedback
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

// MemoryFeedbackRepository keeps feedback in process memory. Used when no database is configured.
type MemoryFeedbackRepository struct {
	mu    sync.RWMutex
	items []db_models.Feedback
}

func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{}
}

func (r *MemoryFeedbackRepository) CreateFeedback(_ context.Context, feedback *db_models.Feedback) error {
	if err := feedback.BeforeCreate(nil); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *feedback)
	return nil
}

func (r *MemoryFeedbackRepository) ListFeedback(_ context.Context, page, pageSize int) ([]db_models.Feedback, error) {
	r.mu.RLock()
	sorted := make([]db_models.Feedback, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		sorted = append(sorted, r.items[i])
	}
	r.mu.RUnlock()

	start := (page - 1) * pageSize
	if start >= len(sorted) {
		return []db_models.Feedback{}, nil
	}
	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], nil
}
