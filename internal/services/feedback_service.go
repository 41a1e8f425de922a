package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"tabiplan/internal/models/db_models"
	"tabiplan/internal/models/request_models"
	"tabiplan/internal/models/response_models"
	"tabiplan/internal/repositories"
	"tabiplan/pkg/utils"
)

type FeedbackServiceInterface interface {
	AddFeedback(ctx context.Context, req request_models.AddFeedbackRequest) (*response_models.FeedbackResponse, error)
	GetFeedback(ctx context.Context, page, pageSize int) ([]response_models.FeedbackResponse, error)
}

type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepositoryInterface
}

func NewFeedbackService(feedbackRepo repositories.FeedbackRepositoryInterface) FeedbackServiceInterface {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

func (s *FeedbackService) AddFeedback(ctx context.Context, req request_models.AddFeedbackRequest) (*response_models.FeedbackResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", utils.ErrInvalidInput)
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", utils.ErrInvalidInput)
	}

	feedback := &db_models.Feedback{
		Rating:  req.Rating,
		Comment: comment,
		Route:   pq.StringArray(nonEmpty(req.Route)),
		Places:  pq.StringArray(nonEmpty(req.Places)),
	}
	if req.Conditions != nil {
		raw, err := json.Marshal(req.Conditions)
		if err != nil {
			return nil, fmt.Errorf("%w: conditions: %v", utils.ErrInvalidInput, err)
		}
		feedback.Conditions = datatypes.JSON(raw)
	}

	if err := s.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	resp := toFeedbackResponse(*feedback)
	return &resp, nil
}

func (s *FeedbackService) GetFeedback(ctx context.Context, page, pageSize int) ([]response_models.FeedbackResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	items, err := s.feedbackRepo.ListFeedback(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := make([]response_models.FeedbackResponse, 0, len(items))
	for _, f := range items {
		out = append(out, toFeedbackResponse(f))
	}
	return out, nil
}

func toFeedbackResponse(f db_models.Feedback) response_models.FeedbackResponse {
	return response_models.FeedbackResponse{
		ID:        f.ID.String(),
		Rating:    f.Rating,
		Comment:   f.Comment,
		Route:     append([]string{}, f.Route...),
		Places:    append([]string{}, f.Places...),
		CreatedAt: utils.FormatRFC3339JST(utils.FromUnixSeconds(f.CreatedAt)),
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
