package feedback_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tabiplan/internal/repositories"
	"tabiplan/internal/services"
)

var Module = fx.Provide(
	provideFeedbackRepo, provideFeedbackService,
)

func provideFeedbackRepo(db *gorm.DB) repositories.FeedbackRepositoryInterface {
	if db == nil {
		return repositories.NewMemoryFeedbackRepository()
	}
	return repositories.NewFeedbackRepository(db)
}

func provideFeedbackService(feedbackRepo repositories.FeedbackRepositoryInterface) services.FeedbackServiceInterface {
	return services.NewFeedbackService(feedbackRepo)
}
