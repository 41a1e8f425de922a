package request_models

type AddFeedbackRequest struct {
	Rating  int      `json:"rating" binding:"required,min=1,max=5"`
	Comment string   `json:"comment" binding:"required"`
	Route   []string `json:"route"`
	Places  []string `json:"places"`
	// Conditions is the search form the rated plan was generated from.
	Conditions *ItineraryRequest `json:"conditions"`
}
