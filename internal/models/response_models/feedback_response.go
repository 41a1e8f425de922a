package response_models

type FeedbackResponse struct {
	ID        string   `json:"id"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	Route     []string `json:"route"`
	Places    []string `json:"places"`
	CreatedAt string   `json:"created_at"`
}
