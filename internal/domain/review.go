package domain

// Review is a user's rating and commentary on one movie. A user holds at
// most one review per movie; the service layer enforces this.
type Review struct {
	Record
	UserID  string `json:"user_id"`
	MovieID string `json:"movie_id"`
	Rating  int    `json:"rating"`
	Text    string `json:"text,omitempty"`
}
