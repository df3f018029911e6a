package domain

// Default image filenames served when a user or movie has no upload yet.
const (
	DefaultAvatar = "default.jpg"
)

// User represents an authenticated account.
type User struct {
	Record
	Username           string `json:"username"`
	PasswordHash       string `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	IsAdmin            bool   `json:"is_admin"`
	HasCompletedSurvey bool   `json:"has_completed_survey"`
	Bio                string `json:"bio,omitempty"`
	AvatarPath         string `json:"avatar_path"`
	AvatarBlurHash     string `json:"avatar_blurhash,omitempty"`
}

// Preferences holds the taste profile captured by the onboarding survey.
// Liked movies double as seeds for indirect genre matching.
type Preferences struct {
	GenreIDs    []string `json:"genre_ids"`
	LanguageIDs []string `json:"language_ids"`
	LikedIDs    []string `json:"liked_movie_ids"`
}
