package domain

// Session is the denormalised snapshot stored under currentUser. It is a copy
// taken at login; later changes to the user record are not reflected.
type Session struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	DOB       string `json:"dob"`
	CreatedAt string `json:"createdAt"`
	IsActive  bool   `json:"isActive"`
	HasPhoto  bool   `json:"hasPhoto"`
	// PhotoData is written as null when the user has no photo.
	PhotoData *string `json:"photoData"`
}

// NewSession snapshots u together with its resolved photo.
func NewSession(u User, photo string) Session {
	s := Session{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		DOB:       u.DOB,
		CreatedAt: u.CreatedAt,
		IsActive:  u.IsActive,
		HasPhoto:  u.HasPhoto,
	}
	if photo != "" {
		s.PhotoData = &photo
	}
	return s
}

// Photo returns the photo data URL, or "" when there is none.
func (s Session) Photo() string {
	if s.PhotoData == nil {
		return ""
	}
	return *s.PhotoData
}
