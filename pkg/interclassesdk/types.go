package interclassesdk

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each backing store.
type HealthChecks struct {
	Records  string `json:"records"`
	Sessions string `json:"sessions"`
}

// ============================================================================
// Registration
// ============================================================================

// WizardResponse is the registration draft as seen by the browser. The
// password is never echoed back.
type WizardResponse struct {
	Step     int    `json:"step"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	DOB      string `json:"dob,omitempty"`
	Role     string `json:"role,omitempty"`
	HasPhoto bool   `json:"hasPhoto"`
}

// PhotoResponse describes a normalised photo attached to the draft.
type PhotoResponse struct {
	Wizard         WizardResponse `json:"wizard"`
	DataURL        string         `json:"dataUrl"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	OriginalSize   int64          `json:"originalSize"`
	CompressedSize int            `json:"compressedSize"`
	AspectWarning  bool           `json:"aspectWarning"`
}

// RegistrationSummary is returned once a registration is finished.
type RegistrationSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	RoleLabel string `json:"roleLabel"`
	HasPhoto  bool   `json:"hasPhoto"`
	CreatedAt string `json:"createdAt"`
}

// ============================================================================
// Session
// ============================================================================

// SessionUser is the snapshot stored at login.
type SessionUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	DOB       string `json:"dob"`
	CreatedAt string `json:"createdAt"`
	IsActive  bool   `json:"isActive"`
	HasPhoto  bool   `json:"hasPhoto"`
	PhotoData string `json:"photoData,omitempty"`
}

type SessionResponse struct {
	LoggedIn    bool         `json:"loggedIn"`
	DisplayName string       `json:"displayName"`
	User        *SessionUser `json:"user,omitempty"`
}

type PermissionResponse struct {
	Role    string `json:"role"`
	Allowed bool   `json:"allowed"`
}

// ============================================================================
// Tournament
// ============================================================================

type TeamRequest struct {
	Name      string `json:"name"`
	ClassName string `json:"className"`
}

type MatchRequest struct {
	HomeTeamID  string `json:"homeTeamId"`
	AwayTeamID  string `json:"awayTeamId"`
	ScheduledAt string `json:"scheduledAt"`
	Location    string `json:"location"`
}

type Player struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
	Goals  int    `json:"goals"`
}

type Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ClassName    string   `json:"className"`
	CaptainID    string   `json:"captainId"`
	Players      []Player `json:"players"`
	Points       int      `json:"points"`
	GoalsFor     int      `json:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst"`
}

type Match struct {
	ID          string `json:"id"`
	HomeTeamID  string `json:"homeTeamId"`
	AwayTeamID  string `json:"awayTeamId"`
	ScheduledAt string `json:"scheduledAt"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type Scorer struct {
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Goals    int    `json:"goals"`
	TeamName string `json:"teamName"`
}
