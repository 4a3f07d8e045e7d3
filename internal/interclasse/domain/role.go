package domain

// Role tokens are persisted verbatim and must round-trip unchanged.
type Role string

const (
	RoleReferee Role = "juiz"
	RoleCaptain Role = "capitao"
	RolePlayer  Role = "jogador"
)

// Roles lists every known role, highest rank first.
var Roles = []Role{RoleReferee, RoleCaptain, RolePlayer}

// Rank orders roles: referee > captain > player. Unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleReferee:
		return 3
	case RoleCaptain:
		return 2
	case RolePlayer:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r.Rank() > 0 }

// Covers reports whether r grants at least the access of required.
// Unknown roles on either side never match.
func (r Role) Covers(required Role) bool {
	return r.Valid() && required.Valid() && r.Rank() >= required.Rank()
}

// Label is the human readable role name shown to users.
func (r Role) Label() string {
	switch r {
	case RoleReferee:
		return "Juiz"
	case RoleCaptain:
		return "Capitão de Equipe"
	case RolePlayer:
		return "Jogador"
	default:
		return string(r)
	}
}
