package domain

type ProfileType string

const (
	ProfileTypeHe  ProfileType = "HE"
	ProfileTypeShe ProfileType = "SHE"
)

// Profile is one of the 1-2 personas attached to a user account.
type Profile struct {
	ID     string      `json:"id"`
	UserID string      `json:"user_id"`
	Type   ProfileType `json:"type"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar,omitempty"`
	Bio    string      `json:"bio,omitempty"`
}
