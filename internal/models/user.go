package models

// Profile holds the editable profile details attached to a user.
type Profile struct {
	Bio        string `json:"bio"`
	PictureURL string `json:"profile_picture,omitempty"`
}

// User represents an account as returned by the PourPal API.
type User struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	Is18Plus  bool    `json:"is_18_plus"`
	Profile   Profile `json:"profile"`
}

// UserPatch carries a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// Session is the persisted record of the authenticated identity. The session
// credential itself travels as a cookie; only the identity fields live here.
type Session struct {
	User User `json:"user"`
}
