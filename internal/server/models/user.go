package models

// User is the stored account record. The JSON tags describe the persisted
// layout of the users artifact; PasswordHash must never be serialized into
// an API response; handlers work with PublicUser instead.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"credentialHash"`
}

// PublicUser is the outward-facing projection of a User, with the
// credential hash stripped.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the user without its credential hash.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
