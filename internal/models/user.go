package models

// User is an entry of the users data file. Passwords are stored and compared
// in plain text; this store is a demo fixture, not an identity provider.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Profile is the public part of a User returned at login.
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Profile returns the public view of u. Name falls back to the username.
func (u User) Profile() Profile {
	name := u.Name
	if name == "" {
		name = u.Username
	}
	return Profile{Username: u.Username, Name: name}
}
