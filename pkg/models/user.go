package models

// User is a registered account. The password field never leaves the server.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
