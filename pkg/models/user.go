package models

// User is a registered portal member. The phone number is a bare
// identifier, not a credential: whoever presents it logs in as this user.
type User struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
}
