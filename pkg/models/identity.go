package models

// IdentityKind discriminates the three possible session actors.
type IdentityKind string

const (
	IdentityAnonymous IdentityKind = "anonymous"
	IdentityAdmin     IdentityKind = "admin"
	IdentityUser      IdentityKind = "user"
)

// Identity is the current session actor: nobody, the single admin, or a
// specific registered user. User is set only when Kind is IdentityUser.
type Identity struct {
	Kind IdentityKind `json:"kind"`
	User *User        `json:"user,omitempty"`
}

func Anonymous() Identity {
	return Identity{Kind: IdentityAnonymous}
}

func AsAdmin() Identity {
	return Identity{Kind: IdentityAdmin}
}

func AsUser(u User) Identity {
	return Identity{Kind: IdentityUser, User: &u}
}

func (i Identity) IsAnonymous() bool {
	return i.Kind != IdentityAdmin && i.Kind != IdentityUser
}

func (i Identity) IsAdmin() bool {
	return i.Kind == IdentityAdmin
}

func (i Identity) IsUser() bool {
	return i.Kind == IdentityUser && i.User != nil
}
