package user

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role Role
}

func NewActor(id int64, role Role) Actor {
	return Actor{ID: id, Role: role}
}

func (a Actor) IsStaff() bool { return a.Role.IsStaff() }

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
