package entity

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "CASHIER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCashier
}
