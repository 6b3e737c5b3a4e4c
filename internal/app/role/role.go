package role

// Role определяет уровень доступа пользователя
type Role int

const (
	Client Role = iota // обычный клиент
	Admin              // администратор
)

func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	default:
		return "client"
	}
}
