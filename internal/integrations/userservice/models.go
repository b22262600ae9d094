package userservice

// User профиль клиента из UserService
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	IsBlocked bool   `json:"is_blocked"`
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
