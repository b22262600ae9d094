package availability

import "errors"

var (
	// ErrArtistNotFound возвращается, когда мастер не найден
	ErrArtistNotFound = errors.New("artist not found")

	// ErrConfigNotFound возвращается при сбросе расписания, которого нет
	ErrConfigNotFound = errors.New("availability config not found")

	// ErrAccessDenied возвращается, когда пользователь не работает в студии мастера
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
