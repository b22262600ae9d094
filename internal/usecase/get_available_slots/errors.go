package get_available_slots

import "errors"

var (
	// ErrArtistNotFound возвращается, когда мастер не найден или не принимает записи
	ErrArtistNotFound = errors.New("artist not found")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
