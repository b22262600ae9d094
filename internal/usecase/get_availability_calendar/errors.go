package get_availability_calendar

import "errors"

var (
	// ErrArtistNotFound мастер не найден или не принимает записи
	ErrArtistNotFound = errors.New("artist not found")

	// ErrInvalidRange некорректный диапазон дат
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("usecase: internal error")
)
