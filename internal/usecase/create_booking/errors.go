package create_booking

import "errors"

var (
	// ErrArtistNotFound возвращается, когда мастер не найден или не принимает записи
	ErrArtistNotFound = errors.New("create_booking: artist not found")

	// ErrClientNotFound возвращается, когда клиент не зарегистрирован в UserService
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrClientBlocked возвращается, когда клиенту запрещена запись
	ErrClientBlocked = errors.New("create_booking: client is blocked")

	// ErrInvalidDate возвращается, когда время начала уже прошло
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда время начала не входит в доступные слоты.
	// Также возвращается, если конкурентная запись заняла слот раньше.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
