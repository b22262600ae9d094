package studio

import "errors"

var (
	// ErrArtistNotFound возвращается, когда мастер не найден
	ErrArtistNotFound = errors.New("studio.repository: artist not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("studio.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("studio.repository: failed to execute query")
)
