package businesshours

import "errors"

var (
	// ErrStoreNotFound возвращается, когда салон не найден
	ErrStoreNotFound = errors.New("store not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDuplicateDay возвращается, когда день недели указан дважды
	ErrDuplicateDay = errors.New("duplicate day of week")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
