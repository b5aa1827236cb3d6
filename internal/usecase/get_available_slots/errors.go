package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStoreNotFound возвращается, когда салон не найден или не активен
	ErrStoreNotFound = errors.New("store not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в салоне или не активен
	ErrStaffNotFound = errors.New("staff not found")

	// ErrAddonNotFound возвращается, когда дополнение не относится к услуге
	ErrAddonNotFound = errors.New("addon not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
