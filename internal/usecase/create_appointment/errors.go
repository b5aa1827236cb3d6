package create_appointment

import "errors"

var (
	// ErrStoreNotFound возвращается, когда салон не найден или не активен
	ErrStoreNotFound = errors.New("create_appointment: store not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в салоне или не активен
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrAddonNotFound возвращается, когда дополнение не относится к услуге
	ErrAddonNotFound = errors.New("create_appointment: addon not found")

	// ErrStoreNotConfigured возвращается, когда у салона не настроен часовой пояс
	ErrStoreNotConfigured = errors.New("create_appointment: store timezone is not configured")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом рабочего дня мастера
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrTooLateToBook возвращается при попытке записаться на прошедшее время
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят другой записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
