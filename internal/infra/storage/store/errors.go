package store

import "errors"

var (
	// ErrStoreNotFound возвращается, когда салон не найден
	ErrStoreNotFound = errors.New("store.repository: store not found")

	// ErrDuplicateDay возвращается при попытке сохранить два расписания на один день недели
	ErrDuplicateDay = errors.New("store.repository: duplicate business hours for day of week")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("store.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("store.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("store.repository: failed to scan row")
)
