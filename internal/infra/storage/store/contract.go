package store

import "github.com/m04kA/SMC-SalonService/pkg/dbmetrics"

// DBExecutor общий интерфейс *sql.DB, *dbmetrics.DB и транзакций
type DBExecutor = dbmetrics.DBExecutor
