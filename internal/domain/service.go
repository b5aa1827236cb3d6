package domain

// Service услуга салона
type Service struct {
	ID              int64
	StoreID         int64
	Name            string
	DurationMinutes int
	Price           float64
	Category        string
	IsActive        bool
}

// Addon дополнение к услуге, увеличивающее длительность записи
type Addon struct {
	ID              int64
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64
}

// TotalDurationMinutes длительность услуги с учетом дополнений
func TotalDurationMinutes(service *Service, addons []*Addon) int {
	total := service.DurationMinutes
	for _, a := range addons {
		total += a.DurationMinutes
	}
	return total
}
