package entity

import "time"

// Company representa la empresa dueña de productos y bodegas (multi-tenant).
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
