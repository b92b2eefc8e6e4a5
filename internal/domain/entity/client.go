package entity

import "time"

// Client representa un cliente de la empresa. Document es su número de
// documento (cédula o NIT) y es único.
type Client struct {
	ID        string
	Document  string
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
