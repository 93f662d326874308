package models

import "strings"

// BackendIDPrefix is prepended to backend customer IDs so they can never
// collide with locally numbered ones.
const BackendIDPrefix = "srv-"

type Customer struct {
	ID            string `json:"id"`
	BackendID     int64  `json:"backend_id,omitempty"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PricePerBidon int64  `json:"price_per_bidon"` // qepik
}

func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type Courier struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (c *Courier) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
