package backend

import (
	"math"
	"strconv"
	"strings"

	"aquadesk/pkg/models"
)

// UnknownFirstName is the fallback label when a customer record carries no
// usable name fields at all.
const UnknownFirstName = "Unknown"

// RawCustomer covers every customer shape the upstream has been seen to
// return. Which name fields are populated varies per record.
type RawCustomer struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	FullName    string  `json:"fullName"`
	PhoneNumber string  `json:"phoneNumber"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	Price       float64 `json:"pricePerCarboy"`
}

type RawCourier struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

// NormalizeCustomer converts a raw upstream record into the canonical
// customer shape. The synthesized ID gets the backend prefix so it can
// never collide with locally numbered customers; the upstream numeric id
// is kept for update/delete round-trips.
func NormalizeCustomer(raw RawCustomer) *models.Customer {
	first, last := resolveName(raw.FirstName, raw.LastName, raw.Name, raw.Surname, raw.FullName)

	phone := raw.PhoneNumber
	if phone == "" {
		phone = raw.Phone
	}

	return &models.Customer{
		ID:            models.BackendIDPrefix + strconv.FormatInt(raw.ID, 10),
		BackendID:     raw.ID,
		FirstName:     first,
		LastName:      last,
		Phone:         phone,
		Address:       raw.Address,
		PricePerBidon: Qepik(raw.Price),
	}
}

func NormalizeCourier(raw RawCourier) *models.Courier {
	first, last := resolveName(raw.FirstName, raw.LastName, raw.Name, raw.Surname, raw.FullName)
	return &models.Courier{
		ID:        raw.ID,
		FirstName: first,
		LastName:  last,
		Phone:     raw.PhoneNumber,
	}
}

// resolveName applies the shape precedence: explicit first/last fields,
// then name/surname, then a whitespace split of fullName (first token is
// the first name, the remainder the last name). A fullName without inner
// whitespace yields an empty last name, which is accepted.
func resolveName(firstName, lastName, name, surname, fullName string) (string, string) {
	if firstName != "" || lastName != "" {
		return firstName, lastName
	}
	if name != "" || surname != "" {
		return name, surname
	}
	full := strings.TrimSpace(fullName)
	if full != "" {
		parts := strings.Fields(full)
		return parts[0], strings.Join(parts[1:], " ")
	}
	return UnknownFirstName, ""
}

// Qepik converts the upstream's decimal manat amount to integer qepik.
func Qepik(manat float64) int64 {
	return int64(math.Round(manat * 100))
}

// Manat converts qepik back to the decimal the upstream expects.
func Manat(qepik int64) float64 {
	return float64(qepik) / 100
}
