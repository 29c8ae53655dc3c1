package domain

import (
	"errors"
	"strings"

	"mesaYaAdmin/internal/shared/normalization"
)

var (
	ErrNameRequired  = errors.New("el nombre es obligatorio")
	ErrPhoneRequired = errors.New("el teléfono es obligatorio")
)

// Customer is a diner registered in the loyalty program.
type Customer struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Points int
}

// Label is the text shown in customer pickers.
func (c Customer) Label() string {
	return c.Name + " (Tel: " + c.Phone + ")"
}

// NormalizeCustomer attempts to construct a Customer from an arbitrary map payload.
func NormalizeCustomer(raw map[string]any) (Customer, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Customer{}, false
	}
	return Customer{
		ID:     id,
		Name:   normalization.AsString(raw["nombre"]),
		Email:  normalization.AsString(raw["email"]),
		Phone:  normalization.AsString(raw["telefono"]),
		Points: normalization.AsInt(raw["puntos"]),
	}, true
}

// BuildCustomerList projects a collection payload into customers. The boolean is
// false only when the payload is not a collection; an empty one is valid.
func BuildCustomerList(payload any) ([]Customer, bool) {
	rawItems := normalization.ItemsFromPayload(payload, "clientes")
	if rawItems == nil {
		return nil, false
	}
	customers := make([]Customer, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if customer, ok := NormalizeCustomer(rawMap); ok {
				customers = append(customers, customer)
			}
		}
	}
	return customers, true
}

// FindCustomer returns the customer with the given id.
func FindCustomer(customers []Customer, id string) (Customer, bool) {
	for _, customer := range customers {
		if customer.ID == id {
			return customer, true
		}
	}
	return Customer{}, false
}

// CustomerInput holds the editable fields of the customer form.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// InputFromCustomer fills the form with the stored values of c.
func InputFromCustomer(c Customer) CustomerInput {
	return CustomerInput{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// Normalize trims every field.
func (in CustomerInput) Normalize() CustomerInput {
	return CustomerInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
}

// Validate checks the required fields; email is optional.
func (in CustomerInput) Validate() error {
	in = in.Normalize()
	var errs []error
	if in.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if in.Phone == "" {
		errs = append(errs, ErrPhoneRequired)
	}
	return errors.Join(errs...)
}

// Payload is the request body accepted by the customer endpoints.
func (in CustomerInput) Payload() map[string]any {
	in = in.Normalize()
	return map[string]any{
		"nombre":   in.Name,
		"email":    in.Email,
		"telefono": in.Phone,
	}
}
