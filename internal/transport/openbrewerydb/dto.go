package openbrewerydb

import "github.com/kailas-cloud/brewdex/internal/domain/brewery"

// breweryDTO mirrors an Open Brewery DB v1 record. Nullable fields are pointers.
type breweryDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	BreweryType   string  `json:"brewery_type"`
	Address1      *string `json:"address_1"`
	Street        *string `json:"street"`
	City          string  `json:"city"`
	StateProvince *string `json:"state_province"`
	State         *string `json:"state"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	WebsiteURL    *string `json:"website_url"`
	Phone         *string `json:"phone"`
}

func (d *breweryDTO) toDomain() brewery.Brewery {
	state := deref(d.StateProvince)
	if state == "" {
		state = deref(d.State)
	}
	return brewery.Brewery{
		ID:         d.ID,
		Name:       d.Name,
		Type:       brewery.Type(d.BreweryType),
		Address1:   deref(d.Address1),
		Street:     deref(d.Street),
		City:       d.City,
		State:      state,
		PostalCode: d.PostalCode,
		Country:    d.Country,
		WebsiteURL: deref(d.WebsiteURL),
		Phone:      deref(d.Phone),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
