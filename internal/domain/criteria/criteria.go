package criteria

// Criteria is the triple of free-text query, type filter and city filter in effect.
// Empty Type or City means "no filter".
type Criteria struct {
	Query string
	Type  string
	City  string
}

// WithQuery returns a copy with the query text replaced.
func (c Criteria) WithQuery(q string) Criteria {
	c.Query = q
	return c
}

// WithType returns a copy with the type filter replaced.
func (c Criteria) WithType(t string) Criteria {
	c.Type = t
	return c
}

// WithCity returns a copy with the city filter replaced.
func (c Criteria) WithCity(city string) Criteria {
	c.City = city
	return c
}

// HasFilters reports whether a type or city filter is set.
func (c Criteria) HasFilters() bool {
	return c.Type != "" || c.City != ""
}
