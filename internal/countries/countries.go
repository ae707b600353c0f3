// Package countries holds the static list of supported countries.
package countries

import (
	"errors"
	"fmt"
	"strings"

	"walink/internal/models"
	"walink/internal/validation"
)

// Defaults is the built-in country list. Order matters: dial-code prefix
// matching returns the first entry, so the United States shadows Canada.
var Defaults = []models.Country{
	{Code: "US", Name: "United States", DialCode: "+1", Mask: "(###) ###-####"},
	{Code: "BR", Name: "Brazil", DialCode: "+55", Mask: "(##) #####-####"},
	{Code: "GB", Name: "United Kingdom", DialCode: "+44", Mask: "#### ######"},
	{Code: "IN", Name: "India", DialCode: "+91", Mask: "#####-#####"},
	{Code: "DE", Name: "Germany", DialCode: "+49", Mask: "#### #######"},
	{Code: "ES", Name: "Spain", DialCode: "+34", Mask: "### ### ###"},
	{Code: "FR", Name: "France", DialCode: "+33", Mask: "# ## ## ## ##"},
	{Code: "IT", Name: "Italy", DialCode: "+39", Mask: "### #######"},
	{Code: "PT", Name: "Portugal", DialCode: "+351", Mask: "### ### ###"},
	{Code: "CA", Name: "Canada", DialCode: "+1", Mask: "(###) ###-####"},
	{Code: "AU", Name: "Australia", DialCode: "+61", Mask: "#### ### ###"},
	{Code: "RU", Name: "Russia", DialCode: "+7", Mask: "(###) ###-##-##"},
	{Code: "JP", Name: "Japan", DialCode: "+81", Mask: "##-####-####"},
	{Code: "MX", Name: "Mexico", DialCode: "+52", Mask: "(###) ### ####"},
	{Code: "ZA", Name: "South Africa", DialCode: "+27", Mask: "## ### ####"},
	{Code: "CN", Name: "China", DialCode: "+86", Mask: "### #### ####"},
	{Code: "AR", Name: "Argentina", DialCode: "+54", Mask: "### ### ####"},
	{Code: "CL", Name: "Chile", DialCode: "+56", Mask: "# #### ####"},
	{Code: "CO", Name: "Colombia", DialCode: "+57", Mask: "### ### ####"},
	{Code: "PE", Name: "Peru", DialCode: "+51", Mask: "### ### ###"},
}

// ErrEmptyCatalog is returned when a catalog would have no entries.
var ErrEmptyCatalog = errors.New("country list is empty")

// Catalog is an immutable, ordered country list.
type Catalog struct {
	countries []models.Country
	byCode    map[string]int
}

// New validates list and builds a catalog from it.
func New(list []models.Country) (*Catalog, error) {
	if len(list) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		countries: make([]models.Country, len(list)),
		byCode:    make(map[string]int, len(list)),
	}
	copy(c.countries, list)

	for i, country := range c.countries {
		if err := Validate(country); err != nil {
			return nil, fmt.Errorf("country %d: %w", i, err)
		}
		if _, dup := c.byCode[country.Code]; dup {
			return nil, fmt.Errorf("country %d: duplicate code %q", i, country.Code)
		}
		c.byCode[country.Code] = i
	}
	return c, nil
}

// Default returns a catalog of the built-in list.
func Default() *Catalog {
	c, err := New(Defaults)
	if err != nil {
		panic(err)
	}
	return c
}

var validate = validation.New()

// Validate checks a single entry against the tags on models.Country.
func Validate(c models.Country) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("country %q: %w", c.Code, err)
	}
	return nil
}

// All returns the countries in list order.
func (c *Catalog) All() []models.Country {
	out := make([]models.Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// First returns the first country of the list.
func (c *Catalog) First() models.Country {
	return c.countries[0]
}

// ByCode finds a country by its two-letter code (case-insensitive).
func (c *Catalog) ByCode(code string) (models.Country, bool) {
	i, ok := c.byCode[strings.ToUpper(code)]
	if !ok {
		return models.Country{}, false
	}
	return c.countries[i], true
}

// Resolve returns the country for code, or the first country when code is unknown.
func (c *Catalog) Resolve(code string) models.Country {
	if country, ok := c.ByCode(code); ok {
		return country
	}
	return c.First()
}

// Search filters countries whose name, dial code or code contains query.
// Name and code compare case-insensitively. An empty query returns everything.
func (c *Catalog) Search(query string) []models.Country {
	q := strings.ToLower(query)
	var out []models.Country
	for _, country := range c.countries {
		if strings.Contains(strings.ToLower(country.Name), q) ||
			strings.Contains(country.DialCode, q) ||
			strings.Contains(strings.ToLower(country.Code), q) {
			out = append(out, country)
		}
	}
	return out
}

// MatchDialPrefix returns the first country whose dial code prefixes s.
// Countries sharing a calling code are ambiguous; list order decides.
func (c *Catalog) MatchDialPrefix(s string) (models.Country, bool) {
	for _, country := range c.countries {
		if strings.HasPrefix(s, country.DialCode) {
			return country, true
		}
	}
	return models.Country{}, false
}

// Len returns the number of countries.
func (c *Catalog) Len() int {
	return len(c.countries)
}
