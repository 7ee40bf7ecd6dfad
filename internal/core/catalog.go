package core

import "strings"

// Catalog holds the fixed country and sector lists offered by the entry form.
type Catalog struct {
	Countries []string `json:"countries"`
	Sectors   []string `json:"sectors"`
}

// DefaultCatalog returns the built-in lists.
func DefaultCatalog() Catalog {
	return Catalog{
		Countries: append([]string(nil), defaultCountries...),
		Sectors:   append([]string(nil), defaultSectors...),
	}
}

func (c Catalog) HasCountry(name string) bool { return containsFold(c.Countries, name) }

func (c Catalog) HasSector(name string) bool { return containsFold(c.Sectors, name) }

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

var defaultCountries = []string{
	"Algeria", "Argentina", "Australia", "Austria", "Azerbaijan", "Bahrain",
	"Belgium", "Brazil", "Bulgaria", "Canada", "China", "Czech Republic",
	"Denmark", "Egypt", "Finland", "France", "Georgia", "Germany", "Greece",
	"Hungary", "India", "Indonesia", "Iraq", "Ireland", "Israel", "Italy",
	"Japan", "Jordan", "Kazakhstan", "Kuwait", "Libya", "Malaysia", "Mexico",
	"Morocco", "Netherlands", "Nigeria", "Norway", "Oman", "Pakistan", "Poland",
	"Portugal", "Qatar", "Romania", "Russia", "Saudi Arabia", "South Africa",
	"South Korea", "Spain", "Sweden", "Switzerland", "Tunisia", "Turkey",
	"Turkmenistan", "Ukraine", "United Arab Emirates", "United Kingdom",
	"United States", "Uzbekistan", "Vietnam",
}

var defaultSectors = []string{
	"Agriculture", "Automotive", "Chemicals", "Construction", "Defense",
	"Education", "Electronics", "Energy", "Finance", "Food", "Furniture",
	"Healthcare", "Logistics", "Machinery", "Mining", "Packaging", "Retail",
	"Technology", "Textile", "Tourism", "Other",
}
