package catalog

import "github.com/verge88/api-npa3/internal/domain"

// DefaultBaseURL is the origin of the document source.
const DefaultBaseURL = "https://meganorm.ru"

// DefaultCategories returns the fire-safety listings of the source, in
// presentation order.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{Key: "gost", Label: "ГОСТы и стандарты", ListingURL: DefaultBaseURL + "/mega_doc/fire/standart/standart_0.html"},
		{Key: "federal-laws", Label: "Федеральные законы", ListingURL: DefaultBaseURL + "/mega_doc/fire/federalnyj-zakon/federalnyj-zakon_0.html"},
		{Key: "orders", Label: "Приказы", ListingURL: DefaultBaseURL + "/mega_doc/fire/prikaz/prikaz_0.html"},
		{Key: "resolutions", Label: "Постановления", ListingURL: DefaultBaseURL + "/mega_doc/fire/postanovlenie/postanovlenie_0.html"},
	}
}
