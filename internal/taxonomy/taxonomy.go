// Package taxonomy holds the fixed catalog of specialization categories and
// the filtering engine used by listing screens.
//
// The catalog is read-only at runtime. Users may still filter by ad-hoc
// labels that are not part of the catalog; selection filtering works on a
// flat label set on purpose so those pass through transparently.
package taxonomy

import "strings"

// Category is an ordered group of specialization labels.
type Category struct {
	Name  string   `json:"category"`
	Items []string `json:"items"`
}

// Taxonomy is the ordered catalog of categories.
type Taxonomy []Category

// Default is the marketplace specialization catalog. Labels are the
// Spanish wire values shared with the existing clients.
func Default() Taxonomy {
	return Taxonomy{
		{
			Name: "Acabados",
			Items: []string{
				"Accesorios de baño",
				"Adecuaciones y remodelaciones",
				"Alfombrado",
				"Carpintería de madera",
				"Carpintería metálica",
				"Cubiertas y terrazas",
				"Enchapes",
				"Iluminación",
				"Impermeabilización y aislamiento térmico",
				"Mármoles y granitos",
				"Mobiliario",
				"Pintura en muros",
				"Piso laminado",
				"Puertas de madera",
				"Revestimientos",
				"Ventanería",
			},
		},
		{
			Name: "Estructura",
			Items: []string{
				"Acero de refuerzo",
				"Cimentaciones profundas",
				"Concreto premezclado",
				"Estructura metálica",
				"Excavaciones",
				"Mampostería estructural",
				"Prefabricados de concreto",
			},
		},
		{
			Name: "Instalaciones",
			Items: []string{
				"Aire acondicionado",
				"Ascensores",
				"Instalaciones eléctricas",
				"Instalaciones hidrosanitarias",
				"Red contra incendios",
				"Redes de gas",
				"Sistemas solares",
			},
		},
		{
			Name: "Obras exteriores",
			Items: []string{
				"Andenes y sardineles",
				"Cerramientos",
				"Paisajismo",
				"Pavimentación",
				"Señalización vial",
			},
		},
		{
			Name: "Servicios",
			Items: []string{
				"Alquiler de maquinaria",
				"Ensayos de laboratorio",
				"Seguridad industrial",
				"Topografía",
				"Transporte de materiales",
			},
		},
	}
}

// Contains reports whether label appears anywhere in the catalog.
func (t Taxonomy) Contains(label string) bool {
	for _, category := range t {
		for _, item := range category.Items {
			if item == label {
				return true
			}
		}
	}
	return false
}

// Browse returns the subset of the taxonomy whose item labels contain query
// as a case-insensitive substring. Categories left with zero items are
// dropped; category and item order is preserved. An empty query returns the
// whole catalog.
func (t Taxonomy) Browse(query string) Taxonomy {
	query = strings.ToLower(query)
	var out Taxonomy
	for _, category := range t {
		var items []string
		for _, item := range category.Items {
			if strings.Contains(strings.ToLower(item), query) {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			out = append(out, Category{Name: category.Name, Items: items})
		}
	}
	return out
}

// MatchesSelection reports whether an entity categorized under category
// passes the selected-label filter. An empty selection means no restriction;
// otherwise plain set membership. The taxonomy structure is deliberately not
// consulted, so ad-hoc labels outside the catalog filter like any other.
func MatchesSelection(category string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, label := range selected {
		if label == category {
			return true
		}
	}
	return false
}
