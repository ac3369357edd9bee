package api

import "strings"

// FilterProducts narrows the catalog by a free-text search term and a
// category. The search term matches name or description case-insensitively;
// an empty category matches everything.
func FilterProducts(products []Product, search, category string) []Product {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(p.Name), search) ||
			strings.Contains(strings.ToLower(p.Description), search)
		matchesCategory := category == "" || p.Category == category

		if matchesSearch && matchesCategory {
			out = append(out, p)
		}
	}
	return out
}
