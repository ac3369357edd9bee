package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func catalog() []Product {
	return []Product{
		{ID: "1", Name: "Premium Dog Food", Description: "Grain-free kibble", Category: "food"},
		{ID: "2", Name: "Cat Tower", Description: "Three level scratching post", Category: "toys"},
		{ID: "3", Name: "Flea Shampoo", Description: "Gentle formula for dogs", Category: "care"},
	}
}

func TestFilterProductsBySearchTerm(t *testing.T) {
	got := FilterProducts(catalog(), "DOG", "")
	assert.Len(t, got, 2)
	assert.Equal(t, "Premium Dog Food", got[0].Name)
	assert.Equal(t, "Flea Shampoo", got[1].Name)
}

func TestFilterProductsByCategory(t *testing.T) {
	got := FilterProducts(catalog(), "", "toys")
	assert.Len(t, got, 1)
	assert.Equal(t, "Cat Tower", got[0].Name)
}

func TestFilterProductsCombined(t *testing.T) {
	got := FilterProducts(catalog(), "dog", "care")
	assert.Len(t, got, 1)
	assert.Equal(t, "Flea Shampoo", got[0].Name)
}

func TestFilterProductsEmptyFiltersReturnAll(t *testing.T) {
	assert.Len(t, FilterProducts(catalog(), "", ""), 3)
}
