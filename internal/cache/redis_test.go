package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pawnest/pawsearch/internal/service"
)

func TestRedis_Key_Deterministic(t *testing.T) {
	c := &Redis{}

	query := service.SearchQuery{Query: "dog vaccine", Language: "en", Page: 1, Limit: 20}
	assert.Equal(t, c.Key(query), c.Key(query))
}

func TestRedis_Key_Prefix(t *testing.T) {
	c := &Redis{}

	key := c.Key(service.SearchQuery{Query: "dog"})
	assert.True(t, strings.HasPrefix(key, "pawsearch:search:"))
}

func TestRedis_Key_DistinctQueries(t *testing.T) {
	c := &Redis{}

	base := service.SearchQuery{Query: "dog vaccine", Language: "en", Page: 1, Limit: 20}

	variants := []service.SearchQuery{
		{Query: "cat vaccine", Language: "en", Page: 1, Limit: 20},
		{Query: "dog vaccine", Language: "hi", Page: 1, Limit: 20},
		{Query: "dog vaccine", Language: "en", Page: 2, Limit: 20},
		{Query: "dog vaccine", Language: "en", Page: 1, Limit: 50},
		{Query: "dog vaccine", Language: "en", Page: 1, Limit: 20, Sort: service.SortDate},
	}

	baseKey := c.Key(base)
	for _, v := range variants {
		assert.NotEqual(t, baseKey, c.Key(v))
	}
}

func TestRedis_Key_FiltersChangeKey(t *testing.T) {
	c := &Redis{}

	urgent := true
	plain := service.SearchQuery{Query: "vet", Language: "en"}
	filtered := service.SearchQuery{
		Query:    "vet",
		Language: "en",
		Filters:  service.SearchFilters{Urgent: &urgent, Location: "mumbai"},
	}

	assert.NotEqual(t, c.Key(plain), c.Key(filtered))
}
