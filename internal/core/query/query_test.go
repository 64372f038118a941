package query

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
)

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Message
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", "", 1, 10},
		{"explicit", "2", "5", 2, 5},
		{"zero page clamps", "0", "5", 1, 5},
		{"negative page clamps", "-3", "5", 1, 5},
		{"garbage falls back", "abc", "xyz", 1, 10},
		{"zero limit falls back", "1", "0", 1, 10},
		{"limit capped", "1", "5000", 1, MaxLimit},
		{"whitespace tolerated", " 3 ", " 7 ", 3, 7},
		{"huge page capped", "100000000000000000", "100", MaxPage, MaxLimit},
		{"page beyond int falls back", "99999999999999999999999", "5", 1, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ParsePage(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, p.Number)
			assert.Equal(t, tc.wantLimit, p.Limit)
		})
	}
}

func TestPage_Skip(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 10}.Skip())
	assert.Equal(t, 5, Page{Number: 2, Limit: 5}.Skip())
	assert.Equal(t, 40, Page{Number: 5, Limit: 10}.Skip())
	assert.GreaterOrEqual(t, Page{Number: MaxPage, Limit: MaxLimit}.Skip(), 0)
}

func TestParsePriceBand(t *testing.T) {
	r, err := ParsePriceBand("10-50")
	require.NoError(t, err)
	assert.Equal(t, PriceRange{Min: 10, Max: 50}, r)

	r, err = ParsePriceBand("0.5-0.5")
	require.NoError(t, err)
	assert.True(t, r.Contains(0.5))

	for _, band := range []string{"10", "abc-50", "10-", "-10", "50-10", "NaN-10", "-5-10", "10-Inf", "10-20-30"} {
		_, err := ParsePriceBand(band)
		assert.Equal(t, "Invalid price_band parameter", validationMessage(t, err), "band %q", band)
	}
}

func TestPriceRange_ContainsIsInclusive(t *testing.T) {
	r := PriceRange{Min: 10, Max: 50}
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(50))
	assert.True(t, r.Contains(25))
	assert.False(t, r.Contains(9.99))
	assert.False(t, r.Contains(50.01))
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("price", "desc", productSortFields)
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: "price", Direction: Desc}, s)

	s, err = ParseSort("name", "", productSortFields)
	require.NoError(t, err)
	assert.Equal(t, Asc, s.Direction)

	s, err = ParseSort("name", "ASC", productSortFields)
	require.NoError(t, err)
	assert.Equal(t, Asc, s.Direction)

	_, err = ParseSort("bogus", "asc", productSortFields)
	assert.Equal(t, "Invalid sortBy parameter", validationMessage(t, err))

	_, err = ParseSort("", "asc", productSortFields)
	assert.Equal(t, "Invalid sortBy parameter", validationMessage(t, err))

	_, err = ParseSort("name", "sideways", productSortFields)
	assert.Equal(t, "Invalid order parameter", validationMessage(t, err))

	_, err = ParseSort("price", "asc", userSortFields)
	assert.Error(t, err, "product field must not be sortable on users")
}

func TestProductList(t *testing.T) {
	q, err := ProductList(url.Values{
		"category":   {"Electronics"},
		"price_band": {"10-50"},
		"name":       {"tv"},
		"page":       {"2"},
		"limit":      {"5"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Electronics", q.Filter.Category)
	assert.Equal(t, &PriceRange{Min: 10, Max: 50}, q.Filter.Price)
	assert.Equal(t, "tv", q.Filter.NameContains)
	assert.Equal(t, &Page{Number: 2, Limit: 5}, q.Page)
	assert.Nil(t, q.Sort)
}

func TestProductList_NoParams(t *testing.T) {
	q, err := ProductList(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, ProductFilter{}, q.Filter)
	assert.Equal(t, &Page{Number: DefaultPage, Limit: DefaultLimit}, q.Page)
}

func TestProductList_RejectsMalformedBand(t *testing.T) {
	_, err := ProductList(url.Values{"price_band": {"cheap"}})
	assert.Equal(t, "Invalid price_band parameter", validationMessage(t, err))
}

func TestProductFilter_Matches(t *testing.T) {
	tv := &domain.Product{Name: "Smart TV", Category: "Electronics", Price: 45}
	soap := &domain.Product{Name: "Soap", Category: "Household", Price: 3}
	radio := &domain.Product{Name: "Radio", Category: "Electronics", Price: 80}

	band := ProductFilter{Price: &PriceRange{Min: 10, Max: 50}}
	assert.True(t, band.Matches(tv))
	assert.False(t, band.Matches(soap))
	assert.False(t, band.Matches(radio))

	category := ProductFilter{Category: "Electronics"}
	assert.True(t, category.Matches(tv))
	assert.True(t, category.Matches(radio))
	assert.False(t, category.Matches(soap))

	both := ProductFilter{Category: "Electronics", Price: &PriceRange{Min: 10, Max: 50}}
	assert.True(t, both.Matches(tv))
	assert.False(t, both.Matches(radio))
	assert.False(t, both.Matches(soap))

	name := ProductFilter{NameContains: "sMaRt"}
	assert.True(t, name.Matches(tv))
	assert.False(t, name.Matches(radio))

	category = ProductFilter{Category: "electronics"}
	assert.False(t, category.Matches(tv), "category is an exact match")
}

func TestProductSearch(t *testing.T) {
	q, err := ProductSearch(url.Values{"name": {"soap"}})
	require.NoError(t, err)
	assert.Equal(t, "soap", q.Filter.NameContains)
	assert.Nil(t, q.Page, "search is not paginated")

	_, err = ProductSearch(url.Values{})
	assert.Equal(t, "Missing search parameter: name", validationMessage(t, err))
}

func TestProductSort(t *testing.T) {
	q, err := ProductSort(url.Values{"sortBy": {"price"}, "order": {"desc"}})
	require.NoError(t, err)
	assert.Equal(t, &Sort{Field: "price", Direction: Desc}, q.Sort)
	assert.Nil(t, q.Page, "sort is not paginated")

	_, err = ProductSort(url.Values{"sortBy": {"bogus"}})
	assert.Equal(t, "Invalid sortBy parameter", validationMessage(t, err))
}

func TestUserSearchAndSort(t *testing.T) {
	q, err := UserSearch(url.Values{"username": {"ali"}})
	require.NoError(t, err)
	assert.True(t, q.Filter.Matches(&domain.User{Username: "Alice"}))
	assert.False(t, q.Filter.Matches(&domain.User{Username: "bob"}))

	_, err = UserSearch(url.Values{})
	assert.Equal(t, "Missing search parameter: username", validationMessage(t, err))

	q, err = UserSort(url.Values{"sortBy": {"role"}})
	require.NoError(t, err)
	assert.Equal(t, &Sort{Field: "role", Direction: Asc}, q.Sort)

	_, err = UserSort(url.Values{"sortBy": {"password_hash"}})
	assert.Equal(t, "Invalid sortBy parameter", validationMessage(t, err))
}
