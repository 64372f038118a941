// Package query turns raw, untrusted query-string parameters into typed,
// bounded query descriptions. Nothing here knows about the store: the
// repositories translate the result into their own query language, always
// comparing values and never splicing caller input in as operators.
package query

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps Skip within int for any accepted limit.
	MaxPage = math.MaxInt/MaxLimit + 1
)

// Query-string parameter names.
const (
	ParamPage      = "page"
	ParamLimit     = "limit"
	ParamCategory  = "category"
	ParamPriceBand = "price_band"
	ParamName      = "name"
	ParamUsername  = "username"
	ParamSortBy    = "sortBy"
	ParamOrder     = "order"
)

var (
	productSortFields = []string{"name", "price"}
	userSortFields    = []string{"username", "role"}
)

// Direction is the sort direction, encoded the way document stores expect it.
type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// Sort orders a result set by a single allow-listed field.
type Sort struct {
	Field     string
	Direction Direction
}

// Page is a 1-based pagination window.
type Page struct {
	Number int
	Limit  int
}

// Skip is the number of matching records before the window.
func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the range, bounds included.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// ProductFilter is the conjunction of all set fields. Zero values mean
// "no constraint".
type ProductFilter struct {
	Category     string
	Price        *PriceRange
	NameContains string
}

// Matches evaluates the filter against a single product.
func (f ProductFilter) Matches(p *domain.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Price != nil && !f.Price.Contains(p.Price) {
		return false
	}
	if f.NameContains != "" && !containsFold(p.Name, f.NameContains) {
		return false
	}
	return true
}

// ProductQuery describes one read against the product collection.
// A nil Sort means store order by id; a nil Page means the whole result set.
type ProductQuery struct {
	Filter ProductFilter
	Sort   *Sort
	Page   *Page
}

// UserFilter narrows a user read.
type UserFilter struct {
	UsernameContains string
}

// Matches evaluates the filter against a single user.
func (f UserFilter) Matches(u *domain.User) bool {
	return f.UsernameContains == "" || containsFold(u.Username, f.UsernameContains)
}

// UserQuery describes one read against the user collection. User reads are
// never paginated.
type UserQuery struct {
	Filter UserFilter
	Sort   *Sort
}

// ProductList builds the query behind GET /api/products.
func ProductList(params url.Values) (ProductQuery, error) {
	q := ProductQuery{
		Filter: ProductFilter{
			Category:     params.Get(ParamCategory),
			NameContains: params.Get(ParamName),
		},
	}

	if band := params.Get(ParamPriceBand); band != "" {
		r, err := ParsePriceBand(band)
		if err != nil {
			return ProductQuery{}, err
		}
		q.Filter.Price = &r
	}

	page := ParsePage(params.Get(ParamPage), params.Get(ParamLimit))
	q.Page = &page
	return q, nil
}

// ProductSearch builds the query behind GET /api/products/search.
func ProductSearch(params url.Values) (ProductQuery, error) {
	name := params.Get(ParamName)
	if name == "" {
		return ProductQuery{}, domain.NewValidationError("Missing search parameter: name")
	}
	return ProductQuery{Filter: ProductFilter{NameContains: name}}, nil
}

// ProductSort builds the query behind GET /api/products/sort.
func ProductSort(params url.Values) (ProductQuery, error) {
	s, err := ParseSort(params.Get(ParamSortBy), params.Get(ParamOrder), productSortFields)
	if err != nil {
		return ProductQuery{}, err
	}
	return ProductQuery{Sort: &s}, nil
}

// UserSearch builds the query behind GET /api/users/search.
func UserSearch(params url.Values) (UserQuery, error) {
	username := params.Get(ParamUsername)
	if username == "" {
		return UserQuery{}, domain.NewValidationError("Missing search parameter: username")
	}
	return UserQuery{Filter: UserFilter{UsernameContains: username}}, nil
}

// UserSort builds the query behind GET /api/users/sort.
func UserSort(params url.Values) (UserQuery, error) {
	s, err := ParseSort(params.Get(ParamSortBy), params.Get(ParamOrder), userSortFields)
	if err != nil {
		return UserQuery{}, err
	}
	return UserQuery{Sort: &s}, nil
}

// ParsePage reads page and limit. Missing, unparsable or non-positive values
// fall back to the defaults; page is capped at MaxPage and limit at MaxLimit.
func ParsePage(pageRaw, limitRaw string) Page {
	p := Page{Number: DefaultPage, Limit: DefaultLimit}

	if n, err := strconv.Atoi(strings.TrimSpace(pageRaw)); err == nil && n >= 1 {
		p.Number = min(n, MaxPage)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limitRaw)); err == nil && n >= 1 {
		p.Limit = min(n, MaxLimit)
	}
	return p
}

// ParsePriceBand parses "<min>-<max>". Both bounds must be finite,
// non-negative numbers with min <= max.
func ParsePriceBand(band string) (PriceRange, error) {
	invalid := domain.NewValidationError("Invalid price_band parameter")

	lo, hi, ok := strings.Cut(band, "-")
	if !ok {
		return PriceRange{}, invalid
	}
	minPrice, err := parsePrice(lo)
	if err != nil {
		return PriceRange{}, invalid
	}
	maxPrice, err := parsePrice(hi)
	if err != nil {
		return PriceRange{}, invalid
	}
	if minPrice > maxPrice {
		return PriceRange{}, invalid
	}
	return PriceRange{Min: minPrice, Max: maxPrice}, nil
}

// ParseSort validates sortBy against allowed and order against asc/desc.
// An empty order means ascending.
func ParseSort(sortBy, order string, allowed []string) (Sort, error) {
	if sortBy == "" || !slices.Contains(allowed, sortBy) {
		return Sort{}, domain.NewValidationError("Invalid sortBy parameter")
	}

	s := Sort{Field: sortBy, Direction: Asc}
	switch strings.ToLower(order) {
	case "", "asc":
	case "desc":
		s.Direction = Desc
	default:
		return Sort{}, domain.NewValidationError("Invalid order parameter")
	}
	return s, nil
}

func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
