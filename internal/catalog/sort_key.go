package catalog

type SortKey string

const (
	SortName             SortKey = "name"
	SortPriceLow         SortKey = "price-low"
	SortPriceHigh        SortKey = "price-high"
	SortRating           SortKey = "rating"
	SortProductCountDesc SortKey = "product-count-desc"
	SortNewest           SortKey = "newest"
	SortNone             SortKey = "none"
)

func (k SortKey) String() string {
	return string(k)
}

var SortKeys = []SortKey{
	SortName,
	SortPriceLow,
	SortPriceHigh,
	SortRating,
	SortProductCountDesc,
	SortNewest,
	SortNone,
}

// ParseSortKey maps a request value to a SortKey. Unknown and empty values
// fall back to SortName, the storefront default.
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortName
}

// Label is the human-readable option text for the product listing.
func (k SortKey) Label() string {
	switch k {
	case SortName:
		return "Name"
	case SortPriceLow:
		return "Price: Low to High"
	case SortPriceHigh:
		return "Price: High to Low"
	case SortRating:
		return "Highest Rated"
	case SortProductCountDesc:
		return "Most Products"
	case SortNewest:
		return "Newest"
	default:
		return "Unsorted"
	}
}
