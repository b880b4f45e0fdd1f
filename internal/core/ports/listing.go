package ports

// Sort keys accepted by the listing endpoints.
var (
	StoreSortFields = []string{"name", "email", "address", "createdAt", "averageRating", "ratingCount"}
	UserSortFields  = []string{"name", "email", "role", "address", "createdAt"}
)

const (
	DefaultSortBy = "name"
	DefaultLimit  = 50
)

// ListParams is the raw sort and pagination input shared by listing use cases.
type ListParams struct {
	Search string
	SortBy string
	Order  string // "asc" or "desc", case-insensitive
	Limit  *int   // nil means DefaultLimit
	Offset int
}
