package models

// SortColumns lists the article columns a listing may be ordered by
var SortColumns = map[string]bool{
	"article_id": true,
	"title":      true,
	"author":     true,
	"created_at": true,
	"votes":      true,
}

// SortOrders lists the accepted order directions
var SortOrders = map[string]bool{
	"asc":  true,
	"desc": true,
}

// Listing defaults
const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "desc"
	DefaultLimit  = 10
	DefaultPage   = 1
)

// Page is a validated limit/offset pair
type Page struct {
	Limit  int
	Offset int
}

// ArticleQuery is the validated form of an article listing.
// SortBy and Order are only ever populated from SortColumns and SortOrders.
type ArticleQuery struct {
	Topic  string // empty means no filter
	SortBy string
	Order  string
	Page
}
