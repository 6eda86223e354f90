package validation

import (
	"math"
	"net/url"
	"regexp"
	"strconv"

	"github.com/emlips/nc-news/internal/apperr"
	"github.com/emlips/nc-news/internal/models"
)

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// ParseArticleQuery validates the listing parameters topic, sort_by, order,
// limit and p. Every parameter is checked before a query is
// returned, so a single bad value rejects the whole request.
func ParseArticleQuery(values url.Values) (*models.ArticleQuery, error) {
	q := &models.ArticleQuery{
		Topic:  values.Get("topic"),
		SortBy: models.DefaultSortBy,
		Order:  models.DefaultOrder,
	}

	valid := true

	if sortBy, ok := lookup(values, "sort_by"); ok {
		if !models.SortColumns[sortBy] {
			valid = false
		}
		q.SortBy = sortBy
	}

	if order, ok := lookup(values, "order"); ok {
		if !models.SortOrders[order] {
			valid = false
		}
		q.Order = order
	}

	page, err := ParsePage(values)
	if err != nil {
		valid = false
	}
	q.Page = page

	if !valid {
		return nil, apperr.BadRequest()
	}
	return q, nil
}

// ParsePage validates limit and p. Both must be plain digit strings; p is
// 1-indexed and limit may be zero.
func ParsePage(values url.Values) (models.Page, error) {
	limit := models.DefaultLimit
	page := models.DefaultPage

	if raw, ok := lookup(values, "limit"); ok {
		n, err := parseNumber(raw)
		if err != nil {
			return models.Page{}, err
		}
		limit = n
	}

	if raw, ok := lookup(values, "p"); ok {
		n, err := parseNumber(raw)
		if err != nil || n < 1 {
			return models.Page{}, apperr.BadRequest()
		}
		page = n
	}

	offset := (page - 1) * limit
	if limit > 0 && offset/limit != page-1 {
		// overflow
		return models.Page{}, apperr.BadRequest()
	}

	return models.Page{Limit: limit, Offset: offset}, nil
}

// ParseID validates a path identifier. Identifiers are SERIAL columns, so
// anything outside int32 cannot exist and is treated as malformed.
func ParseID(raw string) (int, error) {
	if !digitsRegex.MatchString(raw) {
		return 0, apperr.BadRequest()
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, apperr.BadRequest()
	}
	return int(id), nil
}

// VoteDelta returns the signed increment carried by a PATCH body. A single
// vote may move the count by at most an int32 in either direction.
func VoteDelta(update *models.VoteUpdate) (int, error) {
	if update == nil || update.IncVotes == nil {
		return 0, apperr.BadRequest()
	}
	delta := *update.IncVotes
	if delta < math.MinInt32 || delta > math.MaxInt32 {
		return 0, apperr.BadRequest()
	}
	return delta, nil
}

// lookup distinguishes an absent parameter from one sent with an empty value
func lookup(values url.Values, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func parseNumber(raw string) (int, error) {
	if !digitsRegex.MatchString(raw) {
		return 0, apperr.BadRequest()
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest()
	}
	return n, nil
}
