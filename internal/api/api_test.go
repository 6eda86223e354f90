package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emlips/nc-news/internal/api"
	"github.com/emlips/nc-news/internal/config"
	"github.com/emlips/nc-news/internal/mocks"
	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

type fakePinger struct {
	err error
}

func (p fakePinger) HealthCheck(ctx context.Context) error {
	return p.err
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "9090"},
		HTTP:   config.HTTPConfig{AllowedOrigins: []string{"*"}},
	}
}

func setupTestRouter() (*gin.Engine, *mocks.Store) {
	gin.SetMode(gin.TestMode)

	store := mocks.NewSeededStore()
	services := service.NewServices(store.Repositories(), fakePinger{}, zerolog.Nop())
	router := api.NewRouter(services, testConfig(), zerolog.Nop())

	return router, store
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", w.Body.String(), err)
	}
	return response.Msg
}

type articlesResponse struct {
	Articles   []models.Article `json:"articles"`
	TotalCount int              `json:"total_count"`
}

func getArticles(t *testing.T, router *gin.Engine, query string) articlesResponse {
	t.Helper()
	w := doRequest(router, "GET", "/api/articles"+query, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/articles%s: expected 200, got %d (%s)", query, w.Code, w.Body.String())
	}
	var response articlesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	return response
}

func getArticle(t *testing.T, router *gin.Engine, id string) models.Article {
	t.Helper()
	w := doRequest(router, "GET", "/api/articles/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var response struct {
		Article models.Article `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	return response.Article
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header")
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := mocks.NewStore()
	services := service.NewServices(store.Repositories(), fakePinger{err: errors.New("refused")}, zerolog.Nop())
	router := api.NewRouter(services, testConfig(), zerolog.Nop())

	w := doRequest(router, "GET", "/health", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestEndpointCatalog(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "GET", "/api", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Endpoints map[string]json.RawMessage `json:"endpoints"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if _, ok := response.Endpoints["GET /api/articles"]; !ok {
		t.Errorf("Expected GET /api/articles in catalog, got %d entries", len(response.Endpoints))
	}
}

func TestPathNotFound(t *testing.T) {
	router, _ := setupTestRouter()

	for _, path := range []string{"/api/not-a-route", "/notapi", "/api/articles/1/votes"} {
		w := doRequest(router, "GET", path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
		if msg := decodeMsg(t, w); msg != "path not found" {
			t.Errorf("%s: expected 'path not found', got %q", path, msg)
		}
	}
}

func TestListTopicsAndUsers(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "GET", "/api/topics", nil)
	var topics struct {
		Topics []models.Topic `json:"topics"`
	}
	json.Unmarshal(w.Body.Bytes(), &topics)
	if w.Code != http.StatusOK || len(topics.Topics) != 3 {
		t.Errorf("Expected 3 topics, got %d (%d)", len(topics.Topics), w.Code)
	}
	for _, topic := range topics.Topics {
		if topic.Slug == "" || topic.Description == "" {
			t.Errorf("Incomplete topic: %+v", topic)
		}
	}

	w = doRequest(router, "GET", "/api/users", nil)
	var users struct {
		Users []models.User `json:"users"`
	}
	json.Unmarshal(w.Body.Bytes(), &users)
	if w.Code != http.StatusOK || len(users.Users) != 4 {
		t.Errorf("Expected 4 users, got %d (%d)", len(users.Users), w.Code)
	}
}

func TestGetUser(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "GET", "/api/users/butter_bridge", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var response struct {
		User models.User `json:"user"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.User.Username != "butter_bridge" || response.User.Name != "jonny" {
		t.Errorf("Unexpected user: %+v", response.User)
	}

	w = doRequest(router, "GET", "/api/users/nobody", nil)
	if w.Code != http.StatusNotFound || decodeMsg(t, w) != "user does not exist" {
		t.Errorf("Expected 404 user does not exist, got %d %s", w.Code, w.Body.String())
	}
}

func TestListArticles_Defaults(t *testing.T) {
	router, _ := setupTestRouter()

	response := getArticles(t, router, "")
	if response.TotalCount != 10 {
		t.Errorf("Expected total_count 10, got %d", response.TotalCount)
	}
	if len(response.Articles) != 10 {
		t.Fatalf("Expected 10 articles, got %d", len(response.Articles))
	}
	for i := 1; i < len(response.Articles); i++ {
		if response.Articles[i].CreatedAt.After(response.Articles[i-1].CreatedAt) {
			t.Errorf("Expected created_at desc, out of order at %d", i)
		}
	}
}

func TestListArticles_Pagination(t *testing.T) {
	router, _ := setupTestRouter()

	response := getArticles(t, router, "?sort_by=article_id&order=asc&limit=2&p=4")
	if len(response.Articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(response.Articles))
	}
	if response.Articles[0].ID != 7 || response.Articles[1].ID != 8 {
		t.Errorf("Expected articles 7 and 8, got %d and %d", response.Articles[0].ID, response.Articles[1].ID)
	}
	if response.TotalCount != 10 {
		t.Errorf("Expected total_count 10, got %d", response.TotalCount)
	}

	beyond := getArticles(t, router, "?topic=mitch&limit=5&p=3")
	if len(beyond.Articles) != 0 {
		t.Errorf("Expected empty page, got %d", len(beyond.Articles))
	}
	if beyond.TotalCount != 9 {
		t.Errorf("Expected total_count 9, got %d", beyond.TotalCount)
	}

	empty := getArticles(t, router, "?limit=0")
	if len(empty.Articles) != 0 || empty.TotalCount != 10 {
		t.Errorf("Expected empty page with total 10, got %d/%d", len(empty.Articles), empty.TotalCount)
	}
}

func TestListArticles_Sorting(t *testing.T) {
	router, _ := setupTestRouter()

	response := getArticles(t, router, "?sort_by=votes&order=asc")
	if response.Articles[0].Votes != -5 {
		t.Errorf("Expected lowest votes -5 first, got %d", response.Articles[0].Votes)
	}

	response = getArticles(t, router, "?sort_by=title&order=desc")
	for i := 1; i < len(response.Articles); i++ {
		if response.Articles[i].Title > response.Articles[i-1].Title {
			t.Errorf("Expected title desc, out of order at %d", i)
		}
	}

	response = getArticles(t, router, "?sort_by=author&limit=20")
	for i := 1; i < len(response.Articles); i++ {
		if response.Articles[i].Author > response.Articles[i-1].Author {
			t.Errorf("Expected author desc, out of order at %d", i)
		}
	}
}

func TestListArticles_TopicFilter(t *testing.T) {
	router, _ := setupTestRouter()

	cats := getArticles(t, router, "?topic=cats")
	if len(cats.Articles) != 1 || cats.TotalCount != 1 || cats.Articles[0].Topic != "cats" {
		t.Errorf("Unexpected cats listing: %+v", cats)
	}

	w := doRequest(router, "GET", "/api/articles?topic=paper", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for topic without articles, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"articles":[]`)) {
		t.Errorf("Expected empty articles array, got %s", w.Body.String())
	}

	w = doRequest(router, "GET", "/api/articles?topic=dogs", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if msg := decodeMsg(t, w); msg != "topic not found" {
		t.Errorf("Expected 'topic not found', got %q", msg)
	}
}

func TestListArticles_InvalidQueryTouchesNoStorage(t *testing.T) {
	router, store := setupTestRouter()

	tests := []struct {
		name  string
		query string
	}{
		{"unknown sort column", "?sort_by=body"},
		{"injection attempt", "?sort_by=votes;DROP%20TABLE%20articles"},
		{"order case", "?order=ASC"},
		{"unknown order", "?order=sideways"},
		{"limit trailing separator", "?limit=5;"},
		{"limit suffix", "?limit=5abc"},
		{"negative limit", "?limit=-1"},
		{"empty limit", "?limit="},
		{"page zero", "?p=0"},
		{"page suffix", "?p=2x"},
		{"bad escape", "?topic=%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := store.CallCount()

			w := doRequest(router, "GET", "/api/articles"+tt.query, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
			if msg := decodeMsg(t, w); msg != "bad request" {
				t.Errorf("Expected 'bad request', got %q", msg)
			}
			if calls := store.CallCount() - before; calls != 0 {
				t.Errorf("Expected no storage calls, got %d", calls)
			}
		})
	}
}

func TestGetArticle(t *testing.T) {
	router, _ := setupTestRouter()

	article := getArticle(t, router, "1")
	if article.ID != 1 || article.CommentCount != 8 {
		t.Errorf("Expected article 1 with 8 comments, got %+v", article)
	}
	if article.Body == "" || article.ImageURL == "" {
		t.Errorf("Expected full article, got %+v", article)
	}

	zero := getArticle(t, router, "2")
	if zero.CommentCount != 0 {
		t.Errorf("Expected comment_count 0, got %d", zero.CommentCount)
	}

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/api/articles/999999", http.StatusNotFound, "article does not exist"},
		{"/api/articles/banana", http.StatusBadRequest, "bad request"},
		{"/api/articles/-1", http.StatusBadRequest, "bad request"},
		{"/api/articles/99999999999", http.StatusBadRequest, "bad request"},
	}
	for _, tt := range tests {
		w := doRequest(router, "GET", tt.path, nil)
		if w.Code != tt.status {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.status, w.Code)
		}
		if msg := decodeMsg(t, w); msg != tt.msg {
			t.Errorf("%s: expected %q, got %q", tt.path, tt.msg, msg)
		}
	}
}

func TestCreateArticle(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "POST", "/api/articles", map[string]string{
		"author": "butter_bridge",
		"title":  "A new article",
		"body":   "Some words",
		"topic":  "paper",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (%s)", w.Code, w.Body.String())
	}

	var response struct {
		Article models.Article `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Article.ID != 11 || response.Article.Title != "A new article" {
		t.Errorf("Unexpected article: %+v", response.Article)
	}
	if response.Article.CommentCount != 0 || response.Article.Votes != 0 {
		t.Errorf("Expected zero counters, got %+v", response.Article)
	}
	if response.Article.ImageURL != models.DefaultArticleImageURL {
		t.Errorf("Expected default image, got %s", response.Article.ImageURL)
	}

	listed := getArticles(t, router, "?topic=paper")
	if listed.TotalCount != 1 {
		t.Errorf("Expected new article in listing, got total %d", listed.TotalCount)
	}
}

func TestCreateArticle_BadRequests(t *testing.T) {
	router, _ := setupTestRouter()

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing title", map[string]string{"author": "lurker", "body": "b", "topic": "cats"}},
		{"unknown topic", map[string]string{"author": "lurker", "title": "t", "body": "b", "topic": "dogs"}},
		{"unknown author", map[string]string{"author": "nobody", "title": "t", "body": "b", "topic": "cats"}},
		{"not an object", []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "POST", "/api/articles", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
			if msg := decodeMsg(t, w); msg != "bad request" {
				t.Errorf("Expected 'bad request', got %q", msg)
			}
		})
	}
}

func TestVoteArticle(t *testing.T) {
	router, _ := setupTestRouter()
	original := getArticle(t, router, "1").Votes

	w := doRequest(router, "PATCH", "/api/articles/1", map[string]int{"inc_votes": -1})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	w = doRequest(router, "PATCH", "/api/articles/1", map[string]int{"inc_votes": 1})

	var response struct {
		Article models.Article `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Article.Votes != original {
		t.Errorf("Expected votes back to %d, got %d", original, response.Article.Votes)
	}

	w = doRequest(router, "PATCH", "/api/articles/10", map[string]int{"inc_votes": -100})
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Article.Votes != -105 {
		t.Errorf("Expected negative votes -105, got %d", response.Article.Votes)
	}
}

func TestVoteArticle_Errors(t *testing.T) {
	router, store := setupTestRouter()

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		msg    string
	}{
		{"missing article", "/api/articles/999", map[string]int{"inc_votes": 1}, http.StatusNotFound, "article does not exist"},
		{"non-numeric delta", "/api/articles/1", map[string]string{"inc_votes": "cat"}, http.StatusBadRequest, "bad request"},
		{"missing delta", "/api/articles/1", map[string]int{}, http.StatusBadRequest, "bad request"},
		{"bad id", "/api/articles/one", map[string]int{"inc_votes": 1}, http.StatusBadRequest, "bad request"},
		{"delta above int32", "/api/articles/1", map[string]interface{}{"inc_votes": int64(10000000000)}, http.StatusBadRequest, "bad request"},
		{"delta below int32", "/api/articles/1", map[string]interface{}{"inc_votes": int64(-2147483649)}, http.StatusBadRequest, "bad request"},
		{"fractional delta", "/api/articles/1", map[string]interface{}{"inc_votes": 1.5}, http.StatusBadRequest, "bad request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "PATCH", tt.path, tt.body)
			if w.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, w.Code)
			}
			if msg := decodeMsg(t, w); msg != tt.msg {
				t.Errorf("Expected %q, got %q", tt.msg, msg)
			}
		})
	}

	if store.Articles[1].Votes != 100 {
		t.Errorf("Expected article 1 untouched, got %d votes", store.Articles[1].Votes)
	}
}

func TestDeleteArticle(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "DELETE", "/api/articles/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %s", w.Body.String())
	}

	w = doRequest(router, "GET", "/api/articles/1/comments", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}

	w = doRequest(router, "DELETE", "/api/articles/1", nil)
	if w.Code != http.StatusNotFound || decodeMsg(t, w) != "article does not exist" {
		t.Errorf("Expected 404 article does not exist, got %d", w.Code)
	}
}

func TestListComments(t *testing.T) {
	router, _ := setupTestRouter()

	w := doRequest(router, "GET", "/api/articles/1/comments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var response struct {
		Comments []models.Comment `json:"comments"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Comments) != 8 {
		t.Fatalf("Expected 8 comments, got %d", len(response.Comments))
	}
	for i := 1; i < len(response.Comments); i++ {
		if response.Comments[i].CreatedAt.Before(response.Comments[i-1].CreatedAt) {
			t.Errorf("Expected oldest first, out of order at %d", i)
		}
	}

	w = doRequest(router, "GET", "/api/articles/1/comments?limit=3&p=3", nil)
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Comments) != 2 {
		t.Errorf("Expected 2 comments on last page, got %d", len(response.Comments))
	}

	w = doRequest(router, "GET", "/api/articles/2/comments", nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"comments":[]`)) {
		t.Errorf("Expected 200 with empty list, got %d %s", w.Code, w.Body.String())
	}

	w = doRequest(router, "GET", "/api/articles/999/comments", nil)
	if w.Code != http.StatusNotFound || decodeMsg(t, w) != "article does not exist" {
		t.Errorf("Expected 404 article does not exist, got %d", w.Code)
	}

	w = doRequest(router, "GET", "/api/articles/1/comments?limit=5;", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for limit=5;, got %d", w.Code)
	}
}

func TestPostComment(t *testing.T) {
	router, _ := setupTestRouter()
	body := "  Leading spaces and <b>markup</b> are kept verbatim"

	w := doRequest(router, "POST", "/api/articles/2/comments", map[string]string{
		"username": "lurker",
		"body":     body,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (%s)", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response) != 1 || response["newComment"] != body {
		t.Errorf("Expected only the comment body, got %v", response)
	}

	if count := getArticle(t, router, "2").CommentCount; count != 1 {
		t.Errorf("Expected comment_count 1, got %d", count)
	}
}

func TestPostComment_BadRequests(t *testing.T) {
	router, store := setupTestRouter()
	before := len(store.Comments)

	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{"nonexistent article", "/api/articles/999999/comments", map[string]string{"username": "lurker", "body": "hi"}},
		{"unknown user", "/api/articles/1/comments", map[string]string{"username": "nobody", "body": "hi"}},
		{"missing body", "/api/articles/1/comments", map[string]string{"username": "lurker"}},
		{"missing username", "/api/articles/1/comments", map[string]string{"body": "hi"}},
		{"bad id", "/api/articles/abc/comments", map[string]string{"username": "lurker", "body": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "POST", tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
			if msg := decodeMsg(t, w); msg != "bad request" {
				t.Errorf("Expected 'bad request', got %q", msg)
			}
		})
	}

	if len(store.Comments) != before {
		t.Errorf("Expected no comments written, got %d new", len(store.Comments)-before)
	}
}

func TestDeleteComment(t *testing.T) {
	router, _ := setupTestRouter()
	before := getArticle(t, router, "1").CommentCount

	w := doRequest(router, "DELETE", "/api/comments/2", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	if after := getArticle(t, router, "1").CommentCount; after != before-1 {
		t.Errorf("Expected comment_count %d, got %d", before-1, after)
	}

	w = doRequest(router, "GET", "/api/articles/1/comments?limit=100", nil)
	var response struct {
		Comments []models.Comment `json:"comments"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	for _, c := range response.Comments {
		if c.ID == 2 {
			t.Error("Deleted comment still listed")
		}
	}

	w = doRequest(router, "DELETE", "/api/comments/2", nil)
	if w.Code != http.StatusNotFound || decodeMsg(t, w) != "comment not found" {
		t.Errorf("Expected 404 comment not found, got %d", w.Code)
	}

	w = doRequest(router, "DELETE", "/api/comments/two", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestVoteComment(t *testing.T) {
	router, store := setupTestRouter()

	w := doRequest(router, "PATCH", "/api/comments/1", map[string]int{"inc_votes": -1})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	w = doRequest(router, "PATCH", "/api/comments/1", map[string]int{"inc_votes": 1})

	var response struct {
		Comment models.Comment `json:"comment"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Comment.Votes != 16 {
		t.Errorf("Expected votes back to 16, got %d", response.Comment.Votes)
	}

	w = doRequest(router, "PATCH", "/api/comments/999", map[string]int{"inc_votes": 1})
	if w.Code != http.StatusNotFound || decodeMsg(t, w) != "comment does not exist" {
		t.Errorf("Expected 404 comment does not exist, got %d", w.Code)
	}

	w = doRequest(router, "PATCH", "/api/comments/1", map[string]interface{}{"inc_votes": int64(10000000000)})
	if w.Code != http.StatusBadRequest || decodeMsg(t, w) != "bad request" {
		t.Errorf("Expected 400 for out-of-range delta, got %d", w.Code)
	}
	if store.Comments[1].Votes != 16 {
		t.Errorf("Expected comment 1 untouched, got %d votes", store.Comments[1].Votes)
	}
}

func TestStorageErrors(t *testing.T) {
	router, store := setupTestRouter()

	store.Err = &pq.Error{Code: "23503"}
	w := doRequest(router, "GET", "/api/topics", nil)
	if w.Code != http.StatusBadRequest || decodeMsg(t, w) != "bad request" {
		t.Errorf("Expected foreign key violation as 400, got %d", w.Code)
	}

	store.Err = errors.New("connection refused")
	w = doRequest(router, "GET", "/api/articles", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	if msg := decodeMsg(t, w); msg != "internal server error" {
		t.Errorf("Expected 'internal server error', got %q", msg)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("connection refused")) {
		t.Error("Storage error detail leaked to client")
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := mocks.NewSeededStore()
	services := service.NewServices(store.Repositories(), fakePinger{}, zerolog.Nop())
	cfg := testConfig()
	cfg.HTTP.RateLimitPerMinute = 2
	router := api.NewRouter(services, cfg, zerolog.Nop())

	if w := doRequest(router, "GET", "/api/topics", nil); w.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", w.Code)
	}
	w := doRequest(router, "GET", "/api/topics", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/topics", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected wildcard origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
