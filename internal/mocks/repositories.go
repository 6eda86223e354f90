package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/repository"
	"github.com/lib/pq"
)

// Store is an in-memory stand-in for the relational store. The mock
// repositories share one Store so comment counts and foreign keys behave
// like the real schema.
type Store struct {
	mu            sync.RWMutex
	Topics        map[string]*models.Topic
	Users         map[string]*models.User
	Articles      map[int]*models.Article
	Comments      map[int]*models.Comment
	nextArticleID int
	nextCommentID int

	// Err, when set, is returned by every repository call
	Err error
	// Calls counts repository calls, for asserting that nothing was queried
	Calls int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		Topics:        make(map[string]*models.Topic),
		Users:         make(map[string]*models.User),
		Articles:      make(map[int]*models.Article),
		Comments:      make(map[int]*models.Comment),
		nextArticleID: 1,
		nextCommentID: 1,
	}
}

// Repositories returns mock repositories backed by the store
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Topic:   &MockTopicRepository{store: s},
		User:    &MockUserRepository{store: s},
		Article: &MockArticleRepository{store: s},
		Comment: &MockCommentRepository{store: s},
		Dataset: &MockDatasetRepository{store: s},
	}
}

// CallCount returns the number of repository calls made so far
func (s *Store) CallCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Calls
}

func (s *Store) begin(write bool) (func(), error) {
	if write {
		s.mu.Lock()
		s.Calls++
		if s.Err != nil {
			s.mu.Unlock()
			return nil, s.Err
		}
		return s.mu.Unlock, nil
	}
	s.mu.Lock()
	s.Calls++
	err := s.Err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	return s.mu.RUnlock, nil
}

// commentCount must be called with the lock held
func (s *Store) commentCount(articleID int) int {
	n := 0
	for _, c := range s.Comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}

func (s *Store) articleView(a *models.Article) *models.Article {
	out := *a
	out.CommentCount = s.commentCount(a.ID)
	return &out
}

func foreignKeyViolation(constraint string) error {
	return &pq.Error{Code: "23503", Constraint: constraint}
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	store *Store
}

var _ repository.TopicRepository = (*MockTopicRepository)(nil)

func (m *MockTopicRepository) List(ctx context.Context) ([]*models.Topic, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return nil, err
	}
	defer done()

	topics := make([]*models.Topic, 0, len(m.store.Topics))
	for _, t := range m.store.Topics {
		copied := *t
		topics = append(topics, &copied)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug })
	return topics, nil
}

func (m *MockTopicRepository) Exists(ctx context.Context, slug string) (bool, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return false, err
	}
	defer done()

	_, exists := m.store.Topics[slug]
	return exists, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	store *Store
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return nil, err
	}
	defer done()

	users := make([]*models.User, 0, len(m.store.Users))
	for _, u := range m.store.Users {
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return nil, err
	}
	defer done()

	u, ok := m.store.Users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return false, err
	}
	defer done()

	_, exists := m.store.Users[username]
	return exists, nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	store *Store
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func (m *MockArticleRepository) List(ctx context.Context, q *models.ArticleQuery) ([]*models.Article, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return nil, err
	}
	defer done()

	var matched []*models.Article
	for _, a := range m.store.Articles {
		if q.Topic == "" || a.Topic == q.Topic {
			matched = append(matched, m.store.articleView(a))
		}
	}

	desc := q.Order == "desc"
	sort.Slice(matched, func(i, j int) bool {
		c := compareArticles(matched[i], matched[j], q.SortBy)
		if c == 0 {
			c = compareInts(matched[i].ID, matched[j].ID)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	articles := []*models.Article{}
	for i := q.Offset; i < len(matched) && i < q.Offset+q.Limit; i++ {
		articles = append(articles, matched[i])
	}
	return articles, nil
}

func compareArticles(a, b *models.Article, column string) int {
	switch column {
	case "article_id":
		return compareInts(a.ID, b.ID)
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "author":
		return strings.Compare(a.Author, b.Author)
	case "votes":
		return compareInts(a.Votes, b.Votes)
	default:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func (m *MockArticleRepository) Count(ctx context.Context, topic string) (int, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return 0, err
	}
	defer done()

	n := 0
	for _, a := range m.store.Articles {
		if topic == "" || a.Topic == topic {
			n++
		}
	}
	return n, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return nil, err
	}
	defer done()

	a, ok := m.store.Articles[id]
	if !ok {
		return nil, nil
	}
	return m.store.articleView(a), nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int) (bool, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return false, err
	}
	defer done()

	_, exists := m.store.Articles[id]
	return exists, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	done, err := m.store.begin(true)
	if err != nil {
		return err
	}
	defer done()

	return m.store.insertArticle(article)
}

// insertArticle must be called with the write lock held
func (s *Store) insertArticle(article *models.Article) error {
	if _, ok := s.Topics[article.Topic]; !ok {
		return foreignKeyViolation("articles_topic_fkey")
	}
	if _, ok := s.Users[article.Author]; !ok {
		return foreignKeyViolation("articles_author_fkey")
	}

	article.ID = s.nextArticleID
	s.nextArticleID++
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}
	article.CommentCount = 0

	stored := *article
	s.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	done, err := m.store.begin(true)
	if err != nil {
		return nil, err
	}
	defer done()

	a, ok := m.store.Articles[id]
	if !ok {
		return nil, nil
	}
	a.Votes += delta
	return m.store.articleView(a), nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int) (bool, error) {
	done, err := m.store.begin(true)
	if err != nil {
		return false, err
	}
	defer done()

	if _, ok := m.store.Articles[id]; !ok {
		return false, nil
	}
	delete(m.store.Articles, id)
	for cid, c := range m.store.Comments {
		if c.ArticleID == id {
			delete(m.store.Comments, cid)
		}
	}
	return true, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	store *Store
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int, page models.Page) ([]*models.Comment, error) {
	done, err := m.store.begin(false)
	if err != nil {
		return nil, err
	}
	defer done()

	var matched []*models.Comment
	for _, c := range m.store.Comments {
		if c.ArticleID == articleID {
			copied := *c
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if c := compareTimes(matched[i].CreatedAt, matched[j].CreatedAt); c != 0 {
			return c < 0
		}
		return matched[i].ID < matched[j].ID
	})

	comments := []*models.Comment{}
	for i := page.Offset; i < len(matched) && i < page.Offset+page.Limit; i++ {
		comments = append(comments, matched[i])
	}
	return comments, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	done, err := m.store.begin(true)
	if err != nil {
		return err
	}
	defer done()

	return m.store.insertComment(comment)
}

// insertComment must be called with the write lock held
func (s *Store) insertComment(comment *models.Comment) error {
	if _, ok := s.Articles[comment.ArticleID]; !ok {
		return foreignKeyViolation("comments_article_id_fkey")
	}
	if _, ok := s.Users[comment.Author]; !ok {
		return foreignKeyViolation("comments_author_fkey")
	}

	comment.ID = s.nextCommentID
	s.nextCommentID++
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	stored := *comment
	s.Comments[comment.ID] = &stored
	return nil
}

func (m *MockCommentRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error) {
	done, err := m.store.begin(true)
	if err != nil {
		return nil, err
	}
	defer done()

	c, ok := m.store.Comments[id]
	if !ok {
		return nil, nil
	}
	c.Votes += delta
	copied := *c
	return &copied, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) (bool, error) {
	done, err := m.store.begin(true)
	if err != nil {
		return false, err
	}
	defer done()

	if _, ok := m.store.Comments[id]; !ok {
		return false, nil
	}
	delete(m.store.Comments, id)
	return true, nil
}


// MockDatasetRepository is a mock implementation of DatasetRepository
type MockDatasetRepository struct {
	store *Store
}

var _ repository.DatasetRepository = (*MockDatasetRepository)(nil)

// Replace loads data into emptied tables and puts the previous contents
// back if any row violates a foreign key.
func (m *MockDatasetRepository) Replace(ctx context.Context, data *models.Dataset) error {
	done, err := m.store.begin(true)
	if err != nil {
		return err
	}
	defer done()

	s := m.store
	topics, users, articles, comments := s.Topics, s.Users, s.Articles, s.Comments
	nextArticleID, nextCommentID := s.nextArticleID, s.nextCommentID

	s.Topics = make(map[string]*models.Topic)
	s.Users = make(map[string]*models.User)
	s.Articles = make(map[int]*models.Article)
	s.Comments = make(map[int]*models.Comment)
	s.nextArticleID = 1
	s.nextCommentID = 1

	if err := s.load(data); err != nil {
		s.Topics, s.Users, s.Articles, s.Comments = topics, users, articles, comments
		s.nextArticleID, s.nextCommentID = nextArticleID, nextCommentID
		return err
	}
	return nil
}

// load must be called with the write lock held
func (s *Store) load(data *models.Dataset) error {
	for _, t := range data.Topics {
		copied := *t
		s.Topics[t.Slug] = &copied
	}
	for _, u := range data.Users {
		copied := *u
		s.Users[u.Username] = &copied
	}
	for _, a := range data.Articles {
		copied := *a
		if copied.ImageURL == "" {
			copied.ImageURL = models.DefaultArticleImageURL
		}
		if err := s.insertArticle(&copied); err != nil {
			return err
		}
	}
	for _, c := range data.Comments {
		copied := *c
		if err := s.insertComment(&copied); err != nil {
			return err
		}
	}
	return nil
}
