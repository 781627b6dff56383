package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fssotc/website/config"
	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/internal/repository"
)

// ── blog errors ──

// ErrPostNotFound reports a missing post, or a draft asked for publicly.
var ErrPostNotFound = errors.New("post not found")

const feedCacheKey = "blog:rss"

// PostService blog posts and their RSS feed.
type PostService interface {
	// List returns published posts, newest first.
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.PostResponse, int64, error)
	// ListAll includes drafts.
	ListAll(ctx context.Context, page *dto.PaginationRequest) ([]dto.PostResponse, int64, error)
	// Get hides drafts unless withDrafts is set.
	Get(ctx context.Context, id string, withDrafts bool) (*dto.PostResponse, error)
	Create(ctx context.Context, authorID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(ctx context.Context, id string) error
	// Feed renders the latest published posts as RSS 2.0.
	Feed(ctx context.Context) (string, error)
}

type postService struct {
	repo    *repository.Repository
	cal     Calendar
	site    *config.SiteConfig
	baseURL string
	feed    *cache.Cache
	logger  *zap.Logger
}

// NewPostService creates a PostService. The rendered feed is kept for
// site.FeedCacheTTL and dropped on every write.
func NewPostService(repo *repository.Repository, cal Calendar, site *config.SiteConfig, baseURL string, logger *zap.Logger) PostService {
	ttl := site.FeedCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &postService{
		repo:    repo,
		cal:     cal,
		site:    site,
		baseURL: strings.TrimRight(baseURL, "/"),
		feed:    cache.New(ttl, 2*ttl),
		logger:  logger,
	}
}

func (s *postService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.PostResponse, int64, error) {
	posts, total, err := s.repo.Post.ListPublished(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("list published posts failed", zap.Error(err))
		return nil, 0, err
	}
	return toPostResponses(posts), total, nil
}

func (s *postService) ListAll(ctx context.Context, page *dto.PaginationRequest) ([]dto.PostResponse, int64, error) {
	posts, total, err := s.repo.Post.ListAll(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("list posts failed", zap.Error(err))
		return nil, 0, err
	}
	return toPostResponses(posts), total, nil
}

func (s *postService) Get(ctx context.Context, id string, withDrafts bool) (*dto.PostResponse, error) {
	post, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.Published && !withDrafts {
		return nil, ErrPostNotFound
	}
	resp := toPostResponse(post)
	return &resp, nil
}

func (s *postService) Create(ctx context.Context, authorID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	post := &model.Post{
		Title:   strings.TrimSpace(req.Title),
		Summary: strings.TrimSpace(req.Summary),
		Body:    req.Body,
		Author:  s.authorName(ctx, authorID),
	}
	s.setPublished(post, req.Published)

	if err := s.repo.Post.Create(ctx, post); err != nil {
		s.logger.Error("create post failed", zap.String("title", post.Title), zap.Error(err))
		return nil, err
	}
	s.feed.Delete(feedCacheKey)
	resp := toPostResponse(post)
	return &resp, nil
}

func (s *postService) Update(ctx context.Context, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		post.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Published != nil {
		s.setPublished(post, *req.Published)
	}

	if err := s.repo.Post.Update(ctx, post); err != nil {
		s.logger.Error("update post failed", zap.String("post_id", id), zap.Error(err))
		return nil, err
	}
	s.feed.Delete(feedCacheKey)
	resp := toPostResponse(post)
	return &resp, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Post.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		s.logger.Error("delete post failed", zap.String("post_id", id), zap.Error(err))
		return err
	}
	s.feed.Delete(feedCacheKey)
	return nil
}

func (s *postService) Feed(ctx context.Context) (string, error) {
	if cached, ok := s.feed.Get(feedCacheKey); ok {
		return cached.(string), nil
	}

	size := s.site.FeedSize
	if size <= 0 {
		size = 20
	}
	posts, _, err := s.repo.Post.ListPublished(ctx, 0, size)
	if err != nil {
		s.logger.Error("load feed posts failed", zap.Error(err))
		return "", err
	}

	feed := &feeds.Feed{
		Title:       s.site.Title,
		Link:        &feeds.Link{Href: s.baseURL + "/blog"},
		Description: s.site.Description,
		Author:      &feeds.Author{Name: s.site.Author, Email: s.site.Email},
		Created:     s.cal.Now().UTC(),
	}
	for i := range posts {
		p := &posts[i]
		created := p.CreatedAt
		if p.PublishedAt != nil {
			created = *p.PublishedAt
		}
		if i == 0 {
			feed.Updated = created
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.PostID,
			Title:       p.Title,
			Link:        &feeds.Link{Href: s.baseURL + "/blog/" + p.PostID},
			Description: p.Summary,
			Author:      &feeds.Author{Name: p.Author},
			Created:     created,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("render rss feed failed", zap.Error(err))
		return "", err
	}
	s.feed.SetDefault(feedCacheKey, rss)
	return rss, nil
}

func (s *postService) get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error("get post failed", zap.String("post_id", id), zap.Error(err))
		return nil, err
	}
	return post, nil
}

// setPublished stamps the first publication and keeps it across
// unpublish/publish cycles.
func (s *postService) setPublished(post *model.Post, published bool) {
	post.Published = published
	if published && post.PublishedAt == nil {
		now := s.cal.Now().UTC()
		post.PublishedAt = &now
	}
}

func (s *postService) authorName(ctx context.Context, adminID string) string {
	if adminID != "" {
		admin, err := s.repo.Admin.GetByID(ctx, adminID)
		if err == nil {
			return admin.Username
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("lookup post author failed", zap.String("admin_id", adminID), zap.Error(err))
		}
	}
	return s.site.Author
}

func toPostResponses(posts []model.Post) []dto.PostResponse {
	result := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		result = append(result, toPostResponse(&posts[i]))
	}
	return result
}
