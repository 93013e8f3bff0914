package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"community-board/internal/domain/entity"
	"community-board/internal/domain/repository"
	"community-board/pkg/helpers"
	"community-board/pkg/mailer"
)

var ErrInvalidCategory = errors.New("invalid category")

// NoticeService owns notice CRUD plus the surrounding plumbing: listing
// cache, search index, attachment storage, and publish events. Redis, ES,
// RabbitMQ, and GCS are all optional; a nil client disables that concern.
type NoticeService struct {
	Repo      repository.NoticeRepository
	Redis     *redis.Client
	CacheTTL  time.Duration
	ES        *elasticsearch.Client
	ESIndex   string
	Pub       *helpers.RabbitPublisher
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func listKey(category entity.Category) string {
	if category == "" {
		return "notices:list:all"
	}
	return "notices:list:" + string(category)
}

type NoticeInput struct {
	Title    string
	Body     string
	Category entity.Category
	Date     time.Time
	PostedBy string // email of the authenticated author, for the publish event
}

// Create persists a new notice and fans out to cache invalidation, the
// search index, and the notice event queue.
func (s *NoticeService) Create(ctx context.Context, in NoticeInput) (*entity.Notice, error) {
	if !in.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	n := &entity.Notice{Title: in.Title, Body: in.Body, Category: in.Category, Date: in.Date}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"notice_id": n.ID, "category": n.Category}).Info("notice created")
	}

	s.invalidateListCache(ctx)
	_ = s.indexNotice(ctx, n)

	if s.Pub != nil {
		ev := mailer.NoticeEvent{
			NoticeID: n.ID,
			Title:    n.Title,
			Body:     n.Body,
			Category: string(n.Category),
			Date:     n.Date,
			PostedBy: in.PostedBy,
		}
		if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("notice_id", n.ID).Warn("publish notice event failed")
		}
	}
	return n, nil
}

// List returns notices, optionally filtered by category, through a
// read-through cache. Cache faults fall back to the repository.
func (s *NoticeService) List(ctx context.Context, category entity.Category) ([]entity.Notice, error) {
	key := listKey(category)
	if s.Redis != nil {
		var cached []entity.Notice
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	notices, err := s.Repo.List(category)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		// fail-open kalau redis error; the repository already answered
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, notices, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("cache write failed")
		}
	}
	return notices, nil
}

func (s *NoticeService) Get(ctx context.Context, id string) (*entity.Notice, error) {
	return s.Repo.GetByID(id)
}

// Update replaces title, body, category, and date of an existing notice.
// repository.ErrNotFound passes through untouched.
func (s *NoticeService) Update(ctx context.Context, id string, in NoticeInput) (*entity.Notice, error) {
	if !in.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	n := &entity.Notice{ID: id, Title: in.Title, Body: in.Body, Category: in.Category, Date: in.Date}
	if err := s.Repo.Update(n); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	_ = s.indexNotice(ctx, n)
	return n, nil
}

func (s *NoticeService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.removeFromIndex(ctx, id)
	return nil
}

// UploadAttachment stores the file in GCS and records its public URL on the
// notice. The notice must exist.
func (s *NoticeService) UploadAttachment(ctx context.Context, id string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	if _, err := s.Repo.GetByID(id); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("notices", id, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetAttachmentURL(id, url); err != nil {
		return "", err
	}
	s.invalidateListCache(ctx)
	return url, nil
}

// invalidateListCache drops every listing key; the category set is small so
// a targeted delete is not worth the bookkeeping.
func (s *NoticeService) invalidateListCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	keys := make([]string, 0, len(entity.Categories)+1)
	keys = append(keys, listKey(""))
	for _, c := range entity.Categories {
		keys = append(keys, listKey(c))
	}
	if err := helpers.RedisDel(ctx, s.Redis, keys...); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("cache invalidation failed")
	}
}

func (s *NoticeService) indexNotice(ctx context.Context, n *entity.Notice) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":       n.ID,
		"title":    n.Title,
		"body":     n.Body,
		"category": string(n.Category),
		"date":     n.Date.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: n.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("notice_id", n.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("notice_id", n.ID).Warn("es index response error")
	}
	return nil
}

func (s *NoticeService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("notice_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query on title and body.
func (s *NoticeService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "body"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
