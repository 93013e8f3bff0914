package application

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-board/internal/domain/entity"
	"community-board/internal/domain/repository"
)

// memNoticeRepo is an in-memory NoticeRepository with the same NotFound
// semantics as the Postgres implementation.
type memNoticeRepo struct {
	seq     int
	notices map[string]entity.Notice
	fail    error // when set, every call fails with this error
}

func newMemNoticeRepo() *memNoticeRepo {
	return &memNoticeRepo{notices: map[string]entity.Notice{}}
}

func (m *memNoticeRepo) Create(n *entity.Notice) error {
	if m.fail != nil {
		return m.fail
	}
	m.seq++
	n.ID = "notice-" + strconv.Itoa(m.seq)
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	m.notices[n.ID] = *n
	return nil
}

func (m *memNoticeRepo) GetByID(id string) (*entity.Notice, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	n, ok := m.notices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (m *memNoticeRepo) List(category entity.Category) ([]entity.Notice, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]entity.Notice, 0)
	for _, n := range m.notices {
		if category == "" || n.Category == category {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNoticeRepo) Update(n *entity.Notice) error {
	if m.fail != nil {
		return m.fail
	}
	old, ok := m.notices[n.ID]
	if !ok {
		return repository.ErrNotFound
	}
	n.CreatedAt = old.CreatedAt
	n.UpdatedAt = time.Now()
	m.notices[n.ID] = *n
	return nil
}

func (m *memNoticeRepo) Delete(id string) error {
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.notices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.notices, id)
	return nil
}

func (m *memNoticeRepo) SetAttachmentURL(id, url string) error {
	if m.fail != nil {
		return m.fail
	}
	n, ok := m.notices[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.AttachmentURL = url
	m.notices[id] = n
	return nil
}

func newTestNoticeService(repo repository.NoticeRepository) *NoticeService {
	// redis/ES/rabbit/GCS nil: every optional concern disabled
	return &NoticeService{Repo: repo}
}

func testInput(title string, category entity.Category) NoticeInput {
	return NoticeInput{
		Title:    title,
		Body:     "body of " + title,
		Category: category,
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNoticeService_CreateThenList(t *testing.T) {
	svc := newTestNoticeService(newMemNoticeRepo())
	ctx := context.Background()

	n, err := svc.Create(ctx, testInput("Lot closed", entity.CategoryParking))
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Lot closed", all[0].Title)

	matching, err := svc.List(ctx, entity.CategoryParking)
	require.NoError(t, err)
	assert.Len(t, matching, 1)

	other, err := svc.List(ctx, entity.CategoryCovid)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestNoticeService_Create_InvalidCategory(t *testing.T) {
	repo := newMemNoticeRepo()
	svc := newTestNoticeService(repo)

	_, err := svc.Create(context.Background(), testInput("x", "garage"))
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Empty(t, repo.notices)
}

func TestNoticeService_Update_ReplacesAllFields(t *testing.T) {
	repo := newMemNoticeRepo()
	svc := newTestNoticeService(repo)
	ctx := context.Background()

	n, err := svc.Create(ctx, testInput("old title", entity.CategoryParking))
	require.NoError(t, err)

	newDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Update(ctx, n.ID, NoticeInput{
		Title:    "new title",
		Body:     "new body",
		Category: entity.CategoryMaintenance,
		Date:     newDate,
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "new body", got.Body)
	assert.Equal(t, entity.CategoryMaintenance, got.Category)
	assert.True(t, got.Date.Equal(newDate))
}

func TestNoticeService_Update_NotFoundLeavesStoreUnchanged(t *testing.T) {
	repo := newMemNoticeRepo()
	svc := newTestNoticeService(repo)
	ctx := context.Background()

	existing, err := svc.Create(ctx, testInput("keep me", entity.CategoryCovid))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "missing-id", testInput("x", ""))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, existing.ID, all[0].ID)
	assert.Equal(t, "keep me", all[0].Title)
}

func TestNoticeService_Delete(t *testing.T) {
	repo := newMemNoticeRepo()
	svc := newTestNoticeService(repo)
	ctx := context.Background()

	n, err := svc.Create(ctx, testInput("ephemeral", ""))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, n.ID))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, svc.Delete(ctx, n.ID), repository.ErrNotFound)
}

func TestNoticeService_PersistenceFaultPassesThrough(t *testing.T) {
	repo := newMemNoticeRepo()
	repo.fail = errors.New("connection reset")
	svc := newTestNoticeService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, testInput("x", ""))
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.List(ctx, "")
	assert.Error(t, err)
}

func TestNoticeService_Search_DisabledWithoutES(t *testing.T) {
	svc := newTestNoticeService(newMemNoticeRepo())

	hits, err := svc.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestNoticeService_UploadAttachment_RequiresGCS(t *testing.T) {
	svc := newTestNoticeService(newMemNoticeRepo())

	_, err := svc.UploadAttachment(context.Background(), "notice-1", nil, "a.png", "image/png")
	assert.Error(t, err)
}
