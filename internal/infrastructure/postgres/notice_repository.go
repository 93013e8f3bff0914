package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"community-board/internal/domain/entity"
	"community-board/internal/domain/repository"
)

type NoticeRepository struct {
	pool *pgxpool.Pool
}

func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

func (r *NoticeRepository) Create(n *entity.Notice) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notices (title, body, category, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, n.Title, n.Body, string(n.Category), n.Date)

	return row.Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NoticeRepository) GetByID(id string) (*entity.Notice, error) {
	ctx := context.Background()
	n := &entity.Notice{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, body, category, date, attachment_url, created_at, updated_at
		FROM notices
		WHERE id = $1
	`, id)

	if err := row.Scan(&n.ID, &n.Title, &n.Body, &n.Category, &n.Date,
		&n.AttachmentURL, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return n, nil
}

func (r *NoticeRepository) List(category entity.Category) ([]entity.Notice, error) {
	ctx := context.Background()

	var (
		rows pgx.Rows
		err  error
	)
	if category == "" {
		rows, err = r.pool.Query(ctx, `
			SELECT id, title, body, category, date, attachment_url, created_at, updated_at
			FROM notices
		`)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, title, body, category, date, attachment_url, created_at, updated_at
			FROM notices
			WHERE category = $1
		`, string(category))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notices := make([]entity.Notice, 0)
	for rows.Next() {
		var n entity.Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Category, &n.Date,
			&n.AttachmentURL, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// Update replaces title, body, category, and date in a single statement.
// Existence is established by RowsAffected, not by a prior fetch.
func (r *NoticeRepository) Update(n *entity.Notice) error {
	ctx := context.Background()
	n.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE notices
		SET title = $1, body = $2, category = $3, date = $4, updated_at = $5
		WHERE id = $6
	`, n.Title, n.Body, string(n.Category), n.Date, n.UpdatedAt, n.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *NoticeRepository) Delete(id string) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		DELETE FROM notices
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *NoticeRepository) SetAttachmentURL(id, url string) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		UPDATE notices
		SET attachment_url = $1, updated_at = now()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.NoticeRepository = (*NoticeRepository)(nil)
