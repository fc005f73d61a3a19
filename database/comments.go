package database

import (
	"context"
	"time"

	"hive-social-network/models"
)

const commentColumns = "id, post_id, author_id, content, created_at, updated_at"

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) InsertComment(ctx context.Context, c *models.Comment) (err error) {
	defer func(start time.Time) { observe("insert", "comments", start, err) }(time.Now())

	ts := now()
	c.CreatedAt, c.UpdatedAt = ts, ts
	_, err = r.q.ExecContext(ctx,
		"INSERT INTO comments ("+commentColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, c.PostID, c.Author, c.Content, c.CreatedAt, c.UpdatedAt,
	)
	return translateError(err)
}

func (r *Repo) SaveComment(ctx context.Context, c *models.Comment) (err error) {
	defer func(start time.Time) { observe("save", "comments", start, err) }(time.Now())

	c.UpdatedAt = now()
	res, err := r.q.ExecContext(ctx,
		"UPDATE comments SET content = ?, updated_at = ? WHERE id = ?", c.Content, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteComment(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe("delete", "comments", start, err) }(time.Now())

	res, err := r.q.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CommentByID returns the comment, or ErrNotFound.
func (r *Repo) CommentByID(ctx context.Context, id string) (c *models.Comment, err error) {
	defer func(start time.Time) { observe("get_by_id", "comments", start, err) }(time.Now())

	c, err = scanComment(r.q.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = ?", id))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

// CommentsForPost returns the comments on a post, oldest first.
func (r *Repo) CommentsForPost(ctx context.Context, postID string) (comments []*models.Comment, err error) {
	defer func(start time.Time) { observe("list_post", "comments", start, err) }(time.Now())

	rows, err := r.q.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE post_id = ? ORDER BY created_at, rowid", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments = []*models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
