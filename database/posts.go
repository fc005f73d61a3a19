package database

import (
	"context"
	"database/sql"
	"time"

	"hive-social-network/models"
)

const postColumns = "id, content, author_id, group_id, created_at, updated_at"

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		p       models.Post
		groupID sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Content, &p.Author, &groupID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if groupID.Valid {
		p.GroupID = &groupID.String
	}
	p.Likes = models.IDList{}
	return &p, nil
}

func (r *Repo) InsertPost(ctx context.Context, p *models.Post) (err error) {
	defer func(start time.Time) { observe("insert", "posts", start, err) }(time.Now())

	ts := now()
	p.CreatedAt, p.UpdatedAt = ts, ts
	if _, err = r.q.ExecContext(ctx,
		"INSERT INTO posts ("+postColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		p.ID, p.Content, p.Author, nullString(p.GroupID), p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return translateError(err)
	}
	return r.saveLikes(ctx, p)
}

// SavePost writes the content and likes of p. Author and group never change.
// When touch is false UpdatedAt is kept, so a like does not count as an edit.
func (r *Repo) SavePost(ctx context.Context, p *models.Post, touch bool) (err error) {
	defer func(start time.Time) { observe("save", "posts", start, err) }(time.Now())

	if touch {
		p.UpdatedAt = now()
	}
	res, err := r.q.ExecContext(ctx,
		"UPDATE posts SET content = ?, updated_at = ? WHERE id = ?", p.Content, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err = r.q.ExecContext(ctx, "DELETE FROM post_likes WHERE post_id = ?", p.ID); err != nil {
		return err
	}
	return r.saveLikes(ctx, p)
}

func (r *Repo) saveLikes(ctx context.Context, p *models.Post) error {
	for pos, userID := range p.Likes {
		if _, err := r.q.ExecContext(ctx,
			"INSERT INTO post_likes (post_id, user_id, position) VALUES (?, ?, ?)", p.ID, userID, pos,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) loadLikes(ctx context.Context, p *models.Post) error {
	rows, err := r.q.QueryContext(ctx, "SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY position", p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		p.Likes = append(p.Likes, userID)
	}
	return rows.Err()
}

// PostByID returns the post document, or ErrNotFound.
func (r *Repo) PostByID(ctx context.Context, id string) (p *models.Post, err error) {
	defer func(start time.Time) { observe("get_by_id", "posts", start, err) }(time.Now())

	p, err = scanPost(r.q.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = ?", id))
	if err != nil {
		return nil, translateError(err)
	}
	if err = r.loadLikes(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePost removes the post, its likes and every comment on it. Run it in
// a transaction so the cascade is all or nothing.
func (r *Repo) DeletePost(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe("delete", "posts", start, err) }(time.Now())

	if _, err = r.q.ExecContext(ctx, "DELETE FROM comments WHERE post_id = ?", id); err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// feedFilter matches the user's own posts, friends' posts and posts in
// groups the user belongs to.
const feedFilter = `author_id = ?
	OR author_id IN (SELECT other_id FROM user_links WHERE user_id = ? AND list = 'friends')
	OR group_id IN (SELECT group_id FROM group_roster WHERE user_id = ? AND list = 'members')`

// FeedPosts pages through the feed of userID, newest first.
func (r *Repo) FeedPosts(ctx context.Context, userID string, offset, limit int) (posts []*models.Post, total int, err error) {
	defer func(start time.Time) { observe("feed", "posts", start, err) }(time.Now())

	if err = r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts WHERE "+feedFilter, userID, userID, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	posts, err = r.queryPosts(ctx,
		"SELECT "+postColumns+" FROM posts WHERE "+feedFilter+
			" ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?",
		userID, userID, userID, limit, offset)
	return posts, total, err
}

// GroupPosts pages through the posts of one group, newest first.
func (r *Repo) GroupPosts(ctx context.Context, groupID string, offset, limit int) (posts []*models.Post, total int, err error) {
	defer func(start time.Time) { observe("list_group", "posts", start, err) }(time.Now())

	if err = r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts WHERE group_id = ?", groupID).Scan(&total); err != nil {
		return nil, 0, err
	}
	posts, err = r.queryPosts(ctx,
		"SELECT "+postColumns+" FROM posts WHERE group_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?",
		groupID, limit, offset)
	return posts, total, err
}

// PostsByAuthor returns every post by authorID, newest first.
func (r *Repo) PostsByAuthor(ctx context.Context, authorID string) (posts []*models.Post, err error) {
	defer func(start time.Time) { observe("list_author", "posts", start, err) }(time.Now())

	return r.queryPosts(ctx,
		"SELECT "+postColumns+" FROM posts WHERE author_id = ? ORDER BY created_at DESC, rowid DESC", authorID)
}

func (r *Repo) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*models.Post, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	posts := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, p := range posts {
		if err := r.loadLikes(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}
