package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hive-social-network/models"
)

const (
	listFriends         = "friends"
	listPendingSent     = "pending_sent"
	listPendingReceived = "pending_received"
)

const userColumns = "id, identity_token, username, email, phone, birth_date, profile_image, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u         models.User
		phone     sql.NullString
		birthDate sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.IdentityToken, &u.Username, &u.Email, &phone, &birthDate,
		&u.ProfileImage, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if birthDate.Valid {
		t := birthDate.Time
		u.BirthDate = &t
	}
	u.Friends = models.IDList{}
	u.PendingSentRequests = models.IDList{}
	u.PendingReceivedRequests = models.IDList{}
	return &u, nil
}

// InsertUser stores a new user document with its id sets.
func (r *Repo) InsertUser(ctx context.Context, u *models.User) (err error) {
	defer func(start time.Time) { observe("insert", "users", start, err) }(time.Now())

	ts := now()
	u.CreatedAt, u.UpdatedAt = ts, ts
	_, err = r.q.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		u.ID, u.IdentityToken, u.Username, u.Email, nullString(u.Phone), nullTime(u.BirthDate),
		u.ProfileImage, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	return r.saveUserLinks(ctx, u)
}

// SaveUser writes every field and id set of u and bumps UpdatedAt.
func (r *Repo) SaveUser(ctx context.Context, u *models.User) (err error) {
	defer func(start time.Time) { observe("save", "users", start, err) }(time.Now())

	u.UpdatedAt = now()
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, phone = ?, birth_date = ?, profile_image = ?, updated_at = ?
		 WHERE id = ?`,
		u.Username, u.Email, nullString(u.Phone), nullTime(u.BirthDate), u.ProfileImage, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err = r.q.ExecContext(ctx, "DELETE FROM user_links WHERE user_id = ?", u.ID); err != nil {
		return err
	}
	return r.saveUserLinks(ctx, u)
}

func (r *Repo) saveUserLinks(ctx context.Context, u *models.User) error {
	lists := []struct {
		name string
		ids  models.IDList
	}{
		{listFriends, u.Friends},
		{listPendingSent, u.PendingSentRequests},
		{listPendingReceived, u.PendingReceivedRequests},
	}
	for _, l := range lists {
		for pos, other := range l.ids {
			if _, err := r.q.ExecContext(ctx,
				"INSERT INTO user_links (user_id, list, other_id, position) VALUES (?, ?, ?, ?)",
				u.ID, l.name, other, pos,
			); err != nil {
				return fmt.Errorf("failed to save %s of user %s: %w", l.name, u.ID, err)
			}
		}
	}
	return nil
}

func (r *Repo) loadUserLinks(ctx context.Context, u *models.User) error {
	rows, err := r.q.QueryContext(ctx,
		"SELECT list, other_id FROM user_links WHERE user_id = ? ORDER BY list, position", u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var list, other string
		if err := rows.Scan(&list, &other); err != nil {
			return err
		}
		switch list {
		case listFriends:
			u.Friends = append(u.Friends, other)
		case listPendingSent:
			u.PendingSentRequests = append(u.PendingSentRequests, other)
		case listPendingReceived:
			u.PendingReceivedRequests = append(u.PendingReceivedRequests, other)
		}
	}
	return rows.Err()
}

func (r *Repo) userWhere(ctx context.Context, op, where string, arg interface{}) (u *models.User, err error) {
	defer func(start time.Time) { observe(op, "users", start, err) }(time.Now())

	u, err = scanUser(r.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg))
	if err != nil {
		return nil, translateError(err)
	}
	if err = r.loadUserLinks(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UserByID returns the user document, or ErrNotFound.
func (r *Repo) UserByID(ctx context.Context, id string) (*models.User, error) {
	return r.userWhere(ctx, "get_by_id", "id = ?", id)
}

// UserByIdentityToken resolves an external identity token.
func (r *Repo) UserByIdentityToken(ctx context.Context, token string) (*models.User, error) {
	return r.userWhere(ctx, "get_by_token", "identity_token = ?", token)
}

// PhoneTakenByOther reports whether another user already uses phone.
func (r *Repo) PhoneTakenByOther(ctx context.Context, phone, userID string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE phone = ? AND id <> ?)", phone, userID).Scan(&exists)
	return exists, err
}

// FindUsers returns users whose username or email contains term, ignoring
// ASCII case.
func (r *Repo) FindUsers(ctx context.Context, term string) (users []*models.User, err error) {
	defer func(start time.Time) { observe("find", "users", start, err) }(time.Now())

	pattern := likePattern(term)
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+userColumns+` FROM users
		 WHERE username LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\'
		 ORDER BY created_at, rowid`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	users, err = collectUsers(rows)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if err = r.loadUserLinks(ctx, u); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// SearchUsernames pages through users whose username contains term,
// excluding one user, and returns the page with the total match count.
func (r *Repo) SearchUsernames(ctx context.Context, term, excludeID string, offset, limit int) (users []models.UserSummary, total int, err error) {
	defer func(start time.Time) { observe("search", "users", start, err) }(time.Now())

	pattern := likePattern(term)
	if err = r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username LIKE ? ESCAPE '\' AND id <> ?`,
		pattern, excludeID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT id, username, profile_image FROM users
		 WHERE username LIKE ? ESCAPE '\' AND id <> ?
		 ORDER BY created_at, rowid LIMIT ? OFFSET ?`,
		pattern, excludeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users = []models.UserSummary{}
	for rows.Next() {
		var s models.UserSummary
		if err = rows.Scan(&s.ID, &s.Username, &s.ProfileImage); err != nil {
			return nil, 0, err
		}
		users = append(users, s)
	}
	return users, total, rows.Err()
}

// UserSummaries returns summaries for ids in the order given. Ids with no
// matching user are skipped.
func (r *Repo) UserSummaries(ctx context.Context, ids []string) (summaries []models.UserSummary, err error) {
	summaries = []models.UserSummary{}
	if len(ids) == 0 {
		return summaries, nil
	}
	defer func(start time.Time) { observe("summaries", "users", start, err) }(time.Now())

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, username, profile_image FROM users WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]models.UserSummary, len(ids))
	for rows.Next() {
		var s models.UserSummary
		if err = rows.Scan(&s.ID, &s.Username, &s.ProfileImage); err != nil {
			return nil, err
		}
		byID[s.ID] = s
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			summaries = append(summaries, s)
		}
	}
	return summaries, nil
}

// UserSummary returns the summary of one user, or nil when it is gone.
func (r *Repo) UserSummary(ctx context.Context, id string) (*models.UserSummary, error) {
	list, err := r.UserSummaries(ctx, []string{id})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

func collectUsers(rows *sql.Rows) ([]*models.User, error) {
	defer rows.Close()
	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// likePattern builds a LIKE substring pattern with the wildcards in term
// escaped.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
