package database

import (
	"context"
	"fmt"
	"time"

	"hive-social-network/models"
)

const (
	rosterManagers = "managers"
	rosterMembers  = "members"
	rosterPending  = "pending"
)

const groupColumns = "id, name, description, image, creator_id, created_at, updated_at"

func scanGroup(row rowScanner) (*models.Group, error) {
	var g models.Group
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Image, &g.Creator, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.Managers = models.IDList{}
	g.Members = models.IDList{}
	g.PendingJoinRequests = models.IDList{}
	return &g, nil
}

// InsertGroup stores a new group document with its roster.
func (r *Repo) InsertGroup(ctx context.Context, g *models.Group) (err error) {
	defer func(start time.Time) { observe("insert", "groups", start, err) }(time.Now())

	ts := now()
	g.CreatedAt, g.UpdatedAt = ts, ts
	if _, err = r.q.ExecContext(ctx,
		"INSERT INTO groups ("+groupColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		g.ID, g.Name, g.Description, g.Image, g.Creator, g.CreatedAt, g.UpdatedAt,
	); err != nil {
		return translateError(err)
	}
	return r.saveRoster(ctx, g)
}

// SaveGroup writes every field and roster list of g and bumps UpdatedAt.
// The creator is immutable and never written.
func (r *Repo) SaveGroup(ctx context.Context, g *models.Group) (err error) {
	defer func(start time.Time) { observe("save", "groups", start, err) }(time.Now())

	g.UpdatedAt = now()
	res, err := r.q.ExecContext(ctx,
		"UPDATE groups SET name = ?, description = ?, image = ?, updated_at = ? WHERE id = ?",
		g.Name, g.Description, g.Image, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err = r.q.ExecContext(ctx, "DELETE FROM group_roster WHERE group_id = ?", g.ID); err != nil {
		return err
	}
	return r.saveRoster(ctx, g)
}

// DeleteGroup removes the group and its roster. Posts that reference the
// group are left in place.
func (r *Repo) DeleteGroup(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe("delete", "groups", start, err) }(time.Now())

	res, err := r.q.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) saveRoster(ctx context.Context, g *models.Group) error {
	lists := []struct {
		name string
		ids  models.IDList
	}{
		{rosterManagers, g.Managers},
		{rosterMembers, g.Members},
		{rosterPending, g.PendingJoinRequests},
	}
	for _, l := range lists {
		for pos, userID := range l.ids {
			if _, err := r.q.ExecContext(ctx,
				"INSERT INTO group_roster (group_id, list, user_id, position) VALUES (?, ?, ?, ?)",
				g.ID, l.name, userID, pos,
			); err != nil {
				return fmt.Errorf("failed to save %s of group %s: %w", l.name, g.ID, err)
			}
		}
	}
	return nil
}

func (r *Repo) loadRoster(ctx context.Context, g *models.Group) error {
	rows, err := r.q.QueryContext(ctx,
		"SELECT list, user_id FROM group_roster WHERE group_id = ? ORDER BY list, position", g.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var list, userID string
		if err := rows.Scan(&list, &userID); err != nil {
			return err
		}
		switch list {
		case rosterManagers:
			g.Managers = append(g.Managers, userID)
		case rosterMembers:
			g.Members = append(g.Members, userID)
		case rosterPending:
			g.PendingJoinRequests = append(g.PendingJoinRequests, userID)
		}
	}
	return rows.Err()
}

// GroupByID returns the group document, or ErrNotFound.
func (r *Repo) GroupByID(ctx context.Context, id string) (g *models.Group, err error) {
	defer func(start time.Time) { observe("get_by_id", "groups", start, err) }(time.Now())

	g, err = scanGroup(r.q.QueryRowContext(ctx, "SELECT "+groupColumns+" FROM groups WHERE id = ?", id))
	if err != nil {
		return nil, translateError(err)
	}
	if err = r.loadRoster(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// GroupNameExists reports whether a group already has exactly this name.
func (r *Repo) GroupNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM groups WHERE name = ?)", name).Scan(&exists)
	return exists, err
}

// GroupIDsWithMember lists the groups userID belongs to.
func (r *Repo) GroupIDsWithMember(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT group_id FROM group_roster WHERE user_id = ? AND list = ?", userID, rosterMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GroupsWithMember pages through the groups userID belongs to, newest first.
func (r *Repo) GroupsWithMember(ctx context.Context, userID string, offset, limit int) (groups []*models.Group, total int, err error) {
	defer func(start time.Time) { observe("list_member", "groups", start, err) }(time.Now())

	if err = r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM group_roster WHERE user_id = ? AND list = ?", userID, rosterMembers,
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	groups, err = r.queryGroups(ctx,
		`SELECT g.id, g.name, g.description, g.image, g.creator_id, g.created_at, g.updated_at
		 FROM groups g JOIN group_roster gr ON gr.group_id = g.id
		 WHERE gr.user_id = ? AND gr.list = ?
		 ORDER BY g.created_at DESC, g.rowid DESC LIMIT ? OFFSET ?`,
		userID, rosterMembers, limit, offset)
	return groups, total, err
}

// ListGroups pages through all groups ordered by name.
func (r *Repo) ListGroups(ctx context.Context, offset, limit int) (groups []*models.Group, total int, err error) {
	defer func(start time.Time) { observe("list", "groups", start, err) }(time.Now())

	if err = r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM groups").Scan(&total); err != nil {
		return nil, 0, err
	}
	groups, err = r.queryGroups(ctx,
		"SELECT "+groupColumns+" FROM groups ORDER BY name LIMIT ? OFFSET ?", limit, offset)
	return groups, total, err
}

// SearchGroupNames pages through groups whose name contains term.
func (r *Repo) SearchGroupNames(ctx context.Context, term string, offset, limit int) (groups []*models.Group, total int, err error) {
	defer func(start time.Time) { observe("search", "groups", start, err) }(time.Now())

	pattern := likePattern(term)
	if err = r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM groups WHERE name LIKE ? ESCAPE '\'`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	groups, err = r.queryGroups(ctx,
		"SELECT "+groupColumns+` FROM groups WHERE name LIKE ? ESCAPE '\'
		 ORDER BY created_at, rowid LIMIT ? OFFSET ?`, pattern, limit, offset)
	return groups, total, err
}

// GroupRefs maps group ids to their name and image. Missing groups are
// absent from the map.
func (r *Repo) GroupRefs(ctx context.Context, ids []string) (map[string]models.PostGroupRef, error) {
	refs := make(map[string]models.PostGroupRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, name, image FROM groups WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ref models.PostGroupRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Image); err != nil {
			return nil, err
		}
		refs[ref.ID] = ref
	}
	return refs, rows.Err()
}

func (r *Repo) queryGroups(ctx context.Context, query string, args ...interface{}) ([]*models.Group, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	groups := []*models.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, g := range groups {
		if err := r.loadRoster(ctx, g); err != nil {
			return nil, err
		}
	}
	return groups, nil
}
