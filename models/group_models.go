package models

import (
	"time"

	"github.com/goccy/go-json"
)

const DefaultGroupImage = "https://cdn.pixabay.com/photo/2017/11/10/05/46/group-2935521_1280.png"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Group is the stored group document. Managers is never empty and is a
// subset of Members.
type Group struct {
	ID                  string    `json:"_id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Image               string    `json:"image"`
	Creator             string    `json:"creator"`
	Managers            IDList    `json:"managers"`
	Members             IDList    `json:"members"`
	PendingJoinRequests IDList    `json:"pendingJoinRequests"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (g *Group) IsManager(userID string) bool { return g.Managers.Contains(userID) }
func (g *Group) IsMember(userID string) bool  { return g.Members.Contains(userID) }
func (g *Group) IsPending(userID string) bool { return g.PendingJoinRequests.Contains(userID) }

// MarshalJSON adds the derived membersCount.
func (g Group) MarshalJSON() ([]byte, error) {
	type group Group
	return json.Marshal(struct {
		group
		MembersCount int `json:"membersCount"`
	}{group(g), len(g.Members)})
}

// GroupView is a group with every user reference populated.
type GroupView struct {
	ID                  string        `json:"_id"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Image               string        `json:"image"`
	Creator             *UserSummary  `json:"creator"`
	Managers            []UserSummary `json:"managers"`
	Members             []UserSummary `json:"members"`
	PendingJoinRequests []UserSummary `json:"pendingJoinRequests"`
	MembersCount        int           `json:"membersCount"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// MyGroupItem is a row of GET /api/groups/my: the group with its creator
// populated.
type MyGroupItem struct {
	ID                  string       `json:"_id"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	Image               string       `json:"image"`
	Creator             *UserSummary `json:"creator"`
	Managers            IDList       `json:"managers"`
	Members             IDList       `json:"members"`
	PendingJoinRequests IDList       `json:"pendingJoinRequests"`
	MembersCount        int          `json:"membersCount"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// GroupListItem is a group seen from one user: roster lists are replaced by
// that user's relationship flags. Used by /groups/all and search.
type GroupListItem struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	MembersCount int    `json:"membersCount"`
	IsMember     bool   `json:"isMember"`
	IsPending    bool   `json:"isPending"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"required,notblank,max=500"`
	Image       string `json:"image"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=100"`
	Description *string `json:"description" validate:"omitnil,notblank,max=500"`
	Image       *string `json:"image"`
}

type RespondJoinRequest struct {
	GroupID string `json:"groupId" validate:"required,uuid"`
	UserID  string `json:"userId" validate:"required,uuid"`
	Accept  bool   `json:"accept"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
