package api

import (
	"net/http"

	"hive-social-network/models"
	"hive-social-network/util"
)

// CreateGroupHandler creates a group owned by the acting user.
// POST /api/groups
func (h *Handler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req models.CreateGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	g, err := h.svc.CreateGroup(r.Context(), me, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

// ListMyGroupsHandler pages through the acting user's groups.
// GET /api/groups/my?page=&limit=
func (h *Handler) ListMyGroupsHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page := util.PageFromRequest(r, h.api.DefaultPageSize, h.api.MaxPageSize)
	resp, err := h.svc.ListMyGroups(r.Context(), me, page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListAllGroupsHandler pages through every group.
// GET /api/groups/all?page=&limit=
func (h *Handler) ListAllGroupsHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page := util.PageFromRequest(r, h.api.DefaultPageSize, h.api.MaxPageSize)
	resp, err := h.svc.ListAllGroups(r.Context(), me, page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /api/groups/{id}
func (h *Handler) GetGroupHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "group")
	if err != nil {
		respondError(w, r, err)
		return
	}
	view, err := h.svc.GetGroup(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// PUT /api/groups/{id}
func (h *Handler) UpdateGroupHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id", "group")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req models.UpdateGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	g, err := h.svc.UpdateGroup(r.Context(), me, id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// DELETE /api/groups/{id}
func (h *Handler) DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id", "group")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.svc.DeleteGroup(r.Context(), me, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Group deleted")
}

// RequestToJoinHandler files a join request for the acting user.
// POST /api/groups/{id}/join
func (h *Handler) RequestToJoinHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id", "group")
	if err != nil {
		respondError(w, r, err)
		return
	}
	g, err := h.svc.RequestToJoin(r.Context(), me, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// DELETE /api/groups/{id}/join
func (h *Handler) CancelJoinRequestHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathID(r, "id", "group")
	if err != nil {
		respondError(w, r, err)
		return
	}
	g, err := h.svc.CancelJoinRequest(r.Context(), me, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// RespondJoinRequestHandler lets a manager accept or reject a join request.
// The body's userId names the requester, not the caller, so callers using
// the body for identity must send the x-user-id header instead.
// PATCH /api/groups/join/respond
func (h *Handler) RespondJoinRequestHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req models.RespondJoinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if verr := validateBody(&req); verr != nil {
		respondError(w, r, verr)
		return
	}
	g, err := h.svc.RespondJoinRequest(r.Context(), me, req.GroupID, req.UserID, req.Accept)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// UpdateMemberRoleHandler promotes or demotes a member.
// PATCH /api/groups/{groupId}/members/{memberId}
func (h *Handler) UpdateMemberRoleHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	groupID, err := pathID(r, "groupId", "group")
	if err != nil {
		respondError(w, r, err)
		return
	}
	memberID, err := pathID(r, "memberId", "user")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req models.UpdateRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	view, err := h.svc.UpdateMemberRole(r.Context(), me, groupID, memberID, req.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// LeaveOrRemoveHandler takes a member out of a group: the caller leaving or a
// manager removing someone.
// DELETE /api/groups/{groupId}/members/{memberId}
func (h *Handler) LeaveOrRemoveHandler(w http.ResponseWriter, r *http.Request) {
	me, err := actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	groupID, err := pathID(r, "groupId", "group")
	if err != nil {
		respondError(w, r, err)
		return
	}
	memberID, err := pathID(r, "memberId", "user")
	if err != nil {
		respondError(w, r, err)
		return
	}
	g, deleted, err := h.svc.LeaveOrRemove(r.Context(), me, groupID, memberID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if deleted {
		respondMessage(w, http.StatusOK, "Group deleted")
		return
	}
	respondJSON(w, http.StatusOK, g)
}
