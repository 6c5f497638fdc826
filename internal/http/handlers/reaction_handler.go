package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/reactions-backend/internal/dto"
	"github.com/ignatzorin/reactions-backend/internal/http/handlers/common"
	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
	"github.com/ignatzorin/reactions-backend/internal/service"
	"github.com/ignatzorin/reactions-backend/internal/validation"
)

// EntityResolver находит объект по полиморфной ссылке (реализуется registry.Registry).
type EntityResolver interface {
	Resolve(ctx context.Context, ref models.Ref) (models.Reactable, error)
}

// ReactionHandler обслуживает /api/:reactable/:id/reactions.
type ReactionHandler struct {
	reactions *service.ReactionService
	entities  EntityResolver
}

func NewReactionHandler(reactions *service.ReactionService, entities EntityResolver) *ReactionHandler {
	return &ReactionHandler{reactions: reactions, entities: entities}
}

// List обрабатывает GET /reactions.
func (h *ReactionHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	reactions, err := scope.All(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.ReactionListResponse{Reactions: reactions})
}

// React обрабатывает POST /reactions: 201 для новой реакции, 200 если такая уже была.
func (h *ReactionHandler) React(c *gin.Context) {
	scope, userID, reactionType, ok := h.mutation(c)
	if !ok {
		return
	}

	reaction, created, err := scope.React(c.Request.Context(), reactionType, userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	common.RespondJSON(c, status, reaction)
}

// Toggle обрабатывает POST /reactions/toggle.
func (h *ReactionHandler) Toggle(c *gin.Context) {
	scope, userID, reactionType, ok := h.mutation(c)
	if !ok {
		return
	}

	reaction, err := scope.Toggle(c.Request.Context(), reactionType, userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.ToggleResponse{
		Reaction: reaction,
		Removed:  reaction == nil,
	})
}

// Remove обрабатывает DELETE /reactions[?user_id=].
func (h *ReactionHandler) Remove(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	userID, ok := h.queryUser(c)
	if !ok {
		return
	}

	if err := scope.Remove(c.Request.Context(), userID); err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "реакции удалены", nil)
}

// Summary обрабатывает GET /reactions/summary.
func (h *ReactionHandler) Summary(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	summary, err := scope.Summary(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}

	var total int64
	for _, n := range summary {
		total += n
	}
	common.RespondJSON(c, http.StatusOK, dto.SummaryResponse{Summary: summary, Total: total})
}

// Count обрабатывает GET /reactions/count?type=.
func (h *ReactionHandler) Count(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	reactionType, present := c.GetQuery("type")
	if !present {
		common.Fail(c, apperror.New(apperror.ErrCodeBadRequest, "параметр type отсутствует"))
		return
	}

	count, err := scope.CountByType(c.Request.Context(), reactionType)
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.CountResponse{Type: reactionType, Count: count})
}

// Users обрабатывает GET /reactions/users.
func (h *ReactionHandler) Users(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	users, err := scope.Users(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.ReactingUsersResponse{Users: users})
}

// Mine обрабатывает GET /reactions/me[?user_id=].
func (h *ReactionHandler) Mine(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	userID, ok := h.queryUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	reacted, err := scope.IsReactedBy(ctx, userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	resp := dto.MyReactionResponse{IsReacted: reacted}
	if reacted {
		if resp.Reaction, err = scope.ReactedBy(ctx, userID); err != nil {
			common.Fail(c, err)
			return
		}
	}

	common.RespondJSON(c, http.StatusOK, resp)
}

// scope находит объект из пути и возвращает операции с его реакциями.
func (h *ReactionHandler) scope(c *gin.Context) (*service.Reactions, bool) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return nil, false
	}

	entity, err := h.entities.Resolve(c.Request.Context(), models.Ref{Type: c.Param("reactable"), ID: id})
	if err != nil {
		common.Fail(c, err)
		return nil, false
	}

	return h.reactions.For(entity), true
}

// mutation разбирает тело ReactRequest, пользователя и объект для React и Toggle.
func (h *ReactionHandler) mutation(c *gin.Context) (*service.Reactions, int64, string, bool) {
	var req dto.ReactRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return nil, 0, "", false
	}
	if err := validation.Struct(req); err != nil {
		common.Fail(c, err)
		return nil, 0, "", false
	}

	userID, err := common.ResolveUser(c, req.UserID)
	if err != nil {
		common.Fail(c, err)
		return nil, 0, "", false
	}

	scope, ok := h.scope(c)
	if !ok {
		return nil, 0, "", false
	}
	return scope, userID, *req.Type, true
}

func (h *ReactionHandler) queryUser(c *gin.Context) (int64, bool) {
	explicit, err := common.OptionalInt64Query(c, "user_id")
	if err != nil {
		common.Fail(c, err)
		return 0, false
	}

	userID, err := common.ResolveUser(c, explicit)
	if err != nil {
		common.Fail(c, err)
		return 0, false
	}
	return userID, true
}
