package service

import (
	"context"

	"github.com/ignatzorin/reactions-backend/internal/models"
)

// Reactions - операции ReactionService, привязанные к одному объекту.
type Reactions struct {
	svc    *ReactionService
	entity models.Reactable
}

// For возвращает операции с реакциями для конкретного объекта.
func (s *ReactionService) For(entity models.Reactable) *Reactions {
	return &Reactions{svc: s, entity: entity}
}

func (r *Reactions) Entity() models.Reactable { return r.entity }

func (r *Reactions) React(ctx context.Context, reactionType string, userID int64) (*models.Reaction, bool, error) {
	return r.svc.React(ctx, r.entity, reactionType, userID)
}

func (r *Reactions) Remove(ctx context.Context, userID int64) error {
	return r.svc.RemoveReaction(ctx, r.entity, userID)
}

func (r *Reactions) Toggle(ctx context.Context, reactionType string, userID int64) (*models.Reaction, error) {
	return r.svc.ToggleReaction(ctx, r.entity, reactionType, userID)
}

func (r *Reactions) IsReactedBy(ctx context.Context, userID int64) (bool, error) {
	return r.svc.IsReactedBy(ctx, r.entity, userID)
}

func (r *Reactions) ReactedBy(ctx context.Context, userID int64) (*models.Reaction, error) {
	return r.svc.ReactedBy(ctx, r.entity, userID)
}

func (r *Reactions) All(ctx context.Context) ([]models.Reaction, error) {
	return r.svc.AllReactions(ctx, r.entity)
}

func (r *Reactions) Users(ctx context.Context) ([]models.User, error) {
	return r.svc.ReactingUsers(ctx, r.entity)
}

func (r *Reactions) CountByType(ctx context.Context, reactionType string) (int64, error) {
	return r.svc.ReactionCountByType(ctx, r.entity, reactionType)
}

func (r *Reactions) Summary(ctx context.Context) (map[string]int64, error) {
	return r.svc.ReactionSummary(ctx, r.entity)
}
