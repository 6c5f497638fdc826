package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/reactions-backend/internal/logger"
	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
	"github.com/ignatzorin/reactions-backend/internal/validation"
)

// ReactionStore - хранилище реакций (реализуется repository.ReactionRepository).
type ReactionStore interface {
	Create(ctx context.Context, ref models.Ref, userID int64, reactionType string) (*models.Reaction, bool, error)
	Toggle(ctx context.Context, ref models.Ref, userID int64, reactionType string) (*models.Reaction, error)
	DeleteByUser(ctx context.Context, ref models.Ref, userID int64) (int64, error)
	FirstByUser(ctx context.Context, ref models.Ref, userID int64) (*models.Reaction, error)
	ExistsByUser(ctx context.Context, ref models.Ref, userID int64) (bool, error)
	ListByReactable(ctx context.Context, ref models.Ref) ([]models.Reaction, error)
	ListReactorIDs(ctx context.Context, ref models.Ref) ([]int64, error)
	CountByType(ctx context.Context, ref models.Ref, reactionType string) (int64, error)
	Summary(ctx context.Context, ref models.Ref) (map[string]int64, error)
}

// UserResolver превращает ID пользователей в записи (реализуется registry.Registry).
type UserResolver interface {
	UsersByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

// ReactionService реализует операции с реакциями.
//
// Пользователь передаётся явно: userID == 0 означает "пользователь не определён",
// и операции, которым он нужен, возвращают apperror.ErrUnresolvedUser.
// Подставлять текущего пользователя из запроса - задача вызывающего кода.
type ReactionService struct {
	store ReactionStore
	users UserResolver
}

func NewReactionService(store ReactionStore, users UserResolver) *ReactionService {
	return &ReactionService{store: store, users: users}
}

// React ставит реакцию. Повторный вызов с тем же типом возвращает существующую запись,
// и тогда created == false.
func (s *ReactionService) React(ctx context.Context, entity models.Reactable, reactionType string, userID int64) (reaction *models.Reaction, created bool, err error) {
	if err := requireUser(userID); err != nil {
		return nil, false, err
	}
	if err := validation.ReactionType(reactionType); err != nil {
		return nil, false, err
	}

	ref := models.RefOf(entity)
	reaction, created, err = s.store.Create(ctx, ref, userID, reactionType)
	if err != nil {
		return nil, false, err
	}

	if created {
		logDebug("reaction added", ref, userID, reactionType)
	}
	return reaction, created, nil
}

// RemoveReaction снимает все реакции пользователя с объекта. Если реакций нет, ничего не делает.
func (s *ReactionService) RemoveReaction(ctx context.Context, entity models.Reactable, userID int64) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	ref := models.RefOf(entity)
	n, err := s.store.DeleteByUser(ctx, ref, userID)
	if err != nil {
		return err
	}

	if n > 0 {
		logDebug("reactions removed", ref, userID, "")
	}
	return nil
}

// ToggleReaction оставляет пользователю не больше одной реакции на объекте.
// Новый тип заменяет старый; тот же тип снимает реакцию, и тогда возвращается nil.
func (s *ReactionService) ToggleReaction(ctx context.Context, entity models.Reactable, reactionType string, userID int64) (*models.Reaction, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := validation.ReactionType(reactionType); err != nil {
		return nil, err
	}

	ref := models.RefOf(entity)
	reaction, err := s.store.Toggle(ctx, ref, userID, reactionType)
	if err != nil {
		return nil, err
	}

	if reaction == nil {
		logDebug("reaction toggled off", ref, userID, reactionType)
	} else {
		logDebug("reaction toggled on", ref, userID, reactionType)
	}
	return reaction, nil
}

func (s *ReactionService) IsReactedBy(ctx context.Context, entity models.Reactable, userID int64) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	return s.store.ExistsByUser(ctx, models.RefOf(entity), userID)
}

// ReactedBy возвращает реакцию пользователя или nil.
// Если реакций несколько разных типов, какая из них вернётся, не определено.
func (s *ReactionService) ReactedBy(ctx context.Context, entity models.Reactable, userID int64) (*models.Reaction, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.store.FirstByUser(ctx, models.RefOf(entity), userID)
}

// AllReactions возвращает все реакции на объект в порядке добавления.
func (s *ReactionService) AllReactions(ctx context.Context, entity models.Reactable) ([]models.Reaction, error) {
	return s.store.ListByReactable(ctx, models.RefOf(entity))
}

// ReactingUsers возвращает различных пользователей в порядке их первой реакции.
func (s *ReactionService) ReactingUsers(ctx context.Context, entity models.Reactable) ([]models.User, error) {
	ids, err := s.store.ListReactorIDs(ctx, models.RefOf(entity))
	if err != nil {
		return nil, err
	}
	return s.users.UsersByIDs(ctx, ids)
}

// ReactionCountByType считает реакции заданного типа; для любого типа без реакций это 0.
func (s *ReactionService) ReactionCountByType(ctx context.Context, entity models.Reactable, reactionType string) (int64, error) {
	return s.store.CountByType(ctx, models.RefOf(entity), reactionType)
}

// ReactionSummary возвращает количество реакций по типам; типов без реакций в ответе нет.
func (s *ReactionService) ReactionSummary(ctx context.Context, entity models.Reactable) (map[string]int64, error) {
	return s.store.Summary(ctx, models.RefOf(entity))
}

func requireUser(userID int64) error {
	if userID <= 0 {
		return apperror.ErrUnresolvedUser
	}
	return nil
}

func logDebug(msg string, ref models.Ref, userID int64, reactionType string) {
	if logger.Log == nil {
		return
	}
	fields := logrus.Fields{
		"reactable": ref.String(),
		"user_id":   userID,
	}
	if reactionType != "" {
		fields["type"] = reactionType
	}
	logger.Log.WithFields(fields).Debug(msg)
}
