package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/reactions-backend/internal/db"
	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/repository/common"
)

// ReactionRepository хранит реакции в таблице reactions.
// Запросы пишутся с "?" и проходят через Rebind, поэтому работают и на PostgreSQL, и на SQLite.
type ReactionRepository struct {
	db *sqlx.DB
}

func NewReactionRepository(db *sqlx.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Create добавляет реакцию, если такой ещё нет, и сообщает, была ли запись создана.
// При гонке проигравший INSERT получает нарушение react_user_unique и возвращает существующую запись.
func (r *ReactionRepository) Create(ctx context.Context, ref models.Ref, userID int64, reactionType string) (*models.Reaction, bool, error) {
	reaction, err := insertReaction(ctx, r.db, ref, userID, reactionType)
	if err == nil {
		return reaction, true, nil
	}
	if !db.IsUniqueViolation(err) {
		return nil, false, fmt.Errorf("reaction repository: create: %w", err)
	}

	var existing models.Reaction
	query := r.db.Rebind(`
		SELECT * FROM reactions
		WHERE reactable_type = ? AND reactable_id = ? AND user_id = ? AND type = ?
	`)
	if err := r.db.GetContext(ctx, &existing, query, ref.Type, ref.ID, userID, reactionType); err != nil {
		return nil, false, fmt.Errorf("reaction repository: load existing: %w", err)
	}
	return &existing, false, nil
}

// Toggle удаляет все реакции пользователя на объекте и, если среди них не было
// reactionType, ставит новую. Возвращает nil, когда реакция снята.
func (r *ReactionRepository) Toggle(ctx context.Context, ref models.Ref, userID int64, reactionType string) (*models.Reaction, error) {
	var result *models.Reaction

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := lockReactor(ctx, tx, ref, userID); err != nil {
			return err
		}

		var existing []string
		query := tx.Rebind(`SELECT type FROM reactions WHERE reactable_type = ? AND reactable_id = ? AND user_id = ?`)
		if err := tx.SelectContext(ctx, &existing, query, ref.Type, ref.ID, userID); err != nil {
			return err
		}

		if len(existing) > 0 {
			if _, err := deleteByUser(ctx, tx, ref, userID); err != nil {
				return err
			}
		}

		if slices.Contains(existing, reactionType) {
			return nil
		}

		reaction, err := insertReaction(ctx, tx, ref, userID, reactionType)
		if err != nil {
			return err
		}
		result = reaction
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reaction repository: toggle: %w", err)
	}

	return result, nil
}

// DeleteByUser удаляет все реакции пользователя на объекте и возвращает их количество.
func (r *ReactionRepository) DeleteByUser(ctx context.Context, ref models.Ref, userID int64) (int64, error) {
	n, err := deleteByUser(ctx, r.db, ref, userID)
	if err != nil {
		return 0, fmt.Errorf("reaction repository: delete by user: %w", err)
	}
	return n, nil
}

// FirstByUser возвращает любую реакцию пользователя на объекте или nil.
// Порядок при нескольких типах не определён.
func (r *ReactionRepository) FirstByUser(ctx context.Context, ref models.Ref, userID int64) (*models.Reaction, error) {
	var reaction models.Reaction
	query := r.db.Rebind(`
		SELECT * FROM reactions
		WHERE reactable_type = ? AND reactable_id = ? AND user_id = ?
		LIMIT 1
	`)
	if err := r.db.GetContext(ctx, &reaction, query, ref.Type, ref.ID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reaction repository: first by user: %w", err)
	}
	return &reaction, nil
}

func (r *ReactionRepository) ExistsByUser(ctx context.Context, ref models.Ref, userID int64) (bool, error) {
	var exists bool
	query := r.db.Rebind(`
		SELECT EXISTS(SELECT 1 FROM reactions WHERE reactable_type = ? AND reactable_id = ? AND user_id = ?)
	`)
	if err := r.db.GetContext(ctx, &exists, query, ref.Type, ref.ID, userID); err != nil {
		return false, fmt.Errorf("reaction repository: exists: %w", err)
	}
	return exists, nil
}

// ListByReactable возвращает все реакции на объект в порядке добавления.
func (r *ReactionRepository) ListByReactable(ctx context.Context, ref models.Ref) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	query := r.db.Rebind(`SELECT * FROM reactions WHERE reactable_type = ? AND reactable_id = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &reactions, query, ref.Type, ref.ID); err != nil {
		return nil, fmt.Errorf("reaction repository: list: %w", err)
	}
	return reactions, nil
}

// ListReactorIDs возвращает различных пользователей в порядке их первой реакции.
func (r *ReactionRepository) ListReactorIDs(ctx context.Context, ref models.Ref) ([]int64, error) {
	ids := []int64{}
	query := r.db.Rebind(`
		SELECT user_id FROM reactions
		WHERE reactable_type = ? AND reactable_id = ?
		GROUP BY user_id
		ORDER BY MIN(id)
	`)
	if err := r.db.SelectContext(ctx, &ids, query, ref.Type, ref.ID); err != nil {
		return nil, fmt.Errorf("reaction repository: list reactors: %w", err)
	}
	return ids, nil
}

func (r *ReactionRepository) CountByType(ctx context.Context, ref models.Ref, reactionType string) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM reactions WHERE reactable_type = ? AND reactable_id = ? AND type = ?`)
	if err := r.db.GetContext(ctx, &count, query, ref.Type, ref.ID, reactionType); err != nil {
		return 0, fmt.Errorf("reaction repository: count: %w", err)
	}
	return count, nil
}

// Summary возвращает количество реакций каждого типа. Типов без реакций в ответе нет.
func (r *ReactionRepository) Summary(ctx context.Context, ref models.Ref) (map[string]int64, error) {
	var rows []struct {
		Type  string `db:"type"`
		Total int64  `db:"total"`
	}
	query := r.db.Rebind(`
		SELECT type, COUNT(*) AS total FROM reactions
		WHERE reactable_type = ? AND reactable_id = ?
		GROUP BY type
	`)
	if err := r.db.SelectContext(ctx, &rows, query, ref.Type, ref.ID); err != nil {
		return nil, fmt.Errorf("reaction repository: summary: %w", err)
	}

	summary := make(map[string]int64, len(rows))
	for _, row := range rows {
		summary[row.Type] = row.Total
	}
	return summary, nil
}

func insertReaction(ctx context.Context, q common.Queryer, ref models.Ref, userID int64, reactionType string) (*models.Reaction, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	reaction := &models.Reaction{
		UserID:        userID,
		ReactableType: ref.Type,
		ReactableID:   ref.ID,
		Type:          reactionType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	query := q.Rebind(`
		INSERT INTO reactions (user_id, reactable_type, reactable_id, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	if err := sqlx.GetContext(ctx, q, &reaction.ID, query,
		userID, ref.Type, ref.ID, reactionType, now, now,
	); err != nil {
		return nil, err
	}
	return reaction, nil
}

func deleteByUser(ctx context.Context, q common.Queryer, ref models.Ref, userID int64) (int64, error) {
	query := q.Rebind(`DELETE FROM reactions WHERE reactable_type = ? AND reactable_id = ? AND user_id = ?`)
	res, err := q.ExecContext(ctx, query, ref.Type, ref.ID, userID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// lockReactor сериализует toggle одной пары (объект, пользователь) в PostgreSQL.
// В SQLite транзакции и так идут через единственного писателя.
func lockReactor(ctx context.Context, tx *sqlx.Tx, ref models.Ref, userID int64) error {
	if tx.DriverName() != "postgres" {
		return nil
	}
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, reactorLockKey(ref, userID))
	return err
}

func reactorLockKey(ref models.Ref, userID int64) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", ref, userID)
	return int64(h.Sum64())
}
