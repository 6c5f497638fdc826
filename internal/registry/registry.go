// Package registry разрешает полиморфные ссылки {type, id} в живые объекты.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
)

// Loader загружает объект одного типа по ID.
// Если объекта нет, должен вернуть apperror.ErrEntityNotFound.
type Loader func(ctx context.Context, id int64) (models.Reactable, error)

// UserLoader загружает пользователей по списку ID, сохраняя порядок.
type UserLoader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

type Registry struct {
	mu      sync.RWMutex
	loaders map[string]Loader
	users   UserLoader
}

func New(users UserLoader) *Registry {
	return &Registry{
		loaders: make(map[string]Loader),
		users:   users,
	}
}

// Register регистрирует тип объекта. Повторная регистрация заменяет загрузчик.
func (r *Registry) Register(reactableType string, loader Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[reactableType] = loader
}

// Adapt превращает типизированный GetByID репозитория в Loader.
func Adapt[T models.Reactable](get func(ctx context.Context, id int64) (T, error)) Loader {
	return func(ctx context.Context, id int64) (models.Reactable, error) {
		entity, err := get(ctx, id)
		if err != nil {
			return nil, err
		}
		return entity, nil
	}
}

// Known сообщает, зарегистрирован ли тип объекта.
func (r *Registry) Known(reactableType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.loaders[reactableType]
	return ok
}

// Types возвращает зарегистрированные типы по алфавиту.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.loaders))
	for t := range r.loaders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Resolve возвращает объект по ссылке.
func (r *Registry) Resolve(ctx context.Context, ref models.Ref) (models.Reactable, error) {
	r.mu.RLock()
	loader, ok := r.loaders[ref.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, apperror.ErrUnknownReactable
	}

	entity, err := loader(ctx, ref.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrEntityNotFound
		}
		return nil, fmt.Errorf("registry: resolve %s: %w", ref, err)
	}
	return entity, nil
}

// UsersByIDs возвращает пользователей в порядке ids; отсутствующие пропускаются.
func (r *Registry) UsersByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	users, err := r.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("registry: users: %w", err)
	}
	return users, nil
}
