// Package memory implementa los puertos de repositorio en memoria.
// Se usa en tests de casos de uso y de handlers HTTP en lugar de PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/hisaabb-api/internal/domain"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"github.com/jhoicas/hisaabb-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	companies map[string]entity.Company
	users     map[string]entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies: make(map[string]entity.Company),
		users:     make(map[string]entity.User),
	}
}

// Companies repositorio de empresas sobre el almacén.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Users repositorio de usuarios sobre el almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// RunOnboarding ejecuta fn y, si devuelve error, deshace solo las escrituras hechas
// a través de los repositorios que recibió fn. Las escrituras concurrentes de otros
// repositorios sobre el mismo almacén se conservan.
func (s *Store) RunOnboarding(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	j := &journal{}
	if err := fn(&CompanyRepo{s: s, j: j}, &UserRepo{s: s, j: j}); err != nil {
		s.mu.Lock()
		j.rollback()
		s.mu.Unlock()
		return err
	}
	return nil
}

// journal acciones inversas de las escrituras de una transacción.
// Se modifica y se aplica con s.mu tomado en escritura.
type journal struct {
	undo []func()
}

func (j *journal) record(f func()) {
	if j != nil {
		j.undo = append(j.undo, f)
	}
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// CompanyRepo implementación en memoria de repository.CompanyRepository.
type CompanyRepo struct {
	s *Store
	j *journal
}

func (r *CompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[company.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.companies[company.ID] = *company
	id := company.ID
	r.j.record(func() { delete(r.s.companies, id) })
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.RLock()
	list := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		c := c
		list = append(list, &c)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *CompanyRepo) Update(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.companies[company.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.s.companies[company.ID] = *company
	r.j.record(func() { r.s.companies[prev.ID] = prev })
	return nil
}

func (r *CompanyRepo) GetBusinessType(_ context.Context, id string) (entity.BusinessType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return c.BusinessType, nil
}

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct {
	s *Store
	j *journal
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	stored := *user
	stored.Permissions = append([]entity.Permission(nil), user.Permissions...)
	r.s.users[user.ID] = stored
	id := user.ID
	r.j.record(func() { delete(r.s.users, id) })
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	list := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if u.CompanyID == companyID {
			u := u
			list = append(list, &u)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return page(list, limit, offset), nil
}

func (r *UserRepo) UpdatePermissions(_ context.Context, id string, perms []entity.Permission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	prev := u.Permissions
	u.Permissions = append([]entity.Permission(nil), perms...)
	r.s.users[id] = u
	r.j.record(func() {
		if cur, ok := r.s.users[id]; ok {
			cur.Permissions = prev
			r.s.users[id] = cur
		}
	})
	return nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			u.Permissions = append([]entity.Permission(nil), u.Permissions...)
			return &u
		}
	}
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
