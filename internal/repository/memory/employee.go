package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

type EmployeeRepository struct {
	s *Store
}

var _ employee.EmployeeRepository = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.withManager(e), nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(e); err != nil {
		return employee.Employee{}, err
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.employees[e.ID] = e
	return r.withManager(e), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.employees[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err := r.checkUnique(e); err != nil {
		return employee.Employee{}, err
	}

	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = r.s.now()
	r.s.employees[e.ID] = e
	return r.withManager(e), nil
}

func (r *EmployeeRepository) Deactivate(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsActive = false
	e.UpdatedAt = r.s.now()
	r.s.employees[id] = e
	return nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var search string
	if filter.Search != nil {
		search = strings.ToLower(strings.TrimSpace(*filter.Search))
	}

	matched := make([]employee.Employee, 0)
	for _, e := range r.s.employees {
		if !e.IsActive {
			continue
		}
		if filter.Department != nil && (e.Department == nil || *e.Department != *filter.Department) {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		matched = append(matched, r.withManager(e))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].EmployeeCode > matched[j].EmployeeCode
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, filter.Params), int64(len(matched)), nil
}

func (r *EmployeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	active := make([]employee.Employee, 0)
	for _, e := range r.s.employees {
		if e.IsActive {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].EmployeeCode < active[j].EmployeeCode })
	return active, nil
}

// checkUnique mirrors the unique indexes on employee_code and lower(email). Caller holds mu.
func (r *EmployeeRepository) checkUnique(e employee.Employee) error {
	for _, other := range r.s.employees {
		if other.ID == e.ID {
			continue
		}
		if other.EmployeeCode == e.EmployeeCode {
			return employee.ErrEmployeeCodeExists
		}
		if strings.EqualFold(other.Email, e.Email) {
			return employee.ErrEmailExists
		}
	}
	return nil
}

func (r *EmployeeRepository) withManager(e employee.Employee) employee.Employee {
	e.ManagerName = nil
	if e.ManagerID != nil {
		if m, ok := r.s.employees[*e.ManagerID]; ok {
			name := m.FullName()
			e.ManagerName = &name
		}
	}
	return e
}

func matchesSearch(e employee.Employee, search string) bool {
	for _, field := range []string{e.FirstName, e.LastName, e.EmployeeCode, e.Email} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
