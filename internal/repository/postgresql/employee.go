package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const (
	employeeColumns = `e.id, e.user_id, e.employee_code, e.first_name, e.last_name, e.email, e.phone,
		e.date_of_birth, e.address, e.city, e.state, e.zip_code, e.country, e.department, e.designation,
		e.salary, e.manager_id, e.date_of_joining, e.is_active, e.created_at, e.updated_at,
		m.first_name || ' ' || m.last_name`

	employeeWriteColumns = `user_id, employee_code, first_name, last_name, email, phone,
		date_of_birth, address, city, state, zip_code, country, department, designation,
		salary, manager_id, date_of_joining, is_active`
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.DateOfBirth, &e.Address, &e.City, &e.State, &e.ZipCode, &e.Country, &e.Department, &e.Designation,
		&e.Salary, &e.ManagerID, &e.DateOfJoining, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		&e.ManagerName,
	)
	return e, err
}

// mapEmployeeWriteError translates constraint violations into domain errors.
func mapEmployeeWriteError(err error) error {
	if isUniqueViolation(err, "uk_employees_code") {
		return employee.ErrEmployeeCodeExists
	}
	if isUniqueViolation(err, "uk_employees_email") {
		return employee.ErrEmailExists
	}
	if _, ok := constraintViolation(err, pgForeignKeyViolation); ok {
		return employee.ErrManagerNotFound
	}
	return err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN employees m ON m.id = e.manager_id
		WHERE e.id = $1
	`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return found, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH e AS (
			INSERT INTO employees (` + employeeWriteColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING *
		)
		SELECT ` + employeeColumns + `
		FROM e
		LEFT JOIN employees m ON m.id = e.manager_id
	`

	created, err := scanEmployee(q.QueryRow(ctx, query, employeeArgs(newEmployee)...))
	if err != nil {
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH e AS (
			UPDATE employees SET
				user_id = $1, employee_code = $2, first_name = $3, last_name = $4, email = $5, phone = $6,
				date_of_birth = $7, address = $8, city = $9, state = $10, zip_code = $11, country = $12,
				department = $13, designation = $14, salary = $15, manager_id = $16, date_of_joining = $17,
				is_active = $18, updated_at = NOW()
			WHERE id = $19
			RETURNING *
		)
		SELECT ` + employeeColumns + `
		FROM e
		LEFT JOIN employees m ON m.id = e.manager_id
	`

	args := append(employeeArgs(emp), emp.ID)
	updated, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return updated, nil
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"e.is_active = TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.employee_code ILIKE $%d OR e.email ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx,
		))
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		argIdx++
	}
	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("e.department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM employees e " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		LEFT JOIN employees m ON m.id = e.manager_id
		%s
		ORDER BY e.created_at DESC, e.employee_code DESC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	employees, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN employees m ON m.id = e.manager_id
		WHERE e.is_active = TRUE
		ORDER BY e.employee_code
	`

	employees, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return employees, nil
}

func (r *employeeRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func employeeArgs(e employee.Employee) []interface{} {
	return []interface{}{
		e.UserID, e.EmployeeCode, e.FirstName, e.LastName, e.Email, e.Phone,
		e.DateOfBirth, e.Address, e.City, e.State, e.ZipCode, e.Country, e.Department, e.Designation,
		e.Salary, e.ManagerID, e.DateOfJoining, e.IsActive,
	}
}
