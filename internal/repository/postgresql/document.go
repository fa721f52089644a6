package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const documentColumns = `d.id, d.employee_id, d.name, d.type, d.file_url, d.storage_key, d.uploaded_at,
	e.first_name || ' ' || e.last_name`

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

func scanDocument(row pgx.Row) (document.Document, error) {
	var d document.Document
	err := row.Scan(&d.ID, &d.EmployeeID, &d.Name, &d.Type, &d.FileURL, &d.StorageKey, &d.UploadedAt, &d.EmployeeName)
	return d, err
}

func (r *documentRepositoryImpl) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH d AS (
			INSERT INTO documents (employee_id, name, type, file_url, storage_key)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + documentColumns + `
		FROM d
		JOIN employees e ON e.id = d.employee_id
	`

	created, err := scanDocument(q.QueryRow(ctx, query, doc.EmployeeID, doc.Name, doc.Type, doc.FileURL, doc.StorageKey))
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to create document: %w", err)
	}
	return created, nil
}

func (r *documentRepositoryImpl) GetByID(ctx context.Context, id string) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + documentColumns + `
		FROM documents d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.id = $1
	`

	found, err := scanDocument(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, fmt.Errorf("failed to get document with id %s: %w", id, err)
	}
	return found, nil
}

func (r *documentRepositoryImpl) List(ctx context.Context, filter document.DocumentFilter) ([]document.Document, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("d.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("d.type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM documents d " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM documents d
		JOIN employees e ON e.id = d.employee_id
		%s
		ORDER BY d.uploaded_at DESC
		LIMIT $%d OFFSET $%d
	`, documentColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := make([]document.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

func (r *documentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}
	return nil
}
