package sqlite

import (
	"context"
	"database/sql"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	"github.com/apurvavyas7/CineSuggest/internal/store"
)

const languageColumns = `id, created_at, updated_at, name`

func scanLanguage(scanner interface{ Scan(dest ...any) error }) (*domain.Language, error) {
	var l domain.Language
	var createdAt, updatedAt string

	err := scanner.Scan(&l.ID, &createdAt, &updatedAt, &l.Name)
	if err != nil {
		return nil, err
	}

	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	l.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLanguage inserts a new language.
// Returns store.ErrAlreadyExists if the name is taken.
func (s *Store) CreateLanguage(ctx context.Context, language *domain.Language) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO languages (id, created_at, updated_at, name) VALUES (?, ?, ?, ?)`,
		language.ID,
		formatTime(language.CreatedAt),
		formatTime(language.UpdatedAt),
		language.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetLanguage retrieves a language by ID.
// Returns store.ErrNotFound if the language does not exist.
func (s *Store) GetLanguage(ctx context.Context, id string) (*domain.Language, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+languageColumns+` FROM languages WHERE id = ?`, id)

	l, err := scanLanguage(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetLanguageByName retrieves a language by exact name.
// Returns store.ErrNotFound if the language does not exist.
func (s *Store) GetLanguageByName(ctx context.Context, name string) (*domain.Language, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+languageColumns+` FROM languages WHERE name = ?`, name)

	l, err := scanLanguage(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLanguages returns all languages ordered by name.
func (s *Store) ListLanguages(ctx context.Context) ([]*domain.Language, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+languageColumns+` FROM languages ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var languages []*domain.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		languages = append(languages, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return languages, nil
}

// UpdateLanguage performs a full row update on an existing language.
// Returns store.ErrNotFound if the language does not exist, or
// store.ErrAlreadyExists if the new name is taken.
func (s *Store) UpdateLanguage(ctx context.Context, language *domain.Language) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE languages SET created_at = ?, updated_at = ?, name = ? WHERE id = ?`,
		formatTime(language.CreatedAt),
		formatTime(language.UpdatedAt),
		language.Name,
		language.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteLanguage removes a language. Movie links and preferences cascade.
// Returns store.ErrNotFound if the language does not exist.
func (s *Store) DeleteLanguage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM languages WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
