package repo

import (
	"context"

	dom "github.com/amanbabu2004/web-application-students/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides directory-record persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByID(ctx context.Context, id string) (dom.User, error)
	List(ctx context.Context) ([]dom.User, error)
	// Update writes the full merged row; the service does the read-merge.
	Update(ctx context.Context, u dom.User) (dom.User, error)
	// Delete removes the row and returns the deleted record's name.
	Delete(ctx context.Context, id string) (string, error)
	Search(ctx context.Context, q string) ([]dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (id, name, email, age, occupation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, age, occupation, created_at, updated_at`
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.Age, u.Occupation).Scan(
		&out.ID, &out.Name, &out.Email, &out.Age, &out.Occupation,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGUserRepo) GetByID(ctx context.Context, id string) (dom.User, error) {
	query := `
		SELECT id, name, email, age, occupation, created_at, updated_at
		FROM users WHERE id = $1`
	var u dom.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Age, &u.Occupation,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *PGUserRepo) List(ctx context.Context) ([]dom.User, error) {
	query := `
		SELECT id, name, email, age, occupation, created_at, updated_at
		FROM users ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Occupation,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *PGUserRepo) Update(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		UPDATE users SET name = $2, email = $3, age = $4, occupation = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, email, age, occupation, created_at, updated_at`
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.Age, u.Occupation).Scan(
		&out.ID, &out.Name, &out.Email, &out.Age, &out.Occupation,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGUserRepo) Delete(ctx context.Context, id string) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `DELETE FROM users WHERE id = $1 RETURNING name`, id).Scan(&name)
	return name, err
}

func (r *PGUserRepo) Search(ctx context.Context, q string) ([]dom.User, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT id, name, email, age, occupation, created_at, updated_at
		FROM users WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name`
	rows, err := r.db.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Occupation,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
