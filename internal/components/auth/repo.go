package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicateIdentifier = errors.New("identifier already exists")
	ErrNotFound            = errors.New("credential not found")
)

type (
	repoer interface {
		Insert(ctx context.Context, identifier, passwordHash string) (*Credential, error)
		GetByIdentifier(ctx context.Context, identifier string) (*Credential, error)
	}

	// db is the subset of pgxpool.Pool the repo needs (satisfied by pgxmock).
	db interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	}

	repo struct {
		db db
	}
)

func NewRepo(pool *pgxpool.Pool) repoer {
	return &repo{db: pool}
}

// Insert stores a new credential. The unique index on identifier makes the
// check-then-insert atomic; a concurrent duplicate surfaces as
// ErrDuplicateIdentifier on exactly one of the two calls.
func (r *repo) Insert(ctx context.Context, identifier, passwordHash string) (*Credential, error) {
	stmt := `
	INSERT INTO credentials (
		id, identifier, password_hash
	)
	VALUES (
		$1, $2, $3
	)
	RETURNING id, identifier, password_hash, created_at`

	cred := new(Credential)
	err := r.db.QueryRow(
		ctx,
		stmt,
		uuid.New(),
		identifier,
		passwordHash,
	).Scan(
		&cred.ID,
		&cred.Identifier,
		&cred.PasswordHash,
		&cred.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateIdentifier
		}
		return nil, err
	}
	return cred, nil
}

func (r *repo) GetByIdentifier(ctx context.Context, identifier string) (*Credential, error) {
	stmt := `
	SELECT id, identifier, password_hash, created_at
	FROM credentials
	WHERE identifier = $1`

	cred := new(Credential)
	err := r.db.QueryRow(ctx, stmt, identifier).Scan(
		&cred.ID,
		&cred.Identifier,
		&cred.PasswordHash,
		&cred.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cred, nil
}
