package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ApplyUpdate(ctx context.Context, id uuid.UUID, upd *models.AccountUpdate, passwordHash *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Account, error)
}

type accountRepo struct {
	db database.Querier
}

func NewAccountRepo(db database.Querier) AccountRepository {
	return &accountRepo{db: db}
}

const accountColumns = `id, email, password_hash, full_name, phone, address, role_id, created_at, updated_at`

func scanAccount(row interface{ Scan(dest ...any) error }) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Phone, &a.Address, &a.RoleID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepo) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, full_name, phone, address, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, account.ID, account.Email, account.PasswordHash, account.FullName, account.Phone, account.Address, account.RoleID)
	return err
}

func (r *accountRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`
	return scanAccount(querier(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email = $1
	`
	return scanAccount(querier(ctx, r.db).QueryRow(ctx, query, email))
}

func (r *accountRepo) ApplyUpdate(ctx context.Context, id uuid.UUID, upd *models.AccountUpdate, passwordHash *string) error {
	sets := []string{}
	args := []any{}
	argn := 0

	add := func(column string, value any) {
		argn++
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
	}

	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.RoleID != nil {
		add("role_id", *upd.RoleID)
	}
	if passwordHash != nil {
		add("password_hash", *passwordHash)
	}
	if len(sets) == 0 {
		return nil
	}

	argn++
	query := fmt.Sprintf(`UPDATE accounts SET %s, updated_at = NOW() WHERE id = $%d`, strings.Join(sets, ", "), argn)
	args = append(args, id)

	_, err := querier(ctx, r.db).Exec(ctx, query, args...)
	return err
}

func (r *accountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	return err
}

func (r *accountRepo) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
