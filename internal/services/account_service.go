package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

// LoginResponse carries the signed token and the authenticated account.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expiresIn"`
	Account   *models.Account `json:"account"`
}

// AccountClaims are the JWT claims issued at login.
type AccountClaims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, email, password, fullName string, phone, address *string) (*models.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, upd *models.AccountUpdate) (*models.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
}

type accountService struct {
	accountRepo repositories.AccountRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewAccountService(accountRepo repositories.AccountRepository, jwtSecret string, tokenTTL time.Duration) AccountServiceInterface {
	return &accountService{
		accountRepo: accountRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, email, password, fullName string, phone, address *string) (*models.Account, error) {
	if err := common.ValidateEmail(email, "email"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}
	if len(password) < 8 {
		return nil, common.NewValidationError("password must be at least 8 characters")
	}
	if err := common.ValidateRequiredString(fullName, "full_name"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}

	account := &models.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashPassword(password),
		FullName:     fullName,
		Phone:        phone,
		Address:      address,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, common.TranslateDBError(err, "account")
	}
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.TranslateDBError(err, "account")
	}
	return account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, id uuid.UUID, upd *models.AccountUpdate) (*models.Account, error) {
	var passwordHash *string
	if upd.Password != nil {
		if len(*upd.Password) < 8 {
			return nil, common.NewValidationError("password must be at least 8 characters")
		}
		hashed := hashPassword(*upd.Password)
		passwordHash = &hashed
	}

	if _, err := s.accountRepo.GetByID(ctx, id); err != nil {
		return nil, common.TranslateDBError(err, "account")
	}
	if err := s.accountRepo.ApplyUpdate(ctx, id, upd, passwordHash); err != nil {
		return nil, common.TranslateDBError(err, "account")
	}
	return s.GetAccount(ctx, id)
}

func (s *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accountRepo.GetByID(ctx, id); err != nil {
		return common.TranslateDBError(err, "account")
	}
	return s.accountRepo.Delete(ctx, id)
}

func (s *accountService) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	return s.accountRepo.List(ctx, limit, offset)
}

// Login verifies credentials and issues an HS256 token. Lookup misses and
// bad passwords return the same error so the endpoint does not leak which
// emails have accounts.
func (s *accountService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewValidationError("invalid email or password")
		}
		return nil, err
	}

	supplied := hashPassword(password)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(account.PasswordHash)) != 1 {
		return nil, common.NewValidationError("invalid email or password")
	}

	now := time.Now()
	claims := AccountClaims{
		AccountID: account.ID.String(),
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "giftmart-api",
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     signed,
		ExpiresIn: int(s.tokenTTL.Seconds()),
		Account:   account,
	}, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
