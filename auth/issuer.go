package auth

import (
	"context"
	"errors"
	"time"

	"help-app-api/apperrors"
	"help-app-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultTokenTTL = 24 * time.Hour

// Claims is the signed token payload. The user id travels as the subject.
type Claims struct {
	Email string          `json:"email"`
	Role  models.UserRole `json:"userType"`
	jwt.RegisteredClaims
}

// Identity is what a verified token says about its caller
type Identity struct {
	UserID string
	Email  string
	Role   models.UserRole
}

// Session is returned by signup and login
type Session struct {
	AccessToken string            `json:"access_token"`
	User        models.PublicUser `json:"user"`
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
}

// Issuer creates accounts, mints tokens and verifies them
type Issuer struct {
	db       *gorm.DB
	secret   []byte
	ttl      time.Duration
	hashCost int
	now      func() time.Time
}

type Option func(*Issuer)

func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) { i.ttl = ttl }
}

func WithHashCost(cost int) Option {
	return func(i *Issuer) { i.hashCost = cost }
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(db *gorm.DB, secret []byte, opts ...Option) *Issuer {
	i := &Issuer{
		db:       db,
		secret:   secret,
		ttl:      DefaultTokenTTL,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Signup registers a new user and starts a session for them
func (i *Issuer) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	db := i.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	if count > 0 {
		return nil, apperrors.NewConflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), i.hashCost)
	if err != nil {
		return nil, apperrors.NewInternal("hash password", err)
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}

	// The account and its first token land together or not at all
	var token string
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			err = apperrors.Translate(err)
			if apperrors.Is(err, apperrors.KindConflict) {
				return apperrors.NewConflict("User with this email already exists")
			}
			return err
		}
		token, err = i.issue(tx, &user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: token, User: user.Public()}, nil
}

// Login checks credentials and starts a new session. Unknown email and wrong
// password fail identically.
func (i *Issuer) Login(ctx context.Context, email, password string) (*Session, error) {
	var user models.User
	if err := i.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, apperrors.Translate(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, err := i.issue(i.db.WithContext(ctx), &user)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: token, User: user.Public()}, nil
}

// issue signs an access token for user and records it through db
func (i *Issuer) issue(db *gorm.DB, user *models.User) (string, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", apperrors.NewInternal("sign token", err)
	}

	record := models.AuthToken{
		UserID:    user.ID,
		Token:     signed,
		Type:      models.TokenAccess,
		ExpiresAt: expiresAt,
	}
	if err := db.Create(&record).Error; err != nil {
		return "", apperrors.Translate(err)
	}
	return signed, nil
}

// Verify checks a bearer token's signature, expiry and that it has not been
// revoked, and returns the caller it was issued to
func (i *Issuer) Verify(ctx context.Context, token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, apperrors.NewUnauthorized("Invalid or expired token")
	}

	var count int64
	err = i.db.WithContext(ctx).Model(&models.AuthToken{}).
		Where("token = ? AND expires_at > ?", token, i.now().UTC()).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Translate(err)
	}
	if count == 0 {
		return nil, apperrors.NewUnauthorized("Token has been revoked")
	}

	return &Identity{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

// Profile loads the authenticated user's record
func (i *Issuer) Profile(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := i.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUnauthorized("User no longer exists")
		}
		return nil, apperrors.Translate(err)
	}
	return &user, nil
}

// DeleteExpiredTokens purges every token record past its expiry
func (i *Issuer) DeleteExpiredTokens(ctx context.Context) error {
	_, err := i.deleteExpired(ctx)
	return err
}

func (i *Issuer) deleteExpired(ctx context.Context) (int64, error) {
	res := i.db.WithContext(ctx).
		Where("expires_at < ?", i.now().UTC()).
		Delete(&models.AuthToken{})
	return res.RowsAffected, apperrors.Translate(res.Error)
}

// DeleteUserTokens revokes every token issued to userID
func (i *Issuer) DeleteUserTokens(ctx context.Context, userID string) error {
	err := i.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.AuthToken{}).Error
	return apperrors.Translate(err)
}
