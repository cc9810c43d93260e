package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/todoapp/todo-api/database"
	"github.com/todoapp/todo-api/database/model"
	"github.com/todoapp/todo-api/logger"
	"github.com/todoapp/todo-api/util/crypto"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// nonSpace is any rune that is not ASCII or Unicode whitespace (\S alone only
// excludes ASCII).
const nonSpace = `[^\s\v\p{Z}\x{FEFF}]`

// emailPattern accepts anything shaped like something@something.something.
var emailPattern = regexp.MustCompile(nonSpace + `+@` + nonSpace + `+\.` + nonSpace + `+`)

const (
	msgEmailNotValid    = "Email Not Valid"
	msgEmailTaken       = "Username already taken"
	msgInvalidUsername  = "Invalid username"
	msgInvalidPassword  = "Invalid password"
	msgUnauthorized     = "Unauthorized"
	signingMethodHS256  = "HS256"
	defaultTokenTimeout = time.Hour
)

// Claims is the bearer token payload.
type Claims struct {
	UserId int `json:"userId"`
	jwt.RegisteredClaims
}

// AuthService signs users up, checks their credentials and issues and
// verifies bearer tokens.
type AuthService struct {
	users  *UserService
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService returns an AuthService signing tokens with secret. A
// non-positive ttl falls back to one hour.
func NewAuthService(db *gorm.DB, secret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTimeout
	}
	return &AuthService{
		users:  NewUserService(db),
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// ValidateEmail reports whether email contains something@something.something.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Signup creates a user. The email lookup runs before validation, so a store
// failure wins over a malformed address.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) error {
	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !database.IsNotFound(err) {
		logger.Warning("signup: find user failed:", err)
		return newError(KindInternal, msgInternal, err)
	}

	if !ValidateEmail(email) {
		return newError(KindInvalidInput, msgEmailNotValid, nil)
	}

	if existing != nil {
		return newError(KindConflict, msgEmailTaken, nil)
	}

	salt := crypto.NewSalt()
	hash, err := crypto.HashPassword(password, salt)
	if err != nil {
		logger.Warning("signup: hash password failed:", err)
		return newError(KindInternal, msgInternal, err)
	}

	user := &model.User{
		Name:              username,
		Email:             email,
		EncryptedPassword: hash,
		Salt:              salt,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		logger.Warning("signup: create user failed:", err)
		return newError(KindInternal, msgInternal, err)
	}

	logger.Infof("user %d signed up", user.Id)
	return nil
}

// Login checks the credentials and returns a signed token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if !ValidateEmail(email) {
		return "", nil, newError(KindInvalidInput, msgEmailNotValid, nil)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if database.IsNotFound(err) {
		return "", nil, newError(KindUnauthenticated, msgInvalidUsername, nil)
	} else if err != nil {
		logger.Warning("login: find user failed:", err)
		return "", nil, newError(KindInternal, msgInternal, err)
	}

	if !crypto.CheckPassword(user.EncryptedPassword, password, user.Salt) {
		return "", nil, newError(KindUnauthenticated, msgInvalidPassword, nil)
	}

	token, err := s.GenerateToken(user.Id)
	if err != nil {
		logger.Warning("login: sign token failed:", err)
		return "", nil, newError(KindInternal, msgInternal, err)
	}
	return token, user, nil
}

// GenerateToken signs an HS256 token for userId that expires after the
// service ttl.
func (s *AuthService) GenerateToken(userId int) (string, error) {
	now := s.now()
	claims := Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken checks signature and expiry and returns the embedded user id.
// Every failure is reported as KindUnauthorized.
func (s *AuthService) VerifyToken(tokenString string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethodHS256}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, newError(KindUnauthorized, msgUnauthorized, err)
	}
	if !token.Valid {
		return 0, newError(KindUnauthorized, msgUnauthorized, errors.New("token is not valid"))
	}
	return claims.UserId, nil
}
