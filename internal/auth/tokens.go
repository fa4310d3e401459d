package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

// Claims - полезная нагрузка access и refresh токенов.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

type TokenConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
	Issuer        string
}

// TokenManager выпускает и проверяет пары токенов. Access и refresh подписываются разными ключами.
type TokenManager struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	return &TokenManager{cfg: cfg, now: time.Now}
}

func (m *TokenManager) AccessTTL() time.Duration  { return m.cfg.AccessTTL }
func (m *TokenManager) RefreshTTL() time.Duration { return m.cfg.RefreshTTL }

func (m *TokenManager) IssueAccessToken(userID string) (string, error) {
	token, _, err := m.issue(userID, m.cfg.AccessSecret, audienceAccess, m.cfg.AccessTTL)
	return token, err
}

// IssueRefreshToken возвращает токен и момент истечения для записи сессии.
func (m *TokenManager) IssueRefreshToken(userID string) (string, time.Time, error) {
	return m.issue(userID, m.cfg.RefreshSecret, audienceRefresh, m.cfg.RefreshTTL)
}

func (m *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return m.verify(token, m.cfg.AccessSecret, audienceAccess)
}

func (m *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return m.verify(token, m.cfg.RefreshSecret, audienceRefresh)
}

func (m *TokenManager) issue(userID, secret, audience string, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) verify(tokenString, secret, audience string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
