package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid access token")

const quoteTokenIssuer = "procurement/quote-access"

// QuoteClaims identify the invitation a supplier submits a quote against.
type QuoteClaims struct {
	QuoteRequestID uuid.UUID `json:"quote_request_id"`
	SupplierID     uuid.UUID `json:"supplier_id"`
	jwt.RegisteredClaims
}

// TokenID is the single-use id stored with the invitation.
func (c *QuoteClaims) TokenID() (uuid.UUID, error) {
	return uuid.Parse(c.ID)
}

type QuoteTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewQuoteTokens(secret string, ttl time.Duration) *QuoteTokens {
	return &QuoteTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *QuoteTokens) Issue(requestID, supplierID, tokenID uuid.UUID) (string, error) {
	now := t.now()
	claims := QuoteClaims{
		QuoteRequestID: requestID,
		SupplierID:     supplierID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Issuer:    quoteTokenIssuer,
			Subject:   supplierID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign quote token: %w", err)
	}
	return signed, nil
}

func (t *QuoteTokens) Parse(raw string) (*QuoteClaims, error) {
	claims := &QuoteClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(quoteTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := claims.TokenID(); err != nil {
		return nil, fmt.Errorf("%w: bad token id", ErrInvalidToken)
	}
	if claims.QuoteRequestID == uuid.Nil || claims.SupplierID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing invitation", ErrInvalidToken)
	}
	return claims, nil
}
