// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/config"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/middleware"
)

const (
	claimRoleID    = "role_id"
	claimTokenType = "type"
	tokenTypeAcc   = "access"
)

// JWTManager verifies ES256 access tokens and, when it holds the private
// key, issues them. The API normally runs verify-only; signing is for the
// token subcommand and tests.
type JWTManager struct {
	signingKey  jwk.Key
	verifyKey   jwk.Key
	jwks        jwk.Set
	keyID       string
	config      config.JWTConfig
	revocations *Revocations
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	m := &JWTManager{config: cfg}

	if cfg.PrivateKeyPath != "" {
		priv, err := readPEMKey(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("private key: %w", err)
		}
		pub, err := priv.PublicKey()
		if err != nil {
			return nil, fmt.Errorf("derive public key: %w", err)
		}
		m.signingKey, m.verifyKey = priv, pub
	} else {
		pub, err := readPEMKey(cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("public key: %w", err)
		}
		m.verifyKey = pub
	}

	// Derived from the public key so signer and verifiers agree on it.
	kid, err := thumbprintKeyID(m.verifyKey)
	if err != nil {
		return nil, err
	}
	m.keyID = kid

	for _, key := range []jwk.Key{m.signingKey, m.verifyKey} {
		if key == nil {
			continue
		}
		if err := tagKey(key, kid); err != nil {
			return nil, err
		}
	}
	if err := m.verifyKey.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("set key usage: %w", err)
	}

	m.jwks = jwk.NewSet()
	if err := m.jwks.AddKey(m.verifyKey); err != nil {
		return nil, fmt.Errorf("add key to set: %w", err)
	}

	return m, nil
}

func readPEMKey(path string) (jwk.Key, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	key, err := jwk.ParseKey(raw, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return key, nil
}

func thumbprintKeyID(key jwk.Key) (string, error) {
	sum, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("key thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sum)[:16], nil
}

func tagKey(key jwk.Key, kid string) error {
	if err := key.Set(jwk.AlgorithmKey, jwa.ES256()); err != nil {
		return fmt.Errorf("set algorithm: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, kid); err != nil {
		return fmt.Errorf("set key id: %w", err)
	}
	return nil
}

// WithRevocations makes VerifyAccessToken reject token IDs on the
// revocation list.
func (m *JWTManager) WithRevocations(r *Revocations) *JWTManager {
	m.revocations = r
	return m
}

// GenerateKeyPair writes a fresh P-256 key pair as PEM. The private file
// is owner-only.
func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	raw, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	priv, err := jwk.Import(raw)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}
	pub, err := priv.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	if err := writePEM(privateKeyPath, priv, 0o600); err != nil {
		return err
	}
	//nolint:gosec // G306: public key is meant to be shared
	return writePEM(publicKeyPath, pub, 0o644)
}

func writePEM(path string, key jwk.Key, perm os.FileMode) error {
	encoded, err := jwk.Pem(key)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, encoded, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

type AccessTokenClaims struct {
	UserID int
	RoleID int
}

func (m *JWTManager) CreateAccessToken(claims AccessTokenClaims) (string, error) {
	if m.signingKey == nil {
		return "", errors.New("create token: manager has no signing key")
	}

	now := time.Now()
	token, err := jwt.NewBuilder().
		JwtID(uuid.NewString()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(strconv.Itoa(claims.UserID)).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(m.config.AccessTokenExpire)).
		Claim(claimRoleID, claims.RoleID).
		Claim(claimTokenType, tokenTypeAcc).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.signingKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return string(signed), nil
}

func (m *JWTManager) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.ES256(), m.verifyKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isExpired(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	claims, err := accessClaims(token)
	if err != nil {
		return nil, fmt.Errorf("verify token: %s: %w", err, core.ErrTokenInvalid)
	}

	if m.revocations != nil && claims.TokenID != "" {
		revoked, err := m.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, fmt.Errorf("verify token: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
		}
	}

	return claims, nil
}

func accessClaims(token jwt.Token) (*middleware.AccessTokenClaims, error) {
	var tokenType string
	if err := token.Get(claimTokenType, &tokenType); err != nil || tokenType != tokenTypeAcc {
		return nil, errors.New("not an access token")
	}

	subject, _ := token.Subject()
	userID, err := strconv.Atoi(subject)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("malformed subject %q", subject)
	}

	// JSON numbers decode as float64.
	var roleID float64
	if err := token.Get(claimRoleID, &roleID); err != nil {
		return nil, errors.New("missing role_id claim")
	}

	jti, _ := token.JwtID()
	exp, _ := token.Expiration()

	return &middleware.AccessTokenClaims{
		UserID:    userID,
		RoleID:    int(roleID),
		TokenID:   jti,
		ExpiresAt: exp,
	}, nil
}

func isExpired(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "exp") && strings.Contains(msg, "not satisfied")
}

// JWKSHandler serves the verification key set for other services.
func (m *JWTManager) JWKSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		core.JSON(w, http.StatusOK, m.jwks)
	}
}

func (m *JWTManager) KeyID() string {
	return m.keyID
}
