package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/subarna00/restrovibe-backend-sub001/internal/token/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	log   *zap.Logger
	db    *gorm.DB
	genID *snowflake.Node
}

func NewService(log *zap.Logger, conn *gorm.DB, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("token.service"),
		db:    conn,
		genID: genID,
	}
}

// IssuePair revokes any previous pair for the audience and issues a fresh
// access+refresh pair.
func (s *service) IssuePair(ctx context.Context, userID snowflake.ID, audience string) (*domain.Pair, error) {
	now := time.Now().UTC()
	var pair domain.Pair

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := revokeAudience(tx, userID, audience); err != nil {
			return err
		}

		access, rawAccess, err := s.newToken(userID, audience+"-access", []string{domain.AbilityAccess}, now.Add(domain.AccessTTL))
		if err != nil {
			return err
		}
		refresh, rawRefresh, err := s.newToken(userID, audience+"-refresh", []string{domain.AbilityRefresh}, now.Add(domain.RefreshTTL))
		if err != nil {
			return err
		}

		if err := tx.Create(access).Error; err != nil {
			return err
		}
		if err := tx.Create(refresh).Error; err != nil {
			return err
		}

		pair = domain.Pair{
			AccessToken:      rawAccess,
			AccessExpiresAt:  access.ExpiresAt,
			RefreshToken:     rawRefresh,
			RefreshExpiresAt: refresh.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Authenticate validates a raw "<id>|<secret>" credential by exact lookup:
// parse the id, load the row, constant-time compare the secret hash, then
// check expiry and the required ability.
func (s *service) Authenticate(ctx context.Context, raw string, ability string) (*domain.AccessToken, error) {
	id, secret, ok := splitToken(raw)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	var token domain.AccessToken
	if err := s.db.WithContext(ctx).First(&token, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	hash := hashSecret(secret)
	if subtle.ConstantTimeCompare([]byte(token.TokenHash), []byte(hash)) != 1 {
		return nil, domain.ErrTokenInvalid
	}

	now := time.Now().UTC()
	if !token.ExpiresAt.After(now) {
		return nil, domain.ErrTokenExpired
	}
	if !token.Can(ability) {
		return nil, domain.ErrWrongAbility
	}

	if err := s.db.WithContext(ctx).Model(&domain.AccessToken{}).
		Where("id = ?", token.ID).
		Update("last_used_at", now).Error; err != nil {
		s.log.Warn("failed to touch token", zap.Error(err))
	}
	token.LastUsedAt = &now

	return &token, nil
}

// Refresh rotates the pair: the presented refresh token must carry the
// refresh ability, and both old tokens are revoked before a brand-new pair
// is issued. A replayed refresh token therefore fails the lookup.
func (s *service) Refresh(ctx context.Context, raw string) (*domain.Pair, error) {
	token, err := s.Authenticate(ctx, raw, domain.AbilityRefresh)
	if err != nil {
		return nil, err
	}

	audience := token.Audience()
	if audience == "" {
		return nil, domain.ErrTokenInvalid
	}

	return s.IssuePair(ctx, token.UserID, audience)
}

// RevokePair revokes both named tokens for the audience, not just the one
// presented.
func (s *service) RevokePair(ctx context.Context, userID snowflake.ID, audience string) error {
	return revokeAudience(s.db.WithContext(ctx), userID, audience)
}

func (s *service) SetSwitchedTenant(ctx context.Context, tokenID snowflake.ID, tenantID *snowflake.ID) error {
	return s.db.WithContext(ctx).Model(&domain.AccessToken{}).
		Where("id = ?", tokenID).
		Update("switched_tenant_id", tenantID).Error
}

func (s *service) newToken(userID snowflake.ID, name string, abilities []string, expiresAt time.Time) (*domain.AccessToken, string, error) {
	secret := newSecret()
	token := &domain.AccessToken{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Name:      name,
		TokenHash: hashSecret(secret),
		Abilities: abilities,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return token, token.ID.String() + "|" + secret, nil
}

func revokeAudience(tx *gorm.DB, userID snowflake.ID, audience string) error {
	return tx.Where("user_id = ? AND name IN ?", userID, []string{audience + "-access", audience + "-refresh"}).
		Delete(&domain.AccessToken{}).Error
}

func newSecret() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func splitToken(raw string) (snowflake.ID, string, bool) {
	raw = strings.TrimSpace(raw)
	idPart, secret, found := strings.Cut(raw, "|")
	if !found || idPart == "" || secret == "" {
		return 0, "", false
	}
	id, err := snowflake.ParseString(idPart)
	if err != nil {
		return 0, "", false
	}
	return id, secret, true
}
