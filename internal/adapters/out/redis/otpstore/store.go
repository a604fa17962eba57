// Package otpstore provides a Redis-backed one-time password store.
// Redis expiry mirrors the code's own expiry, so stale codes vanish from the
// store on their own instead of accumulating like rows in a table. The store
// is a drop-in alternative to the Postgres repository behind the same port.
package otpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/otp"
	"freight/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// expiredGracePeriod keeps a just-expired record readable for a short while.
// Matches already rejects expired codes; the grace only preserves consume
// bookkeeping written near the expiry boundary.
const expiredGracePeriod = time.Minute

// otpRecord is the JSON shape stored under the pair key.
type otpRecord struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsValid   bool      `json:"isValid"`
}

// RedisOtpStore implements OtpRepository on a Redis client.
// Writes run outside the database transaction; the settlement flow orders
// them so a lost write can only re-allow a retry, never forge a settlement.
type RedisOtpStore struct {
	client *redis.Client
}

// NewRedisOtpStore creates a store on the given Redis client.
func NewRedisOtpStore(client *redis.Client) *RedisOtpStore {
	return &RedisOtpStore{client: client}
}

// Save upserts the one-time password under its (shipment, parcel) key.
// The key expires when the code does.
func (s *RedisOtpStore) Save(ctx context.Context, aggregate *otp.DeliveryOtp) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(otpRecord{
		Code:      aggregate.Code(),
		ExpiresAt: aggregate.ExpiresAt(),
		IsValid:   aggregate.IsValid(),
	})
	if err != nil {
		return err
	}

	ttl := time.Until(aggregate.ExpiresAt())
	if ttl <= 0 {
		ttl = expiredGracePeriod
	}

	return s.client.Set(ctx, pairKey(aggregate.ShipmentID(), aggregate.ParcelID()), raw, ttl).Err()
}

// Get retrieves the one-time password for the (shipment, parcel) pair.
// An evicted or never-issued code is an ObjectNotFoundError.
func (s *RedisOtpStore) Get(ctx context.Context, shipmentID, parcelID kernel.UUID) (*otp.DeliveryOtp, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, pairKey(shipmentID, parcelID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("otp", parcelID.String())
	}
	if err != nil {
		return nil, err
	}

	var record otpRecord
	if err = json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}

	return otp.RestoreDeliveryOtp(shipmentID, parcelID, record.Code, record.ExpiresAt, record.IsValid)
}

func pairKey(shipmentID, parcelID kernel.UUID) string {
	return fmt.Sprintf("otp:%s:%s", shipmentID.String(), parcelID.String())
}
