package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound is returned when no outstanding code exists for a user:
// never issued, expired, or already consumed.
var ErrCodeNotFound = errors.New("confirmation code not found")

// CodeRecord is what gets stored per pending confirmation: the bcrypt hash of
// the code and a fingerprint of the user state it was bound to.
type CodeRecord struct {
	CodeHash    string `json:"code_hash"`
	Fingerprint string `json:"fingerprint"`
}

// ConfirmationCodeStore keeps single-use, time-scoped confirmation codes.
// Single-use means consumed on a successful exchange: a mistyped code must
// leave the record in place so the user can retry with the genuine one.
type ConfirmationCodeStore interface {
	Save(ctx context.Context, username string, record CodeRecord, ttl time.Duration) error
	// Peek returns the record without removing it.
	Peek(ctx context.Context, username string) (*CodeRecord, error)
	// Delete consumes the record. Callers invoke it after a successful code
	// comparison, or to invalidate a record outright.
	Delete(ctx context.Context, username string) error
}

type redisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) ConfirmationCodeStore {
	return &redisCodeStore{client: client}
}

func codeKey(username string) string {
	return "confirmation_code:" + username
}

func (s *redisCodeStore) Save(ctx context.Context, username string, record CodeRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal code record: %w", err)
	}
	if err := s.client.Set(ctx, codeKey(username), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

func (s *redisCodeStore) Peek(ctx context.Context, username string) (*CodeRecord, error) {
	payload, err := s.client.Get(ctx, codeKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch confirmation code: %w", err)
	}

	var record CodeRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("unmarshal code record: %w", err)
	}
	return &record, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, codeKey(username)).Err(); err != nil {
		return fmt.Errorf("consume confirmation code: %w", err)
	}
	return nil
}
