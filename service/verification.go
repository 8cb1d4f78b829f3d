package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeTTL is how long a webinar confirmation code stays valid.
const CodeTTL = 10 * time.Minute

const codeKeyPrefix = "webinar:code:"

// ErrCodeMismatch means the supplied code is missing, expired or wrong.
var ErrCodeMismatch = errors.New("verification code invalid or expired")

var redisClient *redis.Client

// InitRedis connects the code store and pings it once.
func InitRedis(addr, password string, db int) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return redisClient.Ping(ctx).Err()
}

// CloseRedis shuts the code store down.
func CloseRedis() error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Close()
}

// NewVerificationCode generates a 6-digit code.
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func codeKey(webinarID, userID string) string {
	return fmt.Sprintf("%s%s:%s", codeKeyPrefix, webinarID, userID)
}

// StoreVerificationCode keeps the code for CodeTTL.
func StoreVerificationCode(ctx context.Context, webinarID, userID, code string) error {
	return redisClient.Set(ctx, codeKey(webinarID, userID), code, CodeTTL).Err()
}

// ConsumeVerificationCode checks the code and deletes it atomically, so a
// code can be redeemed once.
func ConsumeVerificationCode(ctx context.Context, webinarID, userID, code string) error {
	script := `
local val = redis.call("GET", KEYS[1])
if not val or val ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[1])
return 1
`
	res, err := redisClient.Eval(ctx, script, []string{codeKey(webinarID, userID)}, code).Int()
	if err != nil {
		return err
	}
	if res != 1 {
		return ErrCodeMismatch
	}
	return nil
}
