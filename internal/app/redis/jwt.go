package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// WriteJWTToBlacklist помещает токен в блэклист до истечения его срока
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, getJWTKey(jwtStr), true, jwtTTL).Err()
}

// CheckJWTInBlacklist сообщает, отозван ли токен. Отсутствие ключа — не
// ошибка; ошибка транспорта возвращается отдельно, чтобы вызывающий мог
// отклонить токен при недоступном Redis.
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) (bool, error) {
	err := c.client.Get(ctx, getJWTKey(jwtStr)).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return false, err
}

func getJWTKey(jwtStr string) string {
	return jwtPrefix + jwtStr
}
