package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
)

// Парковка валидированной заявки анонимного посетителя до авторизации.
// Ключ — идентификатор сессии из куки, TTL ограничивает время хранения.

// PendingRequest — поля формы, пережидающие логин в Redis
type PendingRequest struct {
	BusinessName string `json:"business_name"`
	WebsiteType  string `json:"website_type"`
	Email        string `json:"email"`
	Description  string `json:"description"`
	Budget       string `json:"budget,omitempty"`
}

var ErrNoPendingRequest = errors.New("no pending request for session")

func (c *Client) ParkPendingRequest(ctx context.Context, sessionID string, req PendingRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pendingPrefix+sessionID, data, PendingRequestTTL).Err()
}

// PopPendingRequest атомарно забирает и удаляет припаркованные данные.
// Повторный вызов для той же сессии вернёт ErrNoPendingRequest.
func (c *Client) PopPendingRequest(ctx context.Context, sessionID string) (*PendingRequest, error) {
	data, err := c.client.GetDel(ctx, pendingPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoPendingRequest
		}
		return nil, err
	}

	var req PendingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
