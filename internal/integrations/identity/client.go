package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "identity:user:"

// Client клиент identity provider с кэшем профилей в Redis
type Client struct {
	baseURL    string
	httpClient *http.Client
	redis      *redis.Client
	cacheTTL   time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента
// rdb может быть nil, тогда кэш не используется
func NewClient(baseURL string, timeout time.Duration, rdb *redis.Client, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		redis:    rdb,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetUser получает имя и email пользователя
func (c *Client) GetUser(ctx context.Context, uid string) (*User, error) {
	cacheKey := cacheKeyPrefix + uid

	var cached User
	if c.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	endpoint := fmt.Sprintf("%s/internal/users/%s", c.baseURL, url.PathEscape(uid))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if user.UID == "" {
		user.UID = uid
	}

	c.writeCache(ctx, cacheKey, &user)
	return &user, nil
}

// GetUserWithGracefulDegradation получает профиль, а при недоступности провайдера
// возвращает ErrServiceDegraded, чтобы вызывающий мог создать пустой профиль
func (c *Client) GetUserWithGracefulDegradation(ctx context.Context, uid string) (*User, error) {
	user, err := c.GetUser(ctx, uid)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, ErrUserNotFound) {
		c.log.Warn("Identity provider has no user uid=%s", uid)
		return nil, err
	}

	c.log.Error("Identity provider unavailable, applying graceful degradation for uid=%s: %v", uid, err)
	return nil, fmt.Errorf("%w: uid=%s, error=%v", ErrServiceDegraded, uid, err)
}

func (c *Client) readCache(ctx context.Context, key string, out interface{}) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Identity cache read failed for key=%s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val interface{}) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.log.Warn("Identity cache write failed for key=%s: %v", key, err)
	}
}
