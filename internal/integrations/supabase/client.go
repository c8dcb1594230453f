// Package supabase клиент Supabase Auth: проверка токенов и управление пользователями.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Максимальный размер страницы admin API
const listUsersPageSize = 1000

// Client клиент для работы с Supabase Auth
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Supabase Auth
func NewClient(baseURL, anonKey, serviceKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser проверяет access token и возвращает его владельца
func (c *Client) GetUser(ctx context.Context, token string) (*AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		return nil, unexpectedStatus(resp)
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidResponse)
	}

	return &user, nil
}

// CreateUser создает подтвержденного пользователя через admin API
func (c *Client) CreateUser(ctx context.Context, email, password string, metadata map[string]interface{}) (*AuthUser, error) {
	body, err := json.Marshal(createUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
		UserMetadata: metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := c.adminRequest(ctx, http.MethodPost, "/auth/v1/admin/users", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.log.Info("Supabase CreateUser: email=%s", email)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnprocessableEntity, http.StatusConflict:
		return nil, ErrUserAlreadyRegistered
	default:
		return nil, unexpectedStatus(resp)
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}

// FindUserByEmail ищет пользователя провайдера по email
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*AuthUser, error) {
	email = domain.NormalizeEmail(email)

	query := url.Values{}
	query.Set("page", "1")
	query.Set("per_page", fmt.Sprintf("%d", listUsersPageSize))

	req, err := c.adminRequest(ctx, http.MethodGet, "/auth/v1/admin/users?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp)
	}

	var list listUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	for i := range list.Users {
		if domain.NormalizeEmail(list.Users[i].Email) == email {
			return &list.Users[i], nil
		}
	}

	return nil, ErrUserNotFound
}

func (c *Client) adminRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	return req, nil
}

func unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var e errorResponse
	if json.Unmarshal(body, &e) == nil {
		if msg := firstNonEmpty(e.Message, e.Error); msg != "" {
			return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, msg)
		}
	}
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
