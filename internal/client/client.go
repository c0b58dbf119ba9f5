// Package client talks to the shower API on behalf of the terminal client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/babyduj/shower-api/internal/domain"
)

// UserAgent is sent on every request. Tokens are bound to the user agent that
// obtained them, so it must not change between runs.
const UserAgent = "shower-cli/1"

var ErrUnauthorized = errors.New("session expired or invalid, log in again")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type AuthResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type VoteBoard struct {
	HasVoted bool              `json:"has_voted"`
	Hidden   bool              `json:"hidden"`
	MyVote   *domain.Vote      `json:"my_vote"`
	Stats    *domain.VoteStats `json:"stats"`
	Girls    []domain.Vote     `json:"girls"`
	Boys     []domain.Vote     `json:"boys"`
}

type credentials struct {
	DisplayName string `json:"display_name"`
	FamilyName  string `json:"family_name"`
	PIN         string `json:"pin"`
}

func (c *Client) Signup(ctx context.Context, displayName, familyName, pin string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/signup", credentials{displayName, familyName, pin}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, displayName, familyName, pin string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{displayName, familyName, pin}, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &out)
	return out, err
}

func (c *Client) CastVote(ctx context.Context, gender domain.Gender) (domain.Vote, error) {
	var out domain.Vote
	err := c.do(ctx, http.MethodPut, "/votes/me", map[string]domain.Gender{"gender": gender}, &out)
	return out, err
}

func (c *Client) Votes(ctx context.Context, reveal bool) (VoteBoard, error) {
	var out VoteBoard
	err := c.do(ctx, http.MethodGet, "/votes?"+url.Values{"reveal": {strconv.FormatBool(reveal)}}.Encode(), nil, &out)
	return out, err
}

func (c *Client) Gifts(ctx context.Context) (domain.GiftList, error) {
	var out domain.GiftList
	err := c.do(ctx, http.MethodGet, "/gifts", nil, &out)
	return out, err
}

func (c *Client) ReserveGift(ctx context.Context, id uint) (domain.Gift, error) {
	var out domain.Gift
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/gifts/%d/reservation", id), nil, &out)
	return out, err
}

func (c *Client) UnreserveGift(ctx context.Context, id uint) (domain.Gift, error) {
	var out domain.Gift
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/gifts/%d/reservation", id), nil, &out)
	return out, err
}

func (c *Client) DeleteGift(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/gifts/%d", id), nil, nil)
}

func (c *Client) GuestBook(ctx context.Context) ([]domain.GuestBookEntry, error) {
	var out []domain.GuestBookEntry
	err := c.do(ctx, http.MethodGet, "/guestbook", nil, &out)
	return out, err
}

func (c *Client) SignGuestBook(ctx context.Context, message string, private bool) (domain.GuestBookEntry, error) {
	var out domain.GuestBookEntry
	body := map[string]interface{}{"message": message, "is_private": private}
	err := c.do(ctx, http.MethodPut, "/guestbook/me", body, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json.Marshal -> %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("c.http.Do(%s %s) -> %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeErr(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("json.Decode -> %w", err)
	}

	return nil
}

func decodeErr(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload)
	if payload.Error == "" {
		payload.Error = resp.Status
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	if resp.StatusCode == http.StatusUnauthorized && !strings.Contains(resp.Request.URL.Path, "/auth/") {
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	}

	return apiErr
}
