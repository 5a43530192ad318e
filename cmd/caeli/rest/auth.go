package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/caeli-works/caeli-api-types/auth"
)

func (c *client) Login(ctx context.Context, lreq auth.LoginRequest) (auth.TokenPair, error) {
	body, err := json.Marshal(lreq)
	if err != nil {
		return auth.TokenPair{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("auth", "login"), bytes.NewReader(body),
	)
	if err != nil {
		return auth.TokenPair{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return auth.TokenPair{}, err
	}
	defer resp.Body.Close()

	var pair auth.TokenPair
	if err := unmarshalJsonResponse(
		resp, &pair,
		MessageFor{
			Status4xx: "login rejected: check username and password",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return auth.TokenPair{}, err
	}
	return pair, nil
}

func (c *client) Me(ctx context.Context) (auth.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("auth", "me"), nil)
	if err != nil {
		return auth.Profile{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return auth.Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return auth.Profile{}, ErrLoginRequired
	}

	var prof auth.Profile
	if err := unmarshalJsonResponse(
		resp, &prof,
		MessageFor{
			Status4xx: "cannot get user profile",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return auth.Profile{}, err
	}
	return prof, nil
}

// postRefresh exchanges a refresh token for a new pair, using hc
// directly so the exchange is not itself intercepted.
func postRefresh(ctx context.Context, hc *http.Client, rawurl string, refreshToken string) (auth.TokenPair, error) {
	body, err := json.Marshal(auth.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return auth.TokenPair{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawurl, bytes.NewReader(body))
	if err != nil {
		return auth.TokenPair{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return auth.TokenPair{}, err
	}
	defer resp.Body.Close()

	var pair auth.TokenPair
	if err := unmarshalJsonResponse(
		resp, &pair,
		MessageFor{
			Status4xx: "refresh token rejected",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return auth.TokenPair{}, err
	}
	return pair, nil
}
