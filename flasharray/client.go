/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package flasharray is a minimal client for the Pure Storage FlashArray
// REST 1.x management API, covering the three read operations the sensor
// needs plus session handling.
package flasharray

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// DefaultAPIVersion is the oldest REST version exposing the hardware,
// monitor and space endpoints in the shape the sensor consumes.
const DefaultAPIVersion = "1.19"

type options struct {
	scheme             string
	timeout            time.Duration
	insecureSkipVerify bool
	apiVersion         string
}

type Option func(*options)

// WithScheme overrides the URL scheme used when the host carries none.
func WithScheme(scheme string) Option {
	return func(o *options) { o.scheme = scheme }
}

// WithTimeout bounds every API call, transport defaults are too generous for
// a sensor that PRTG itself times out after a fixed interval.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithInsecureSkipVerify disables TLS certificate validation. Arrays in the
// field commonly run self-signed management certificates; validation stays
// strict unless the operator opts out.
func WithInsecureSkipVerify(skip bool) Option {
	return func(o *options) { o.insecureSkipVerify = skip }
}

func WithAPIVersion(version string) Option {
	return func(o *options) { o.apiVersion = version }
}

// Client is an authenticated handle to one array. The session cookie issued
// at login lives in the cookie jar and authenticates the subsequent reads.
type Client struct {
	base string
	http *retryablehttp.Client
}

// NewClient builds an unauthenticated client for the given management
// address. The address may be a bare hostname/IP or carry a scheme prefix.
func NewClient(host string, opts ...Option) (*Client, error) {
	o := options{
		scheme:     "https",
		timeout:    30 * time.Second,
		apiVersion: DefaultAPIVersion,
	}
	for _, opt := range opts {
		opt(&o)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar - %v", err)
	}

	tr := &http.Transport{
		Dial: (&net.Dialer{
			Timeout: 3 * time.Second,
		}).Dial,
		MaxIdleConns:          1,
		MaxConnsPerHost:       1,
		MaxIdleConnsPerHost:   1,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: o.insecureSkipVerify,
			Renegotiation:      tls.RenegotiateOnceAsClient,
		},
		TLSHandshakeTimeout: 10 * time.Second,
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Transport = tr
	retryClient.HTTPClient.Timeout = o.timeout
	retryClient.HTTPClient.Jar = jar
	retryClient.Logger = nil
	// the sensor makes one attempt per call, failures are reported not retried
	retryClient.RetryMax = 0

	// host may be passed with or without a scheme prefix
	fqdn, err := url.ParseRequestURI(host)
	if err != nil || fqdn.Host == "" {
		fqdn = &url.URL{
			Scheme: o.scheme,
			Host:   host,
		}
	}

	return &Client{
		base: fqdn.String() + "/api/" + o.apiVersion,
		http: retryClient,
	}, nil
}

type authRequest struct {
	APIToken string `json:"api_token"`
}

type authResponse struct {
	Username string `json:"username"`
}

// Login exchanges the API token for a session cookie. Any transport or
// authentication failure is returned with the underlying error text so the
// sensor can surface it verbatim.
func (c *Client) Login(ctx context.Context, apiToken string) error {
	payload, err := json.Marshal(authRequest{APIToken: apiToken})
	if err != nil {
		return fmt.Errorf("failed to marshal auth request - %v", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/session", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build auth request - %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error connecting to array at %s - %v", c.base, err)
	}
	defer emptyAndCloseBody(resp)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("array authentication failed - HTTP status %d - %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return fmt.Errorf("error decoding auth response - %v", err)
	}

	zap.L().Debug("established array session", zap.String("username", auth.Username))

	return nil
}

// Logout tears down the session. Best effort, the session expires server
// side anyway.
func (c *Client) Logout(ctx context.Context) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodDelete, c.base+"/auth/session", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer emptyAndCloseBody(resp)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		return fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request - %v", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer emptyAndCloseBody(resp)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		return fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body - %v", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decoding response - %v", err)
	}

	return nil
}

// This is required to have a proper cleanup of the response body
// to have correctly working keep-alive connections
func emptyAndCloseBody(resp *http.Response) {
	if resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
