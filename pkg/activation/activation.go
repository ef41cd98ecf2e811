// Copyright 2026 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package activation talks to the device activation service and mints
// local activation codes.
package activation

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production activation service.
const DefaultBaseURL = "https://api.lumonode.io/devices"

const (
	codeLength   = 6
	checkTimeout = 5 * time.Second
)

// Client checks device API keys against the activation service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: checkTimeout},
	}
}

// GenerateCode returns a random 6-digit activation code for the operator
// to read to support. crypto/rand sourced, so freshly imaged devices do
// not all boot with the same code.
func GenerateCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	code := make([]byte, codeLength)
	for i, b := range buf {
		code[i] = '0' + b%10
	}
	return string(code)
}

// CheckKey asks the activation service about key. The answer is always a
// flag plus a message ready for a screen; transport and decode problems
// are reported the same way, never raised.
func (c *Client) CheckKey(key string) (bool, string) {
	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: checkTimeout}
	}

	u := fmt.Sprintf("%s/validate?key=%s", strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(key))
	resp, err := client.Get(u)
	if err != nil {
		return false, fmt.Sprintf("Network error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "Invalid API key."
	}

	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Sprintf("Network error: %v", err)
	}
	if !body.Active {
		return false, "Key found but not activated."
	}
	return true, "API key active ✅"
}
