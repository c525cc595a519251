package gatewaydev

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Kinds of user data the gateway encodes, as they appear in its routes.
var Kinds = []string{"bankcard", "nonbankcard", "product", "balance"}

type Client struct {
	Base string
	HTTP *http.Client
}

func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

type UserData struct {
	UserData string `json:"user_data"`
	Length   int    `json:"length"`
}

// Encode posts the raw JSON request body to the user data route of kind.
func (c *Client) Encode(ctx context.Context, kind string, body []byte) (UserData, error) {
	target := fmt.Sprintf("%s/userdata/%s", c.Base, kind)
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(string(body)))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return UserData{}, fmt.Errorf("encode %s: %w", kind, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return UserData{}, fmt.Errorf("encode %s status=%d body=%s", kind, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out UserData
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return UserData{}, fmt.Errorf("decode %s response: %w", kind, err)
	}
	return out, nil
}

// StoreReference saves the original message code and user data tags of a
// host response and returns the id voids and reversals refer to it by.
func (c *Client) StoreReference(ctx context.Context, originalMessageCode string, tags map[string]string) (string, error) {
	b, _ := json.Marshal(map[string]any{
		"original_message_code": originalMessageCode,
		"user_data_tags":        tags,
	})
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/references/", strings.NewReader(string(b)))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("store reference: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("store reference status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode reference: %w", err)
	}
	return payload.ID, nil
}
