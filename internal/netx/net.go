// Package netx holds the small HTTP helpers classctl uses to talk to a
// running server and to object storage.
package netx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GetJSON fetches url and decodes a 200 response body into v.
func GetJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusErr("request", resp)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// UploadToPresignedURL sends body to a presigned object storage URL.
// size must match the body length; presigned PUTs reject chunked uploads.
func UploadToPresignedURL(ctx context.Context, client *http.Client, method, url string, body io.Reader, size int64) error {
	if method == "" {
		method = http.MethodPut
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusErr("upload", resp)
	}
	return nil
}

func statusErr(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return fmt.Errorf("%s failed: %s; body: %s", op, resp.Status, string(b))
}
