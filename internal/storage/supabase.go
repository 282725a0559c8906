package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Supabase talks to the Supabase Storage REST API for one bucket.
type Supabase struct {
	baseURL string
	bucket  string
	apiKey  string
	client  *http.Client
}

func NewSupabase(baseURL, bucket, apiKey string) *Supabase {
	return &Supabase{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Supabase) Upload(ctx context.Context, path string, data []byte, overwrite bool) error {
	url := s.baseURL + "/storage/v1/object/" + s.bucket + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Content-Type", http.DetectContentType(data))
	req.Header.Set("x-upsert", strconv.FormatBool(overwrite))

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload %s: http %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// PublicURL builds the public object URL; the bucket must be public.
func (s *Supabase) PublicURL(path string) string {
	return s.baseURL + "/storage/v1/object/public/" + s.bucket + "/" + path
}
