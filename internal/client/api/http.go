package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
	"github.com/dmitrijs2005/noteeasy/internal/logging"
)

// HTTPClient implements Client over the backend's REST endpoints.
//
// Redirects are not followed: the backend answers a redirect-style status for
// idempotent retries of already-applied operations, and the caller needs to
// see it.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenStore, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		tokens: tokens,
		log:    log,
	}
}

// do sends the request and normalizes the response into the package's error
// taxonomy. A nil response body is never returned together with a nil error.
func (c *HTTPClient) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.Warn(ctx, "failed to load token", "err", err)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		closeBody(resp)
		return nil, ErrAlreadyApplied
	case resp.StatusCode == http.StatusUnauthorized:
		closeBody(resp)
		if c.tokens != nil {
			if err := c.tokens.Invalidate(ctx); err != nil {
				c.log.Warn(ctx, "failed to invalidate token", "err", err)
			}
		}
		return nil, ErrUnauthorized
	default:
		closeBody(resp)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func decode[T any](resp *http.Response) (T, error) {
	defer closeBody(resp)
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("failed to decode response: %w", err)
	}
	return v, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/notes", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Note](resp)
}

func (c *HTTPClient) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	url := fmt.Sprintf("%s/notes/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	note, err := decode[models.Note](resp)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	body, contentType, err := c.noteForm(ctx, note)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notes", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	created, err := decode[models.Note](resp)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id int64, note models.Note) error {
	body, contentType, err := c.noteForm(ctx, note)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/notes/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	closeBody(resp)
	return nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/notes/%d", c.baseURL, id)
	return c.deleteURL(ctx, url)
}

func (c *HTTPClient) DeleteMedia(ctx context.Context, mediaID int64) error {
	url := fmt.Sprintf("%s/notes/media/%d", c.baseURL, mediaID)
	return c.deleteURL(ctx, url)
}

func (c *HTTPClient) deleteURL(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	closeBody(resp)
	return nil
}

// noteForm builds the multipart payload the backend expects: title, details,
// and idCode fields plus one file part per local media item (field "images"
// or "videos"). Remote media already live on the backend and are not resent.
// A local media file that cannot be read is skipped with a warning rather
// than failing the whole operation, since it would otherwise wedge the queue.
func (c *HTTPClient) noteForm(ctx context.Context, note models.Note) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField("title", note.Title); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("details", note.Details); err != nil {
		return nil, "", err
	}
	if note.IDCode != 0 {
		if err := w.WriteField("idCode", strconv.FormatInt(note.IDCode, 10)); err != nil {
			return nil, "", err
		}
	}

	for _, m := range note.Media {
		if m.Remote {
			continue
		}
		field := "images"
		if m.Type == models.MediaTypeVideo {
			field = "videos"
		}
		if err := c.appendFile(ctx, w, field, m); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (c *HTTPClient) appendFile(ctx context.Context, w *multipart.Writer, field string, m models.Media) error {
	f, err := os.Open(m.URI)
	if err != nil {
		c.log.Warn(ctx, "skipping unreadable media file", "uri", m.URI, "err", err)
		return nil
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, m.FileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read media %s: %w", m.URI, err)
	}
	return nil
}
