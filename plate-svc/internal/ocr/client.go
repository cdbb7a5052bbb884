package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to an external OCR service that accepts a multipart "image"
// field and answers {"text": "..."}.
type Client struct {
	Endpoint string
	HTTP     HTTPClient
}

func NewClient(endpoint string, httpClient HTTPClient) *Client {
	return &Client{Endpoint: endpoint, HTTP: httpClient}
}

type extractResponse struct {
	Text string `json:"text"`
}

// Extract uploads the image and returns the cleaned list of menu items.
// Every transport or decoding failure is reported as ErrOCRUnavailable.
func (c *Client) Extract(ctx context.Context, filename string, image io.Reader) ([]string, error) {
	if c.Endpoint == "" {
		return nil, errors.Wrap(ErrOCRUnavailable, "no endpoint configured")
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, errors.Wrap(err, "copy image")
	}
	if err := form.Close(); err != nil {
		return nil, errors.Wrap(err, "close form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &body)
	if err != nil {
		return nil, errors.Wrap(err, "build ocr request")
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrOCRUnavailable, "post image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrOCRUnavailable, "ocr service returned %d", resp.StatusCode)
	}

	var decoded extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrapf(ErrOCRUnavailable, "decode response: %v", err)
	}
	return CleanMenuText(decoded.Text), nil
}
