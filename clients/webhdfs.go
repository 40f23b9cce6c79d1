package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Operation is a WebHDFS operation token sent as the op query parameter.
type Operation string

const (
	OpGetFileStatus Operation = "GETFILESTATUS"
	OpListStatus    Operation = "LISTSTATUS"
)

// RequestError reports a failed gateway call for a single path.
type RequestError struct {
	Path string
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("webhdfs request for %s failed: %v", e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// WebHDFSClient client for issuing metadata commands against a WebHDFS gateway
type WebHDFSClient struct {
	BaseURL  string
	UserName string
	client   *resty.Client
}

// NewWebHDFSClient creates a new WebHDFS client for the given gateway URL and user
func NewWebHDFSClient(baseURL, userName string) *WebHDFSClient {
	client := resty.New()
	client.SetDisableWarn(true)

	return &WebHDFSClient{
		BaseURL:  strings.TrimSuffix(baseURL, "/") + "/",
		UserName: userName,
		client:   client,
	}
}

// RunCommand executes one metadata operation against path and returns the raw
// response body. One attempt per call; retry policy belongs to the caller.
func (c *WebHDFSClient) RunCommand(ctx context.Context, op Operation, path string, extra map[string]string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", &RequestError{Path: path, Err: fmt.Errorf("path must start with /")}
	}

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("op", string(op)).
		SetQueryParam("user.name", c.UserName)
	for name, value := range extra {
		req.SetQueryParam(name, value)
	}

	resp, err := req.Get(c.BaseURL + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", &RequestError{Path: path, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &RequestError{Path: path, Err: fmt.Errorf("status %d", resp.StatusCode())}
	}

	return string(resp.Body()), nil
}
