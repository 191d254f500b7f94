package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/youngpro718/nysc-facilities-sub003/internal/config"
	"go.uber.org/zap"
)

// Client is the HTTP client for the document-extraction service. The
// service owns the actual PDF parsing; this side only ships the file
// over and consumes the structured schedule it returns.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.Extract.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL:    cfg.Extract.BaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     log,
	}
}

// TermAssignmentResult is one courtroom assignment row extracted from a
// term schedule PDF.
type TermAssignmentResult struct {
	Part    string   `json:"part"`
	Justice string   `json:"justice"`
	Room    string   `json:"room"`
	Clerks  []string `json:"clerks"`
}

// TermScheduleResult is the structured form of a court term schedule.
type TermScheduleResult struct {
	TermNumber  string                 `json:"term_number"`
	TermName    string                 `json:"term_name"`
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	Location    string                 `json:"location"`
	Assignments []TermAssignmentResult `json:"assignments"`
}

// ExtractTermSchedule posts a term schedule PDF to the extraction
// service and returns the structured schedule.
func (c *Client) ExtractTermSchedule(ctx context.Context, filename string, pdf []byte) (*TermScheduleResult, error) {
	endpoint := fmt.Sprintf("%s/api/v1/extract/term_schedule", c.BaseURL)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(pdf); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Error("term schedule extraction failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result TermScheduleResult
	if err := sonic.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result, nil
}
