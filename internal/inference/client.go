// Package inference calls the external page annotation service.
package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tradeflow/internal/annotation"
	"tradeflow/internal/config"
	"tradeflow/internal/domain"
	"tradeflow/internal/metrics"
	"tradeflow/internal/port"
)

// Client implements port.Inferencer over HTTP.
type Client struct {
	endpoint      string
	apiKey        string
	model         string
	defaultPrompt string
	client        *http.Client
}

// NewClient creates an inference client from config.
func NewClient(cfg *config.InferenceConfig) *Client {
	return &Client{
		endpoint:      cfg.Endpoint,
		apiKey:        cfg.APIKey,
		model:         cfg.Model,
		defaultPrompt: cfg.DefaultPrompt,
		client:        &http.Client{Timeout: cfg.Timeout()},
	}
}

type requestDocument struct {
	ContentType string `json:"content_type"`
	Data        string `json:"data"`
}

type request struct {
	Model        string              `json:"model,omitempty"`
	DocumentType domain.DocumentType `json:"document_type"`
	Prompt       string              `json:"prompt"`
	Document     *requestDocument    `json:"document,omitempty"`
	PageTexts    []string            `json:"page_texts"`
}

type response struct {
	Model string          `json:"model"`
	Pages json.RawMessage `json:"pages"`
}

// Infer sends the scan and page texts and decodes one page annotation per page.
func (c *Client) Infer(ctx context.Context, input port.InferenceInput) (*port.InferenceOutput, error) {
	if !domain.ValidDocumentTypes[input.DocumentType] {
		return nil, domain.ErrInvalidDocumentType
	}

	prompt := c.promptFor(input)
	reqBody := request{
		Model:        c.model,
		DocumentType: input.DocumentType,
		Prompt:       prompt,
		PageTexts:    input.PageTexts,
	}
	if reqBody.PageTexts == nil {
		reqBody.PageTexts = []string{}
	}
	if len(input.FileBytes) > 0 {
		reqBody.Document = &requestDocument{
			ContentType: input.ContentType,
			Data:        base64.StdEncoding.EncodeToString(input.FileBytes),
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	docType := string(input.DocumentType)
	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.InferenceDuration.WithLabelValues(docType).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InferenceRequestsTotal.WithLabelValues(docType, "transport_error").Inc()
		return nil, fmt.Errorf("calling inference service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.InferenceRequestsTotal.WithLabelValues(docType, "transport_error").Inc()
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.InferenceRequestsTotal.WithLabelValues(docType, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: truncate(string(respBody), 500)}
	}

	out, err := parseResponse(respBody, input.DocumentType)
	if err != nil {
		metrics.InferenceRequestsTotal.WithLabelValues(docType, "invalid_response").Inc()
		return nil, err
	}
	metrics.InferenceRequestsTotal.WithLabelValues(docType, "ok").Inc()

	out.PromptUsed = prompt
	if out.ModelUsed == "" {
		out.ModelUsed = c.model
	}
	return out, nil
}

func (c *Client) promptFor(input port.InferenceInput) string {
	switch {
	case input.Prompt != "":
		return input.Prompt
	case c.defaultPrompt != "":
		return c.defaultPrompt
	default:
		return BuildPrompt(input.DocumentType)
	}
}

// parseResponse decodes the page list into the typed variant for docType and checks
// every item ordinal once, so folding can trust the shape.
func parseResponse(body []byte, docType domain.DocumentType) (*port.InferenceOutput, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w (raw: %s)", err, truncate(string(body), 500))
	}

	set := &annotation.PageSet{DocumentType: docType}
	switch docType {
	case domain.DocumentTypePurchaseOrder:
		if err := decodePages(resp.Pages, &set.PurchaseOrder); err != nil {
			return nil, err
		}
		for p := range set.PurchaseOrder {
			for _, it := range set.PurchaseOrder[p].Items {
				if err := checkOrdinal(it.ObjectID, p); err != nil {
					return nil, err
				}
			}
		}
	case domain.DocumentTypeImportDeclaration:
		if err := decodePages(resp.Pages, &set.ImportDeclaration); err != nil {
			return nil, err
		}
		for p := range set.ImportDeclaration {
			for _, it := range set.ImportDeclaration[p].Items {
				if err := checkOrdinal(it.ObjectID, p); err != nil {
					return nil, err
				}
			}
		}
	}

	return &port.InferenceOutput{Pages: set, ModelUsed: resp.Model}, nil
}

func decodePages[P any](raw json.RawMessage, dst *[]P) error {
	if len(raw) == 0 || string(raw) == "null" {
		*dst = nil
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding page annotations: %w", err)
	}
	return nil
}

func checkOrdinal(ord *annotation.ItemOrdinal, page int) error {
	if ord != nil && *ord < 1 {
		return fmt.Errorf("page %d: object_id must be positive, got %d", page, *ord)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
