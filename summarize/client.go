package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// AssistantConfig configures the assistants API client used for
// file-grounded previews.
type AssistantConfig struct {
	APIKey  string
	BaseURL string // Default: https://api.openai.com/v1
	Model   string

	// Instructions is the assistant's standing instruction set; Prompt is the
	// per-thread user message.
	Instructions string
	Prompt       string

	// VectorStoreName labels the throwaway vector store created per preview.
	VectorStoreName string

	// RequestTimeout bounds each individual HTTP request. The overall preview
	// deadline lives in PreviewConfig.
	RequestTimeout time.Duration
}

func (c *AssistantConfig) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.VectorStoreName == "" {
		c.VectorStoreName = "minutes-preview"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 90 * time.Second
	}
}

// AssistantClient is a thin client for the assistants v2 endpoints. The
// endpoints are plain HTTP here so the base URL can point at any
// API-compatible provider.
type AssistantClient struct {
	cfg    AssistantConfig
	client *http.Client
}

// NewAssistantClient creates a client for the assistants API.
func NewAssistantClient(cfg AssistantConfig) *AssistantClient {
	cfg.defaults()
	return &AssistantClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// do issues one request and decodes the JSON response into out. Error
// responses are decoded from the API error envelope when possible.
func (a *AssistantClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, a.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ae apiError
		if json.Unmarshal(data, &ae) == nil && ae.Error.Message != "" {
			return fmt.Errorf("%s %s: %s (HTTP %d)", method, path, ae.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// postJSON marshals payload and issues a JSON POST.
func (a *AssistantClient) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return a.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", out)
}

// UploadFile uploads a document with purpose=assistants and returns the file
// id.
func (a *AssistantClient) UploadFile(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("purpose", "assistants"); err != nil {
		return "", fmt.Errorf("write purpose field: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finish multipart body: %w", err)
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := a.do(ctx, http.MethodPost, "/files", &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// DeleteFile removes an uploaded file. Used for best-effort cleanup.
func (a *AssistantClient) DeleteFile(ctx context.Context, fileID string) error {
	return a.do(ctx, http.MethodDelete, "/files/"+fileID, nil, "", nil)
}

// VectorStore is the subset of the vector store object the preview flow
// needs: indexing status and the failed-file count.
type VectorStore struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	FileCounts struct {
		Completed int `json:"completed"`
		Failed    int `json:"failed"`
	} `json:"file_counts"`
}

// CreateVectorStore creates a vector store seeded with the given file.
func (a *AssistantClient) CreateVectorStore(ctx context.Context, fileID string) (*VectorStore, error) {
	payload := map[string]any{
		"name":     a.cfg.VectorStoreName,
		"file_ids": []string{fileID},
	}
	var vs VectorStore
	if err := a.postJSON(ctx, "/vector_stores", payload, &vs); err != nil {
		return nil, err
	}
	return &vs, nil
}

// GetVectorStore fetches the current indexing state of a vector store.
func (a *AssistantClient) GetVectorStore(ctx context.Context, id string) (*VectorStore, error) {
	var vs VectorStore
	if err := a.do(ctx, http.MethodGet, "/vector_stores/"+id, nil, "", &vs); err != nil {
		return nil, err
	}
	return &vs, nil
}

// CreateAssistant creates an assistant wired to the vector store through the
// file_search tool, and returns its id.
func (a *AssistantClient) CreateAssistant(ctx context.Context, vectorStoreID string) (string, error) {
	payload := map[string]any{
		"model":        a.cfg.Model,
		"name":         "Meeting summarizer",
		"instructions": a.cfg.Instructions,
		"tools":        []map[string]string{{"type": "file_search"}},
		"tool_resources": map[string]any{
			"file_search": map[string]any{
				"vector_store_ids": []string{vectorStoreID},
			},
		},
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := a.postJSON(ctx, "/assistants", payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// CreateThread creates an empty thread and returns its id.
func (a *AssistantClient) CreateThread(ctx context.Context) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := a.postJSON(ctx, "/threads", map[string]any{}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// AddMessage appends a user message to a thread.
func (a *AssistantClient) AddMessage(ctx context.Context, threadID, content string) error {
	payload := map[string]any{
		"role":    "user",
		"content": content,
	}
	return a.postJSON(ctx, "/threads/"+threadID+"/messages", payload, nil)
}

// Run is the subset of the run object needed to poll for completion.
type Run struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

// CreateRun starts a run of the assistant on a thread.
func (a *AssistantClient) CreateRun(ctx context.Context, threadID, assistantID string) (*Run, error) {
	payload := map[string]any{"assistant_id": assistantID}
	var run Run
	if err := a.postJSON(ctx, "/threads/"+threadID+"/runs", payload, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun fetches the current state of a run.
func (a *AssistantClient) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := a.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, "", &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// LatestMessageText returns the text of the newest message on the thread,
// taking the first text content block.
func (a *AssistantClient) LatestMessageText(ctx context.Context, threadID string) (string, error) {
	var resp struct {
		Data []struct {
			Content []struct {
				Type string `json:"type"`
				Text struct {
					Value string `json:"value"`
				} `json:"text"`
			} `json:"content"`
		} `json:"data"`
	}
	path := "/threads/" + threadID + "/messages?order=desc&limit=1"
	if err := a.do(ctx, http.MethodGet, path, nil, "", &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", nil
	}
	for _, block := range resp.Data[0].Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text.Value), nil
		}
	}
	return "", nil
}
