package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const remoteTimeout = 30 * time.Second

// RemoteAssistant forwards questions to an external assistant endpoint that
// accepts {question, conversationHistory} and replies with {answer}.
type RemoteAssistant struct {
	endpoint string
	client   *http.Client
}

func NewRemoteAssistant(endpoint string, client *http.Client) *RemoteAssistant {
	if client == nil {
		client = &http.Client{Timeout: remoteTimeout}
	}
	return &RemoteAssistant{endpoint: endpoint, client: client}
}

type remoteRequest struct {
	Question            string    `json:"question"`
	ConversationHistory []Message `json:"conversationHistory"`
}

type remoteResponse struct {
	Answer string `json:"answer"`
}

func (a *RemoteAssistant) Ask(ctx context.Context, question string, history []Message) (string, error) {
	if history == nil {
		history = []Message{}
	}
	body, err := json.Marshal(remoteRequest{Question: question, ConversationHistory: history})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("assistant returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}
	if strings.TrimSpace(out.Answer) == "" {
		return "", fmt.Errorf("assistant returned an empty answer")
	}
	return out.Answer, nil
}
