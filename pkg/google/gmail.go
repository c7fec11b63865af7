package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/models"
)

const DefaultGmailBaseURL = "https://gmail.googleapis.com/gmail/v1"

// message bodies are truncated; the UI only shows a snippet-sized excerpt
const maxBodyLength = 500

var _ models.EmailSearcher = &GmailClient{}

// GmailClient searches the impersonated user's mailbox.
type GmailClient struct {
	httpClient *http.Client
	tokens     *tokenSource
	baseURL    string
}

func NewGmailClient(cfg *config.Config) (*GmailClient, error) {
	httpClient := NewRetryableHTTPClient(clientRetries, clientTimeout)
	tokens, err := newTokenSource(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	return &GmailClient{
		httpClient: httpClient,
		tokens:     tokens,
		baseURL:    DefaultGmailBaseURL,
	}, nil
}

type gmailMessagePart struct {
	MimeType string `json:"mimeType"`
	Body     struct {
		Data string `json:"data"`
	} `json:"body"`
	Parts []gmailMessagePart `json:"parts"`
}

type gmailMessage struct {
	ID      string `json:"id"`
	Payload struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
		gmailMessagePart
	} `json:"payload"`
}

type gmailThread struct {
	ID       string         `json:"id"`
	Snippet  string         `json:"snippet"`
	Messages []gmailMessage `json:"messages"`
}

// SearchThreads lists matching thread ids, then fetches each thread to
// flatten its messages into headers plus a truncated plain-text body.
func (c *GmailClient) SearchThreads(
	ctx context.Context,
	query string,
	maxResults int,
) ([]models.EmailThread, error) {
	if maxResults <= 0 {
		maxResults = 20
	}
	listQuery := url.Values{
		"q":          {query},
		"maxResults": {strconv.Itoa(maxResults)},
	}
	var listing struct {
		Threads []struct {
			ID string `json:"id"`
		} `json:"threads"`
	}
	endpoint := fmt.Sprintf("%s/users/me/threads?%s", c.baseURL, listQuery.Encode())
	if err := c.get(ctx, endpoint, &listing); err != nil {
		return nil, err
	}

	threads := make([]models.EmailThread, 0, len(listing.Threads))
	for _, entry := range listing.Threads {
		var detail gmailThread
		detailEndpoint := fmt.Sprintf("%s/users/me/threads/%s?format=full", c.baseURL, entry.ID)
		if err := c.get(ctx, detailEndpoint, &detail); err != nil {
			return nil, err
		}

		thread := models.EmailThread{
			ID:      detail.ID,
			Snippet: detail.Snippet,
		}
		for _, message := range detail.Messages {
			thread.Messages = append(thread.Messages, models.EmailMessage{
				ID:       message.ID,
				ThreadID: detail.ID,
				From:     headerValue(message, "from"),
				To:       headerValue(message, "to"),
				Subject:  headerValue(message, "subject"),
				Date:     headerValue(message, "date"),
				Body:     messageBody(message),
			})
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

func (c *GmailClient) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if err := c.tokens.authorize(ctx, req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gmail api error: %d - %s", resp.StatusCode, string(errorBody))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func headerValue(message gmailMessage, name string) string {
	for _, header := range message.Payload.Headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// messageBody decodes the message body, preferring the top-level body and
// falling back to the first text/plain part.
func messageBody(message gmailMessage) string {
	data := message.Payload.Body.Data
	if data == "" {
		for _, part := range message.Payload.Parts {
			if part.MimeType == "text/plain" && part.Body.Data != "" {
				data = part.Body.Data
				break
			}
		}
	}
	if data == "" {
		return ""
	}

	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(
		strings.TrimRight(data, "="),
	)
	if err != nil {
		return ""
	}

	body := string(decoded)
	if len(body) > maxBodyLength {
		body = body[:maxBodyLength]
	}
	return body
}
