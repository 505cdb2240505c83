package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobtrack/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// messageSpacing keeps consecutive webhook posts under Slack's
// one-message-per-second guidance.
const messageSpacing = 500 * time.Millisecond

// SlackNotifier announces postings in a Slack channel through an Incoming
// Webhook, one Block Kit message per posting.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier backed by the given webhook URL.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify delivers one message per posting, spacing sends apart. A posting
// whose delivery fails is logged and skipped; Notify itself errors only
// when every delivery failed.
func (s *SlackNotifier) Notify(postings []model.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	var failed int
	for i, p := range postings {
		if i > 0 {
			time.Sleep(messageSpacing)
		}
		if err := s.deliver(p); err != nil {
			s.logger.Error("slack delivery failed", "company", p.Company, "title", p.Title, "error", err)
			failed++
		}
	}

	if failed == len(postings) {
		return fmt.Errorf("all %d slack notifications failed", failed)
	}
	s.logger.Info("slack notifications delivered", "sent", len(postings)-failed, "failed", failed)
	return nil
}

// deliver posts a single message, retrying once when Slack answers 429.
func (s *SlackNotifier) deliver(p model.Posting) error {
	body, err := json.Marshal(messageFor(p))
	if err != nil {
		return fmt.Errorf("encode slack message: %w", err)
	}

	for attempt := 0; ; attempt++ {
		resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("post webhook: %w", err)
		}
		status := resp.StatusCode
		wait := retryDelay(resp.Header.Get("Retry-After"))
		resp.Body.Close()

		switch {
		case status == http.StatusOK:
			s.logger.Info("slack message sent", "company", p.Company, "title", p.Title, "attempts", attempt+1)
			return nil
		case status == http.StatusTooManyRequests && attempt == 0:
			s.logger.Warn("slack rate limited, retrying", "wait", wait)
			time.Sleep(wait)
		default:
			return fmt.Errorf("slack webhook returned status %d", status)
		}
	}
}

// retryDelay reads a Retry-After header value, with a one second floor.
func retryDelay(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

// Incoming Webhook wire format, just the Block Kit subset used here.

type webhookMessage struct {
	Blocks []messageBlock `json:"blocks"`
}

type messageBlock struct {
	Type     string          `json:"type"`
	Text     *textObject     `json:"text,omitempty"`
	Fields   []textObject    `json:"fields,omitempty"`
	Elements []buttonElement `json:"elements,omitempty"`
}

type textObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type buttonElement struct {
	Type  string     `json:"type"`
	Text  textObject `json:"text"`
	URL   string     `json:"url"`
	Style string     `json:"style"`
}

// messageFor renders one posting as a Block Kit message. Postings
// without a URL get no Apply button.
func messageFor(p model.Posting) webhookMessage {
	field := func(label, value string) textObject {
		return textObject{Type: "mrkdwn", Text: "*" + label + ":*\n" + value}
	}

	// Source kinds are lowercase on the wire; title-case for display.
	src := cases.Title(language.English).String(p.Source)

	blocks := []messageBlock{
		{Type: "header", Text: &textObject{Type: "plain_text", Text: "🚀 " + p.Company + ": " + p.Title}},
		{Type: "section", Fields: []textObject{field("Company", p.Company), field("Location", p.Location)}},
		{Type: "section", Fields: []textObject{field("Source", src), field("Posting ID", p.ID)}},
	}

	// Slack rejects buttons with an empty URL; some boards omit one.
	if p.URL != "" {
		blocks = append(blocks, messageBlock{
			Type: "actions",
			Elements: []buttonElement{{
				Type:  "button",
				Text:  textObject{Type: "plain_text", Text: "Apply Now"},
				URL:   p.URL,
				Style: "primary",
			}},
		})
	}

	return webhookMessage{Blocks: append(blocks, messageBlock{Type: "divider"})}
}

// SendTestMessage pushes a fabricated posting through a notifier so channel
// wiring can be checked from the CLI.
func SendTestMessage(n model.Notifier) error {
	return n.Notify([]model.Posting{{
		ID:       "test_jobtrack_001",
		Title:    "Jobtrack test — notifications are wired up",
		Company:  "Jobtrack",
		URL:      "https://boards.greenhouse.io",
		Location: "Everywhere",
		Source:   "test",
	}})
}
