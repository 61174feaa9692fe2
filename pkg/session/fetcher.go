package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"dglai-harvest/pkg/domain"
	"dglai-harvest/pkg/markup"
)

// DefaultURLTemplate is the dictionary lookup endpoint; %s receives the session identifier.
const DefaultURLTemplate = "https://tal.ircam.ma/dglai/search/indexs?session=%s"

// ServerErrorMarkers are substrings the server embeds in pages rendered after
// an internal error.
var ServerErrorMarkers = []string{
	"A PHP Error was encountered",
	"Fatal error",
}

var (
	sectionQuery = markup.Query{Tag: "section", Class: "ddoc_funfact_detail_haut"}
	resultQuery  = markup.Query{Tag: "div", Class: "result"}
)

// excerptLimit bounds the error page text kept in a failure detail.
const excerptLimit = 200

// Getter issues GET requests.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Fetcher retrieves the result fragment of one session identifier.
type Fetcher struct {
	client      Getter
	urlTemplate string
	logger      *slog.Logger
}

// NewFetcher returns a fetcher. An empty template selects DefaultURLTemplate.
func NewFetcher(client Getter, urlTemplate string, logger *slog.Logger) *Fetcher {
	if urlTemplate == "" {
		urlTemplate = DefaultURLTemplate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:      client,
		urlTemplate: urlTemplate,
		logger:      logger.With("component", "session"),
	}
}

// URLFor returns the lookup URL of a session identifier.
func (f *Fetcher) URLFor(sessionID string) string {
	return fmt.Sprintf(f.urlTemplate, url.QueryEscape(sessionID))
}

// Fetch performs exactly one request for sessionID and returns the div.result
// fragment. Every failure is a *FetchError carrying its classification.
func (f *Fetcher) Fetch(ctx context.Context, sessionID string) (markup.Fragment, error) {
	pageURL := f.URLFor(sessionID)
	start := time.Now()

	resp, err := f.client.Get(ctx, pageURL)
	if err != nil {
		return nil, &FetchError{SessionID: sessionID, Kind: domain.FailureHTTP, Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			SessionID: sessionID,
			Kind:      domain.FailureHTTP,
			Detail:    fmt.Sprintf("Status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{SessionID: sessionID, Kind: domain.FailureHTTP, Detail: "read body: " + err.Error(), Err: err}
	}
	page := string(body)

	for _, marker := range ServerErrorMarkers {
		if strings.Contains(page, marker) {
			return nil, &FetchError{
				SessionID: sessionID,
				Kind:      domain.FailureServerError,
				Detail:    errorExcerpt(page, marker),
			}
		}
	}

	doc, err := markup.ParseString(page)
	if err != nil {
		return nil, &FetchError{SessionID: sessionID, Kind: domain.FailureNoSection, Detail: err.Error(), Err: err}
	}
	section, ok := doc.Find(sectionQuery)
	if !ok {
		return nil, &FetchError{
			SessionID: sessionID,
			Kind:      domain.FailureNoSection,
			Detail:    "No 'section.ddoc_funfact_detail_haut' found",
		}
	}
	result, ok := section.Find(resultQuery)
	if !ok {
		return nil, &FetchError{
			SessionID: sessionID,
			Kind:      domain.FailureNoResult,
			Detail:    "No 'div.result' found inside 'section.ddoc_funfact_detail_haut'",
		}
	}

	f.logger.Debug("fetched session",
		slog.String("session_id", sessionID),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// errorExcerpt returns the readable text of a server error page, falling back
// to the marker that identified it.
func errorExcerpt(page, marker string) string {
	article, err := readability.FromReader(strings.NewReader(page), nil)
	if err != nil {
		return marker
	}
	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return marker
	}
	if r := []rune(text); len(r) > excerptLimit {
		text = string(r[:excerptLimit]) + "…"
	}
	return text
}
