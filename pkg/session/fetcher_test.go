package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dglai-harvest/pkg/domain"
	"dglai-harvest/pkg/httpclient"
	"dglai-harvest/pkg/markup"
)

const testTemplate = "https://dict.test/search?session=%s"

const okPage = `<html><body>
<section class="ddoc_funfact_detail_haut"><div class="result">
<h5 class="titreamz"><b>ⴰⵎⴰⵏ</b> <i>[aman]</i> nom</h5>
</div></section></body></html>`

func newTestFetcher(t *testing.T) *Fetcher {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	client := httpclient.NewClient(httpclient.BrowserClient, httpclient.WithHTTPClient(hc))
	return NewFetcher(client, testTemplate, nil)
}

func TestURLFor(t *testing.T) {
	f := NewFetcher(nil, "", nil)
	assert.Equal(t, "https://tal.ircam.ma/dglai/search/indexs?session=143752", f.URLFor("143752"))
}

func TestFetchSuccess(t *testing.T) {
	f := newTestFetcher(t)
	httpmock.RegisterResponder("GET", "https://dict.test/search?session=1",
		httpmock.NewStringResponder(http.StatusOK, okPage))

	frag, err := f.Fetch(context.Background(), "1")
	require.NoError(t, err)

	h5, ok := frag.Find(markup.Query{Tag: "h5", Class: "titreamz"})
	require.True(t, ok)
	assert.Contains(t, h5.Text(), "ⴰⵎⴰⵏ")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name       string
		responder  httpmock.Responder
		wantKind   domain.FailureKind
		wantDetail string
	}{
		{
			name:       "status code",
			responder:  httpmock.NewStringResponder(http.StatusNotFound, "not found"),
			wantKind:   domain.FailureHTTP,
			wantDetail: "Status code: 404",
		},
		{
			name:       "transport error",
			responder:  httpmock.NewErrorResponder(errors.New("connection reset")),
			wantKind:   domain.FailureHTTP,
			wantDetail: "connection reset",
		},
		{
			name:      "php error",
			responder: httpmock.NewStringResponder(http.StatusOK, `<html><body><h4>A PHP Error was encountered</h4><p>Severity: Notice</p><p>Message: Undefined offset: 0</p></body></html>`),
			wantKind:  domain.FailureServerError,
		},
		{
			name:      "fatal error",
			responder: httpmock.NewStringResponder(http.StatusOK, `<b>Fatal error</b>: Allowed memory size exhausted`),
			wantKind:  domain.FailureServerError,
		},
		{
			name:       "no section",
			responder:  httpmock.NewStringResponder(http.StatusOK, `<html><body><p>Aucun résultat</p></body></html>`),
			wantKind:   domain.FailureNoSection,
			wantDetail: "No 'section.ddoc_funfact_detail_haut' found",
		},
		{
			name:       "no result",
			responder:  httpmock.NewStringResponder(http.StatusOK, `<section class="ddoc_funfact_detail_haut"><div class="other"></div></section>`),
			wantKind:   domain.FailureNoResult,
			wantDetail: "No 'div.result' found inside 'section.ddoc_funfact_detail_haut'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t)
			httpmock.RegisterResponder("GET", "https://dict.test/search?session=77", tt.responder)

			frag, err := f.Fetch(context.Background(), "77")
			assert.Nil(t, frag)

			fe, ok := AsFetchError(err)
			require.True(t, ok, "expected *FetchError, got %v", err)
			assert.Equal(t, "77", fe.SessionID)
			assert.Equal(t, tt.wantKind, fe.Kind)
			assert.NotEmpty(t, fe.Detail)
			if tt.wantDetail != "" {
				assert.Contains(t, fe.Detail, tt.wantDetail)
			}
			assert.Equal(t, 1, httpmock.GetTotalCallCount(), "exactly one request per identifier")

			failure := fe.Failure()
			assert.Equal(t, tt.wantKind, failure.Kind)
		})
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := error(&FetchError{SessionID: "1", Kind: domain.FailureHTTP, Detail: "boom", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "session 1: http-error: boom", err.Error())
}
