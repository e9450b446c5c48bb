package edamam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"potluck/config"
)

var testCreds = config.Credentials{AppID: "test-id", AppKey: "test-key", AccountUser: "user-42"}

func makeHits(n int) []map[string]any {
	hits := make([]map[string]any, n)
	for i := range hits {
		hits[i] = map[string]any{"recipe": map[string]any{
			"label":  fmt.Sprintf("Recipe %d", i),
			"url":    fmt.Sprintf("https://example.com/r/%d", i),
			"source": "test kitchen",
		}}
	}
	return hits
}

// pagedHandler serves `pages` pages of `hitsPerPage` hits each, chaining
// them with _links.next and counting requests.
func pagedHandler(calls *int, pages, hitsPerPage int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*calls++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		resp := map[string]any{"hits": makeHits(hitsPerPage)}
		if page < pages {
			resp["_links"] = map[string]any{"next": map[string]any{
				"href": fmt.Sprintf("http://%s/?page=%d", r.Host, page+1),
			}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func newTestClient(t *testing.T, handler http.Handler, creds config.Credentials) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{Credentials: creds, BaseURL: srv.URL})
}

func TestFetchPoolTwoPagesOfFifty(t *testing.T) {
	var calls int
	c := newTestClient(t, pagedHandler(&calls, 2, 50), testCreds)

	pool, err := c.FetchPool(context.Background(), "salad")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, pool, 100)
}

func TestFetchPoolRequestShape(t *testing.T) {
	var gotQuery map[string][]string
	var gotHeader string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotHeader = r.Header.Get("Edamam-Account-User")
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": makeHits(1)})
	})
	c := newTestClient(t, handler, testCreds)

	_, err := c.FetchPool(context.Background(), "miso soup")
	require.NoError(t, err)
	assert.Equal(t, []string{"public"}, gotQuery["type"])
	assert.Equal(t, []string{"miso soup"}, gotQuery["q"])
	assert.Equal(t, []string{"test-id"}, gotQuery["app_id"])
	assert.Equal(t, []string{"test-key"}, gotQuery["app_key"])
	assert.Equal(t, "user-42", gotHeader)
}

func TestFetchPoolNoAccountUserHeader(t *testing.T) {
	var hasHeader bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasHeader = r.Header["Edamam-Account-User"]
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": makeHits(1)})
	})
	creds := config.Credentials{AppID: "id", AppKey: "key"}
	c := newTestClient(t, handler, creds)

	_, err := c.FetchPool(context.Background(), "stew")
	require.NoError(t, err)
	assert.False(t, hasHeader)
}

func TestFetchPoolPageCeiling(t *testing.T) {
	// 10-hit pages never satisfy the 80-hit target, so the 5-page ceiling
	// bounds the attempt.
	var calls int
	c := newTestClient(t, pagedHandler(&calls, 100, 10), testCreds)

	pool, err := c.FetchPool(context.Background(), "bread")
	require.NoError(t, err)
	assert.Equal(t, 5, calls)
	assert.Len(t, pool, 50)
}

func TestFetchPoolSizeTarget(t *testing.T) {
	// ceil(80/30) = 3 pages before the between-page size check trips.
	var calls int
	c := newTestClient(t, pagedHandler(&calls, 100, 30), testCreds)

	pool, err := c.FetchPool(context.Background(), "noodles")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, pool, 90)
}

func TestFetchPoolStopsWhenNextAbsent(t *testing.T) {
	var calls int
	c := newTestClient(t, pagedHandler(&calls, 1, 5), testCreds)

	pool, err := c.FetchPool(context.Background(), "tacos")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, pool, 5)
}

func TestFetchPoolMissingCredentials(t *testing.T) {
	var calls int
	c := newTestClient(t, pagedHandler(&calls, 1, 5), config.Credentials{})

	_, err := c.FetchPool(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvAppID)
	assert.Equal(t, 0, calls, "missing credentials must not reach the network")
}

func TestFetchPoolHTTPError(t *testing.T) {
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	})
	c := newTestClient(t, handler, testCreds)

	_, err := c.FetchPool(context.Background(), "pizza")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "429")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}

func TestFetchPoolAbortsMidPagination(t *testing.T) {
	// Page 2 fails; the attempt returns nothing from page 1.
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		resp := map[string]any{
			"hits":   makeHits(10),
			"_links": map[string]any{"next": map[string]any{"href": "http://" + r.Host + "/?page=2"}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	c := newTestClient(t, handler, testCreds)

	pool, err := c.FetchPool(context.Background(), "curry")
	require.Error(t, err)
	assert.Nil(t, pool)
	assert.Equal(t, 2, calls)
}

func TestFetchPoolMalformedJSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	c := newTestClient(t, handler, testCreds)

	_, err := c.FetchPool(context.Background(), "pie")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestFetchPoolNullRecipePayloads(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hits": []map[string]any{{"recipe": nil}, {"recipe": nil}},
		})
	})
	c := newTestClient(t, handler, testCreds)

	_, err := c.FetchPool(context.Background(), "unicorn")
	assert.True(t, errors.Is(err, ErrNoResults))
}

func TestFetchPoolEmptyHits(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": []any{}})
	})
	c := newTestClient(t, handler, testCreds)

	_, err := c.FetchPool(context.Background(), "zzzzz")
	assert.True(t, errors.Is(err, ErrNoResults))
}

func TestFetchPoolOnPageCallback(t *testing.T) {
	srv := httptest.NewServer(pagedHandler(new(int), 2, 50))
	t.Cleanup(srv.Close)

	var pages []int
	var hits []int
	c := NewClient(Options{
		Credentials: testCreds,
		BaseURL:     srv.URL,
		OnPage: func(page, n int) {
			pages = append(pages, page)
			hits = append(hits, n)
		},
	})

	_, err := c.FetchPool(context.Background(), "salad")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, pages)
	assert.Equal(t, []int{50, 50}, hits)
}
