package crud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widgetClient(t *testing.T, handler http.Handler, token string) (*Client[widget, *widget, widget, widget], *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rq := NewRequester(srv.URL, "test-csrf")
	actions := NewActions[widget, widget, widget](rq, "widget")
	return NewClient[widget, *widget]("widget", actions, StaticToken(token)), srv
}

func TestClient_FetchItems(t *testing.T) {
	c, _ := widgetClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/widget", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "test-csrf", r.Header.Get("X-CSRF-Token"))
		json.NewEncoder(w).Encode(ListResponse[widget]{
			Success: true,
			Data:    []widget{testWidget("a", "Alpha")},
		})
	}), "tok")

	require.NoError(t, c.FetchItems(context.Background()))
	assert.Len(t, c.Items(), 1)
	assert.Empty(t, c.Err())
	assert.False(t, c.Loading())
}

func TestClient_FetchItemsWithoutTokenIsNoop(t *testing.T) {
	var calls atomic.Int32
	c, _ := widgetClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}), "")

	require.NoError(t, c.FetchItems(context.Background()))
	assert.Zero(t, calls.Load(), "unauthenticated fetch must not hit the network")
	assert.Empty(t, c.Err())
}

// A failure envelope resets the list and records the message: the hook
// state must end up {items: [], error: "boom", loading: false}.
func TestClient_FetchItemsFailureEnvelope(t *testing.T) {
	c, _ := widgetClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "boom"})
	}), "tok")

	err := c.FetchItems(context.Background())
	require.Error(t, err)
	assert.Empty(t, c.Items())
	assert.Equal(t, "boom", c.Err())
	assert.False(t, c.Loading())
}

func TestClient_FetchItemsFailureWithoutMessageIsFormatError(t *testing.T) {
	c, _ := widgetClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}), "tok")

	err := c.FetchItems(context.Background())
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, c.Err(), "invalid data format")
}

func TestClient_GetItemEmptyDataIsNotFound(t *testing.T) {
	c, _ := widgetClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}), "tok")

	_, err := c.GetItem(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "no widget found")
	assert.False(t, c.Loading())
}

func TestClient_CreateRefetches(t *testing.T) {
	var lists atomic.Int32
	c, _ := widgetClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/widget/store":
			rec := testWidget("a", "Alpha")
			json.NewEncoder(w).Encode(MutateResponse[widget]{Success: true, Data: &rec})
		case r.Method == http.MethodGet && r.URL.Path == "/api/widget":
			lists.Add(1)
			json.NewEncoder(w).Encode(ListResponse[widget]{Success: true, Data: []widget{testWidget("a", "Alpha")}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}), "tok")

	rec, err := c.CreateItem(context.Background(), testWidget("", "Alpha"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, int32(1), lists.Load(), "successful create must trigger one refetch")
	assert.Len(t, c.Items(), 1)
}

func TestClient_MutationFailureSetsErrorAndReturnsIt(t *testing.T) {
	c, _ := widgetClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "description required"})
	}), "tok")

	_, err := c.CreateItem(context.Background(), testWidget("", ""))
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "description required", c.Err())
	assert.False(t, c.Loading())
}

func TestSyncClient_MirrorsStoreAndDoubleRefetches(t *testing.T) {
	var lists atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/widget/delete/a":
			json.NewEncoder(w).Encode(DeleteResponse{Success: true, Message: "suspended"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/widget":
			lists.Add(1)
			json.NewEncoder(w).Encode(ListResponse[widget]{Success: true, Data: []widget{testWidget("a", "Alpha")}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	c, _ := widgetClient(t, handler, "tok")
	store := newWidgetStore()
	sync := NewSyncClient(c, store)

	require.NoError(t, sync.Delete(context.Background(), "a"))
	// One refetch inside the base client, one more after the mirror.
	assert.Equal(t, int32(2), lists.Load())
	assert.Len(t, store.Items(), 1)
	assert.Empty(t, store.Error())
}

func TestSyncClient_RefreshMirrorsError(t *testing.T) {
	c, _ := widgetClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "boom"})
	}), "tok")
	store := newWidgetStore()
	sync := NewSyncClient(c, store)

	require.Error(t, sync.Refresh(context.Background()))
	assert.Equal(t, "boom", store.Error())
	assert.Empty(t, store.Items())
	assert.False(t, store.Loading())
}

func TestRequester_Non2xxCarriesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "no widget found"})
	}))
	t.Cleanup(srv.Close)

	rq := NewRequester(srv.URL, "")
	var out GetResponse[widget]
	err := rq.Do(context.Background(), http.MethodGet, "/api/widget/x", "tok", nil, &out)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "no widget found", apiErr.Message)
}

func TestRequester_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	rq := NewRequester(srv.URL, "")
	var out ListResponse[widget]
	err := rq.Do(context.Background(), http.MethodGet, "/api/widget", "tok", nil, &out)
	require.ErrorIs(t, err, ErrMalformedResponse)
}
