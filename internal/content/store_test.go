package content

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newIPFSStub(t *testing.T, docs map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/cat":
			doc, ok := docs[r.URL.Query().Get("arg")]
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"Message":"block was not found locally (offline)","Code":0,"Type":"error"}`)
				return
			}
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, doc)
		case "/api/v0/add":
			require.Equal(t, "true", r.URL.Query().Get("pin"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"Name":"QmAdded","Hash":"QmAdded","Size":"12"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestIPFSStore(t *testing.T) {
	t.Parallel()

	srv := newIPFSStub(t, map[string]string{"QmPlace": `{"title":"Hub"}`})
	store := NewIPFSStore(srv.URL, 5*time.Second)
	ctx := context.Background()

	data, err := store.Get(ctx, "QmPlace")
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Hub"}`, string(data))

	_, err = store.Get(ctx, "QmMissing")
	require.ErrorContains(t, err, "block was not found")

	cid, err := store.Add(ctx, []byte(`{"title":"New"}`))
	require.NoError(t, err)
	require.Equal(t, "QmAdded", cid)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Add(cancelled, []byte(`{}`))
	require.ErrorIs(t, err, context.Canceled)
}
