package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushSplitsIntoBatches(t *testing.T) {
	var batches [][]Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/records/batch", r.URL.Path)
		require.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))

		var batch []Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		batches = append(batches, batch)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	records := make([]Record, 250)
	for i := range records {
		records[i] = Record{ID: fmt.Sprintf("id-%d", i), Title: "t", LastModified: time.Now()}
	}

	c := NewHTTPClient(srv.URL, "sekrit", srv.Client())
	require.NoError(t, Push(context.Background(), c, records))

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
	assert.Len(t, batches[2], 50)
}

func TestPushContinuesPastFailedBatch(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	records := make([]Record, 150)
	for i := range records {
		records[i] = Record{ID: fmt.Sprintf("id-%d", i)}
	}

	c := NewHTTPClient(srv.URL, "", srv.Client())
	err := Push(context.Background(), c, records)

	// First batch fails, second is still attempted, error reports the batch
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch 0-100")
	assert.Equal(t, 2, calls)
}

func TestFetchAllDecodesRecords(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/records", r.URL.Path)
		require.Equal(t, "lastModified.desc", r.URL.Query().Get("order"))
		json.NewEncoder(w).Encode([]Record{
			{ID: "a", Title: "newest", LastModified: now},
			{ID: "b", Title: "older", LastModified: now.Add(-time.Hour)},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", srv.Client())
	records, err := c.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "newest", records[0].Title)
}

func TestDeleteByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/records/task-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", srv.Client())
	require.NoError(t, c.Delete(context.Background(), "task-1"))
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "stale", srv.Client())
	_, err := c.FetchAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}
