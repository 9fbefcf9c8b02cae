package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qikfiller/internal/errors"
)

func newTestService(handler http.Handler) (*Service, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewService(server.URL, "test-key", 5*time.Second), server
}

func TestFetchReferenceLists(t *testing.T) {
	ctx := context.Background()

	t.Run("should fetch and decode the user list", func(t *testing.T) {
		var gotPath, gotKey string
		service, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("api_key")
			w.Write([]byte(`{"users": [{"id": 1, "name": "Alice", "login": "alice", "enabled": true}]}`))
		}))
		defer server.Close()

		users, err := service.FetchUsers(ctx)

		require.NoError(t, err)
		assert.Equal(t, "/users.json", gotPath)
		assert.Equal(t, "test-key", gotKey)
		require.Len(t, users, 1)
		assert.Equal(t, int64(1), users[0].ID)
		assert.Equal(t, "alice", users[0].Login)
	})

	t.Run("should decode nested task trees from the tasks endpoint", func(t *testing.T) {
		service, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tasks.json", r.URL.Path)
			w.Write([]byte(`{"clients": [
				{"id": 1, "name": "Acme", "tasks": [
					{"id": 10, "name": "Project", "sub_tasks": [
						{"id": 11, "name": "Phase", "estimated_hours": 40, "sub_tasks": []}
					]}
				]}
			]}`))
		}))
		defer server.Close()

		clients, err := service.FetchClients(ctx)

		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Len(t, clients[0].Tasks, 1)
		require.Len(t, clients[0].Tasks[0].SubTasks, 1)
		nested := clients[0].Tasks[0].SubTasks[0]
		assert.Equal(t, int64(11), nested.ID)
		require.NotNil(t, nested.EstimatedHours)
		assert.Equal(t, int64(40), *nested.EstimatedHours)
	})

	t.Run("should decode tag types, entry types and categories", func(t *testing.T) {
		service, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/tag_types.json":
				w.Write([]byte(`{"tag_types": [{"id": 1, "name": "Jira", "description": "issue key"}]}`))
			case "/types.json":
				w.Write([]byte(`{"types": [{"id": 2, "name": "Billable", "colour": "#0f0", "enabled": true}]}`))
			case "/categories.json":
				w.Write([]byte(`{"categories": [{"id": 3, "name": "Development"}]}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		tagTypes, err := service.FetchTagTypes(ctx)
		require.NoError(t, err)
		require.Len(t, tagTypes, 1)
		assert.Equal(t, "issue key", tagTypes[0].Description)

		entryTypes, err := service.FetchEntryTypes(ctx)
		require.NoError(t, err)
		require.Len(t, entryTypes, 1)
		assert.Equal(t, "#0f0", entryTypes[0].Colour)

		categories, err := service.FetchCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Development", categories[0].Name)
	})

	t.Run("should turn a non-2xx response into a remote error with the body", func(t *testing.T) {
		service, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("bad api key"))
		}))
		defer server.Close()

		_, err := service.FetchUsers(ctx)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRemote))
		assert.Contains(t, err.Error(), "bad api key")
	})

	t.Run("should fail on a malformed response body", func(t *testing.T) {
		service, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := service.FetchUsers(ctx)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRemote))
	})
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("should post the encoded entry parameters", func(t *testing.T) {
		var gotMethod string
		var gotQuery url.Values
		service, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotQuery = r.URL.Query()
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("created"))
		}))
		defer server.Close()

		result, err := service.CreateEntry(ctx, Entry{
			StartTime:   "2024-06-01 10:00",
			EndTime:     "2024-06-01 12:00",
			TypeID:      1,
			TaskID:      27,
			CategoryID:  3,
			OwnerID:     "apiuser",
			Description: "review notes",
			JiraID:      "ABC-123",
		})

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "2024-06-01 10:00", gotQuery.Get("entry[start_time]"))
		assert.Equal(t, "2024-06-01 12:00", gotQuery.Get("entry[end_time]"))
		assert.Equal(t, "27", gotQuery.Get("entry[task_id]"))
		assert.Equal(t, "apiuser", gotQuery.Get("entry[owner_id]"))
		assert.Equal(t, "ABC-123", gotQuery.Get("entry[jira_id]"))
		assert.Equal(t, "test-key", gotQuery.Get("api_key"))
		assert.Equal(t, http.StatusCreated, result.StatusCode)
		assert.Equal(t, "created", result.Body)
	})

	t.Run("should hand back an error response verbatim", func(t *testing.T) {
		service, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"errors": ["task is archived"]}`))
		}))
		defer server.Close()

		result, err := service.CreateEntry(ctx, Entry{})

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, result.StatusCode)
		assert.Contains(t, result.Body, "task is archived")
	})
}

func TestSearchEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("should get the encoded search parameters", func(t *testing.T) {
		var gotMethod, gotPath string
		var gotQuery url.Values
		service, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			w.Write([]byte(`{"entries": []}`))
		}))
		defer server.Close()

		result, err := service.SearchEntries(ctx, SearchQuery{
			DateRangeFrom: "2024-05-25",
			DateRangeTo:   "2024-06-01",
			Rate:          "All",
			Client:        "All",
			Task:          "27",
			Categories:    "All",
			Users:         "apiuser",
			Limit:         1000,
			DateType:      "created_at",
		})

		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, gotMethod)
		assert.Equal(t, "/entries/search.json", gotPath)
		assert.Equal(t, "2024-05-25", gotQuery.Get("date_range_from"))
		assert.Equal(t, "27", gotQuery.Get("task"))
		assert.Equal(t, "1000", gotQuery.Get("limit"))
		assert.Equal(t, "created_at", gotQuery.Get("date_type"))
		assert.Equal(t, `{"entries": []}`, result.Body)
	})
}

func TestEndpoint(t *testing.T) {
	t.Run("should strip a trailing slash from the base url", func(t *testing.T) {
		service := NewService("https://example.qiktimes.com/", "k", time.Second)

		got := service.endpoint("users", nil)

		assert.Equal(t, "https://example.qiktimes.com/users.json?api_key=k", got)
	})
}
