package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"qikfiller/internal/errors"
	"qikfiller/internal/logging"
)

// Service is the HTTP client for the QikTimes web API. Calls block until the
// response arrives or the context deadline expires; there is no retry or
// backoff, and failures surface the status and body verbatim.
type Service struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewService creates a client for the given QikTimes instance
func NewService(baseURL, apiKey string, timeout time.Duration) *Service {
	return &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Entry is a timesheet entry create request. Times are naive local
// "YYYY-MM-DD HH:MM" strings, matching what the service expects.
type Entry struct {
	StartTime   string
	EndTime     string
	TypeID      int64
	TaskID      int64
	CategoryID  int64
	OwnerID     string
	Description string
	JiraID      string
}

// Values encodes the entry as the entries.json query parameters
func (e Entry) Values() url.Values {
	values := url.Values{}
	values.Set("entry[start_time]", e.StartTime)
	values.Set("entry[end_time]", e.EndTime)
	values.Set("entry[type_id]", fmt.Sprintf("%d", e.TypeID))
	values.Set("entry[task_id]", fmt.Sprintf("%d", e.TaskID))
	values.Set("entry[category_id]", fmt.Sprintf("%d", e.CategoryID))
	values.Set("entry[owner_id]", e.OwnerID)
	values.Set("entry[description]", e.Description)
	values.Set("entry[jira_id]", e.JiraID)
	return values
}

// SearchQuery is an entries/search.json request
type SearchQuery struct {
	DateRangeFrom string
	DateRangeTo   string
	Rate          string
	Client        string
	Task          string
	Categories    string
	Users         string
	Limit         int
	DateType      string
}

// Values encodes the query as the search.json query parameters
func (q SearchQuery) Values() url.Values {
	values := url.Values{}
	values.Set("date_range_from", q.DateRangeFrom)
	values.Set("date_range_to", q.DateRangeTo)
	values.Set("rate", q.Rate)
	values.Set("client", q.Client)
	values.Set("task", q.Task)
	values.Set("categories", q.Categories)
	values.Set("users", q.Users)
	values.Set("limit", fmt.Sprintf("%d", q.Limit))
	values.Set("date_type", q.DateType)
	return values
}

// Result carries a response back to the caller unchanged
type Result struct {
	URL        string
	StatusCode int
	Body       string
}

// FetchUsers retrieves the user list
func (s *Service) FetchUsers(ctx context.Context) ([]User, error) {
	var response usersResponse
	if err := s.getJSON(ctx, "users", &response); err != nil {
		return nil, err
	}
	return response.Users, nil
}

// FetchTagTypes retrieves the tag type list
func (s *Service) FetchTagTypes(ctx context.Context) ([]TagType, error) {
	var response tagTypesResponse
	if err := s.getJSON(ctx, "tag_types", &response); err != nil {
		return nil, err
	}
	return response.TagTypes, nil
}

// FetchEntryTypes retrieves the entry type list
func (s *Service) FetchEntryTypes(ctx context.Context) ([]EntryType, error) {
	var response entryTypesResponse
	if err := s.getJSON(ctx, "types", &response); err != nil {
		return nil, err
	}
	return response.Types, nil
}

// FetchCategories retrieves the category list
func (s *Service) FetchCategories(ctx context.Context) ([]Category, error) {
	var response categoriesResponse
	if err := s.getJSON(ctx, "categories", &response); err != nil {
		return nil, err
	}
	return response.Categories, nil
}

// FetchClients retrieves the client list with its nested task trees.
// The endpoint is tasks.json but the top-level key is clients.
func (s *Service) FetchClients(ctx context.Context) ([]Client, error) {
	var response tasksResponse
	if err := s.getJSON(ctx, "tasks", &response); err != nil {
		return nil, err
	}
	return response.Clients, nil
}

// CreateEntry submits a new timesheet entry. The response is returned
// verbatim, whatever the status, so the caller can print it for the user.
func (s *Service) CreateEntry(ctx context.Context, entry Entry) (*Result, error) {
	requestURL := s.endpoint("entries", entry.Values())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, nil)
	if err != nil {
		return nil, errors.NewTransportError("create entry", err)
	}

	logging.Debugf("POST %s\n", requestURL)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError("create entry", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError("read response", err)
	}

	return &Result{URL: requestURL, StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// SearchEntries queries existing entries. Like CreateEntry, the response
// body is handed back unparsed.
func (s *Service) SearchEntries(ctx context.Context, query SearchQuery) (*Result, error) {
	requestURL := s.endpoint("entries/search", query.Values())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewTransportError("search entries", err)
	}

	logging.Debugf("GET %s\n", requestURL)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError("search entries", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError("read response", err)
	}

	return &Result{URL: requestURL, StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// endpoint builds "{base}/{resource}.json?api_key=K&..." with extra values merged in
func (s *Service) endpoint(resource string, extra url.Values) string {
	values := url.Values{}
	values.Set("api_key", s.apiKey)
	for key, vals := range extra {
		for _, v := range vals {
			values.Add(key, v)
		}
	}
	return fmt.Sprintf("%s/%s.json?%s", s.baseURL, resource, values.Encode())
}

// getJSON fetches a reference list endpoint and decodes it. Non-2xx
// responses become remote errors carrying the body.
func (s *Service) getJSON(ctx context.Context, resource string, target interface{}) error {
	requestURL := s.endpoint(resource, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.NewTransportError("fetch "+resource, err)
	}

	logging.Debugf("GET %s\n", requestURL)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.NewTransportError("fetch "+resource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError("read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewRemoteError(resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewTransportError("decode "+resource, err)
	}
	return nil
}
