package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"qikfiller/internal/domain"
	"qikfiller/internal/errors"
	"qikfiller/internal/logging"
	"qikfiller/internal/remote"
	"qikfiller/internal/repository/sqlite"
	"qikfiller/internal/resolve"
	"qikfiller/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// entryTimeLayout is the naive local form the entries endpoint expects
const entryTimeLayout = "2006-01-02 15:04"

// API defines the interface for all qikfiller operations
type API interface {
	// Cache lifecycle
	Init(ctx context.Context, profile *domain.Profile) error
	Sync(ctx context.Context) error

	// Listings
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListTagTypes(ctx context.Context) ([]*domain.TagType, error)
	ListEntryTypes(ctx context.Context) ([]*domain.EntryType, error)
	FindReferences(ctx context.Context, kind domain.Kind, token string) ([]*domain.Reference, error)
	TaskTree(ctx context.Context) ([]string, error)

	// Entry operations
	CreateEntry(ctx context.Context, params CreateEntryParams) (*CreateEntryResult, error)
	SearchEntries(ctx context.Context, params SearchEntriesParams) (*SearchEntriesResult, error)
}

// CreateEntryParams carries the raw user tokens for a create command
type CreateEntryParams struct {
	Type        string
	Task        string
	Category    string
	User        string
	Date        string
	Start       string
	End         string
	Duration    string
	Description string
	JiraID      string
	Dry         bool
}

// CreateEntryResult is the resolved request and, unless dry, the remote response
type CreateEntryResult struct {
	Entry     remote.Entry
	Submitted *remote.Result
}

// SearchEntriesParams carries the raw user tokens for a search command.
// Collection fields are comma-separated tokens, or "All".
type SearchEntriesParams struct {
	From       string
	To         string
	Types      string
	Clients    string
	Tasks      string
	Categories string
	User       string
	Limit      int
	DateType   string
	Dry        bool
}

// SearchEntriesResult is the resolved query and, unless dry, the remote response
type SearchEntriesResult struct {
	Query     remote.SearchQuery
	Submitted *remote.Result
}

type apiImpl struct {
	repo     sqlite.Repository
	service  *remote.Service
	resolver *resolve.Resolver
}

// New creates a new API instance. The chooser handles disambiguation when a
// fuzzy token matches more than one reference.
func New(repo sqlite.Repository, service *remote.Service, chooser resolve.Chooser) API {
	return &apiImpl{
		repo:     repo,
		service:  service,
		resolver: resolve.NewResolver(repo, chooser),
	}
}

// Init wipes the cache, stores the active credentials as the profile, and
// performs a full sync.
func (a *apiImpl) Init(ctx context.Context, profile *domain.Profile) error {
	if err := a.repo.Reset(ctx); err != nil {
		return err
	}
	if profile != nil {
		if err := a.repo.SaveProfile(ctx, profile); err != nil {
			return err
		}
	}
	return a.Sync(ctx)
}

// Sync refreshes every reference kind from the remote service. Each kind is
// merged in its own transaction; a failure on one kind leaves kinds already
// merged in place.
func (a *apiImpl) Sync(ctx context.Context) error {
	users, err := a.service.FetchUsers(ctx)
	if err != nil {
		return err
	}
	if err := a.repo.UpsertUsers(ctx, mapUsers(users)); err != nil {
		return err
	}
	logging.Debugf("synced %d users\n", len(users))

	tagTypes, err := a.service.FetchTagTypes(ctx)
	if err != nil {
		return err
	}
	if err := a.repo.UpsertTagTypes(ctx, mapTagTypes(tagTypes)); err != nil {
		return err
	}
	logging.Debugf("synced %d tag types\n", len(tagTypes))

	entryTypes, err := a.service.FetchEntryTypes(ctx)
	if err != nil {
		return err
	}
	if err := a.repo.UpsertEntryTypes(ctx, mapEntryTypes(entryTypes)); err != nil {
		return err
	}
	logging.Debugf("synced %d types\n", len(entryTypes))

	categories, err := a.service.FetchCategories(ctx)
	if err != nil {
		return err
	}
	if err := a.repo.UpsertCategories(ctx, mapCategories(categories)); err != nil {
		return err
	}
	logging.Debugf("synced %d categories\n", len(categories))

	remoteClients, err := a.service.FetchClients(ctx)
	if err != nil {
		return err
	}
	clients, tasks, err := flattenClients(remoteClients)
	if err != nil {
		return err
	}
	if err := a.repo.UpsertClients(ctx, clients); err != nil {
		return err
	}
	if err := a.repo.UpsertTasks(ctx, tasks); err != nil {
		return err
	}
	logging.Debugf("synced %d clients, %d tasks\n", len(clients), len(tasks))

	return nil
}

// ListUsers returns all cached users
func (a *apiImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return a.repo.ListUsers(ctx)
}

// ListClients returns all cached clients
func (a *apiImpl) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return a.repo.ListClients(ctx)
}

// ListCategories returns all cached categories
func (a *apiImpl) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return a.repo.ListCategories(ctx)
}

// ListTagTypes returns all cached tag types
func (a *apiImpl) ListTagTypes(ctx context.Context) ([]*domain.TagType, error) {
	return a.repo.ListTagTypes(ctx)
}

// ListEntryTypes returns all cached entry types
func (a *apiImpl) ListEntryTypes(ctx context.Context) ([]*domain.EntryType, error) {
	return a.repo.ListEntryTypes(ctx)
}

// FindReferences filters a kind by an id or name fragment. An integer token
// is a point lookup; anything else is a substring search.
func (a *apiImpl) FindReferences(ctx context.Context, kind domain.Kind, token string) ([]*domain.Reference, error) {
	if token == "" {
		return a.repo.ListReferences(ctx, kind)
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64); err == nil {
		ref, err := a.repo.GetReference(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		return []*domain.Reference{ref}, nil
	}
	return a.repo.SearchReferences(ctx, kind, token)
}

// TaskTree renders every task's root-to-leaf path as indented lines, two
// spaces per level.
func (a *apiImpl) TaskTree(ctx context.Context) ([]string, error) {
	tasks, err := a.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	hierarchy := resolve.NewHierarchy(a.repo)
	var lines []string
	for _, task := range tasks {
		path, err := hierarchy.DisplayPath(ctx, task)
		if err != nil {
			return nil, err
		}
		lines = append(lines, path.Client.Ref().String())
		indent := "  "
		for _, node := range path.Tasks {
			lines = append(lines, indent+node.Ref().String())
			indent += "  "
		}
	}
	return lines, nil
}

// CreateEntry resolves the field and time tokens and submits a new entry.
// With Dry set the resolved request is returned without being sent.
func (a *apiImpl) CreateEntry(ctx context.Context, params CreateEntryParams) (*CreateEntryResult, error) {
	typeID, err := a.resolver.Field(ctx, domain.KindEntryType, params.Type)
	if err != nil {
		return nil, err
	}
	taskID, err := a.resolver.TaskField(ctx, params.Task)
	if err != nil {
		return nil, err
	}
	categoryID, err := a.resolver.Field(ctx, domain.KindCategory, params.Category)
	if err != nil {
		return nil, err
	}
	owner, err := a.resolveOwner(ctx, params.User)
	if err != nil {
		return nil, err
	}

	start, end, err := resolve.Window(params.Date, params.Start, params.End, params.Duration, timeNow())
	if err != nil {
		return nil, err
	}

	entry := remote.Entry{
		StartTime:   start.Format(entryTimeLayout),
		EndTime:     end.Format(entryTimeLayout),
		TypeID:      typeID,
		TaskID:      taskID,
		CategoryID:  categoryID,
		OwnerID:     owner,
		Description: params.Description,
		JiraID:      params.JiraID,
	}

	result := &CreateEntryResult{Entry: entry}
	if params.Dry {
		return result, nil
	}

	submitted, err := a.service.CreateEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	result.Submitted = submitted
	return result, nil
}

// SearchEntries resolves collection tokens and queries existing entries
func (a *apiImpl) SearchEntries(ctx context.Context, params SearchEntriesParams) (*SearchEntriesResult, error) {
	if err := validation.ValidateLimit(params.Limit); err != nil {
		return nil, err
	}
	dateType, err := validation.ResolveDateType(params.DateType)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	from, err := resolve.ParseDate(params.From, now)
	if err != nil {
		return nil, err
	}
	to, err := resolve.ParseDate(params.To, now)
	if err != nil {
		return nil, err
	}

	rate, err := a.resolveCollection(ctx, domain.KindEntryType, params.Types)
	if err != nil {
		return nil, err
	}
	client, err := a.resolveCollection(ctx, domain.KindClient, params.Clients)
	if err != nil {
		return nil, err
	}
	task, err := a.resolveCollection(ctx, domain.KindTask, params.Tasks)
	if err != nil {
		return nil, err
	}
	categories, err := a.resolveCollection(ctx, domain.KindCategory, params.Categories)
	if err != nil {
		return nil, err
	}

	query := remote.SearchQuery{
		DateRangeFrom: from.Format("2006-01-02"),
		DateRangeTo:   to.Format("2006-01-02"),
		Rate:          rate,
		Client:        client,
		Task:          task,
		Categories:    categories,
		Users:         params.User,
		Limit:         params.Limit,
		DateType:      dateType,
	}

	result := &SearchEntriesResult{Query: query}
	if params.Dry {
		return result, nil
	}

	submitted, err := a.service.SearchEntries(ctx, query)
	if err != nil {
		return nil, err
	}
	result.Submitted = submitted
	return result, nil
}

// resolveOwner resolves the entry owner token. The "apiuser" sentinel is
// passed through untouched; anything else must resolve to a cached user.
func (a *apiImpl) resolveOwner(ctx context.Context, token string) (string, error) {
	if token == "" || token == "apiuser" {
		return "apiuser", nil
	}
	id, err := a.resolver.Field(ctx, domain.KindUser, token)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", id), nil
}

// resolveCollection resolves a comma-separated list of field tokens into a
// comma-separated id list. "All" (or empty) means no filter.
func (a *apiImpl) resolveCollection(ctx context.Context, kind domain.Kind, tokens string) (string, error) {
	tokens = strings.TrimSpace(tokens)
	if tokens == "" || strings.EqualFold(tokens, "all") {
		return "All", nil
	}

	var ids []string
	for _, token := range strings.Split(tokens, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		var id int64
		var err error
		if kind == domain.KindTask {
			id, err = a.resolver.TaskField(ctx, token)
		} else {
			id, err = a.resolver.Field(ctx, kind, token)
		}
		if err != nil {
			return "", err
		}
		ids = append(ids, fmt.Sprintf("%d", id))
	}
	if len(ids) == 0 {
		return "All", nil
	}
	return strings.Join(ids, ","), nil
}

// flattenClients turns the nested remote client/task trees into flat rows.
// Direct children of a client get ClientID; nested sub-tasks get ParentID.
func flattenClients(remoteClients []remote.Client) ([]*domain.Client, []*domain.Task, error) {
	var clients []*domain.Client
	var tasks []*domain.Task

	for _, rc := range remoteClients {
		client := &domain.Client{
			ID:           rc.ID,
			Name:         rc.Name,
			OwnerID:      rc.OwnerID,
			OwnerName:    rc.OwnerName,
			CustomFields: rc.CustomFields,
		}
		clients = append(clients, client)

		for _, rt := range rc.Tasks {
			clientID := rc.ID
			if err := appendTask(&tasks, rt, &clientID, nil); err != nil {
				return nil, nil, err
			}
		}
	}
	return clients, tasks, nil
}

// appendTask adds one remote task node and recurses into its sub-tasks
func appendTask(tasks *[]*domain.Task, rt remote.Task, clientID, parentID *int64) error {
	task := &domain.Task{
		ID:             rt.ID,
		Name:           rt.Name,
		OwnerID:        rt.OwnerID,
		OwnerName:      rt.OwnerName,
		CustomFields:   rt.CustomFields,
		Archived:       rt.Archived,
		EstimatedHours: rt.EstimatedHours,
		ClientID:       clientID,
		ParentID:       parentID,
	}
	if !task.HasValidParentage() {
		return errors.NewCorruptHierarchyError(task.ID, "task must have exactly one of client and parent")
	}
	*tasks = append(*tasks, task)

	for _, sub := range rt.SubTasks {
		parent := rt.ID
		if err := appendTask(tasks, sub, nil, &parent); err != nil {
			return err
		}
	}
	return nil
}

func mapUsers(remoteUsers []remote.User) []*domain.User {
	users := make([]*domain.User, len(remoteUsers))
	for i, ru := range remoteUsers {
		users[i] = &domain.User{
			ID:        ru.ID,
			Name:      ru.Name,
			Login:     ru.Login,
			TimeZone:  ru.TimeZone,
			Email:     ru.Email,
			FirstName: ru.FirstName,
			LastName:  ru.LastName,
			Enabled:   ru.Enabled,
			IsAdmin:   ru.IsAdmin,
			CreatedAt: parseTimestamp(ru.CreatedAt),
			UpdatedAt: parseTimestamp(ru.UpdatedAt),
			LastLogin: parseTimestamp(ru.LastLogin),
		}
	}
	return users
}

func mapTagTypes(remoteTagTypes []remote.TagType) []*domain.TagType {
	tagTypes := make([]*domain.TagType, len(remoteTagTypes))
	for i, rt := range remoteTagTypes {
		tagTypes[i] = &domain.TagType{ID: rt.ID, Name: rt.Name, Description: rt.Description}
	}
	return tagTypes
}

func mapEntryTypes(remoteEntryTypes []remote.EntryType) []*domain.EntryType {
	entryTypes := make([]*domain.EntryType, len(remoteEntryTypes))
	for i, rt := range remoteEntryTypes {
		entryTypes[i] = &domain.EntryType{
			ID:            rt.ID,
			Name:          rt.Name,
			Colour:        rt.Colour,
			Enabled:       rt.Enabled,
			UserCreatable: rt.UserCreatable,
		}
	}
	return entryTypes
}

func mapCategories(remoteCategories []remote.Category) []*domain.Category {
	categories := make([]*domain.Category, len(remoteCategories))
	for i, rc := range remoteCategories {
		categories[i] = &domain.Category{ID: rc.ID, Name: rc.Name}
	}
	return categories
}

// parseTimestamp parses a remote timestamp leniently; the formats vary
// between instances, so unparseable values are dropped rather than fatal.
func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		logging.Debugf("could not parse timestamp %q\n", value)
		return nil
	}
	return &parsed
}
