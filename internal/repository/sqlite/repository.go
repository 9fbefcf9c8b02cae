package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"qikfiller/internal/domain"
	"qikfiller/internal/errors"
	"qikfiller/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for reference cache operations. The cache
// is a derived copy of the remote reference data: rows are only ever written
// by sync, keyed by their remote id.
type Repository interface {
	// Upsert operations, one transaction per kind
	UpsertUsers(ctx context.Context, users []*domain.User) error
	UpsertClients(ctx context.Context, clients []*domain.Client) error
	UpsertTasks(ctx context.Context, tasks []*domain.Task) error
	UpsertCategories(ctx context.Context, categories []*domain.Category) error
	UpsertTagTypes(ctx context.Context, tagTypes []*domain.TagType) error
	UpsertEntryTypes(ctx context.Context, entryTypes []*domain.EntryType) error

	// Generic id/name access used by the field resolver
	GetReference(ctx context.Context, kind domain.Kind, id int64) (*domain.Reference, error)
	SearchReferences(ctx context.Context, kind domain.Kind, fragment string) ([]*domain.Reference, error)
	ListReferences(ctx context.Context, kind domain.Kind) ([]*domain.Reference, error)

	// Typed access
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListTagTypes(ctx context.Context) ([]*domain.TagType, error)
	ListEntryTypes(ctx context.Context) ([]*domain.EntryType, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	SearchTasks(ctx context.Context, fragment string) ([]*domain.Task, error)

	// Stored credentials
	SaveProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context) (*domain.Profile, error)

	// Utility
	Reset(ctx context.Context) error
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Reset drops and recreates every cache table. Used by init before a full
// reload; the stored profile is wiped along with the reference rows.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	drops := []string{
		"DROP TABLE IF EXISTS profile",
		"DROP TABLE IF EXISTS types",
		"DROP TABLE IF EXISTS tag_types",
		"DROP TABLE IF EXISTS categories",
		"DROP TABLE IF EXISTS tasks",
		"DROP TABLE IF EXISTS clients",
		"DROP TABLE IF EXISTS users",
		"DROP TABLE IF EXISTS migrations",
	}
	for _, query := range drops {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return errors.NewDatabaseError("reset cache", err)
		}
	}

	if err := migrations.RunMigrations(r.db); err != nil {
		return errors.NewDatabaseError("recreate cache", err)
	}
	return nil
}

// UpsertUsers inserts or overwrites user rows by id
func (r *SQLiteRepository) UpsertUsers(ctx context.Context, users []*domain.User) error {
	query := `
	INSERT INTO users (id, name, login, time_zone, email, first_name, last_name, enabled, is_admin, created_at, updated_at, last_login)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		login = excluded.login,
		time_zone = excluded.time_zone,
		email = excluded.email,
		first_name = excluded.first_name,
		last_name = excluded.last_name,
		enabled = excluded.enabled,
		is_admin = excluded.is_admin,
		created_at = excluded.created_at,
		updated_at = excluded.updated_at,
		last_login = excluded.last_login`

	return UpsertBatch(ctx, r.db, users, func(tx *sql.Tx, user *domain.User) error {
		_, err := tx.ExecContext(ctx, query,
			user.ID, user.Name, user.Login, user.TimeZone, user.Email,
			user.FirstName, user.LastName, user.Enabled, user.IsAdmin,
			FormatTimePtrForDB(user.CreatedAt), FormatTimePtrForDB(user.UpdatedAt), FormatTimePtrForDB(user.LastLogin))
		return err
	})
}

// UpsertClients inserts or overwrites client rows by id
func (r *SQLiteRepository) UpsertClients(ctx context.Context, clients []*domain.Client) error {
	query := `
	INSERT INTO clients (id, name, owner_id, owner_name, custom_fields)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		owner_id = excluded.owner_id,
		owner_name = excluded.owner_name,
		custom_fields = excluded.custom_fields`

	return UpsertBatch(ctx, r.db, clients, func(tx *sql.Tx, client *domain.Client) error {
		_, err := tx.ExecContext(ctx, query,
			client.ID, client.Name, client.OwnerID, client.OwnerName, JoinCustomFields(client.CustomFields))
		return err
	})
}

// UpsertTasks inserts or overwrites task rows by id
func (r *SQLiteRepository) UpsertTasks(ctx context.Context, tasks []*domain.Task) error {
	query := `
	INSERT INTO tasks (id, name, owner_id, owner_name, custom_fields, archived, estimated_hours, client_id, parent_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		owner_id = excluded.owner_id,
		owner_name = excluded.owner_name,
		custom_fields = excluded.custom_fields,
		archived = excluded.archived,
		estimated_hours = excluded.estimated_hours,
		client_id = excluded.client_id,
		parent_id = excluded.parent_id`

	return UpsertBatch(ctx, r.db, tasks, func(tx *sql.Tx, task *domain.Task) error {
		_, err := tx.ExecContext(ctx, query,
			task.ID, task.Name, task.OwnerID, task.OwnerName, JoinCustomFields(task.CustomFields),
			task.Archived, NullableInt64(task.EstimatedHours), NullableInt64(task.ClientID), NullableInt64(task.ParentID))
		return err
	})
}

// UpsertCategories inserts or overwrites category rows by id
func (r *SQLiteRepository) UpsertCategories(ctx context.Context, categories []*domain.Category) error {
	query := `
	INSERT INTO categories (id, name)
	VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET name = excluded.name`

	return UpsertBatch(ctx, r.db, categories, func(tx *sql.Tx, category *domain.Category) error {
		_, err := tx.ExecContext(ctx, query, category.ID, category.Name)
		return err
	})
}

// UpsertTagTypes inserts or overwrites tag type rows by id
func (r *SQLiteRepository) UpsertTagTypes(ctx context.Context, tagTypes []*domain.TagType) error {
	query := `
	INSERT INTO tag_types (id, name, description)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		description = excluded.description`

	return UpsertBatch(ctx, r.db, tagTypes, func(tx *sql.Tx, tagType *domain.TagType) error {
		_, err := tx.ExecContext(ctx, query, tagType.ID, tagType.Name, tagType.Description)
		return err
	})
}

// UpsertEntryTypes inserts or overwrites entry type rows by id
func (r *SQLiteRepository) UpsertEntryTypes(ctx context.Context, entryTypes []*domain.EntryType) error {
	query := `
	INSERT INTO types (id, name, colour, enabled, user_creatable)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		colour = excluded.colour,
		enabled = excluded.enabled,
		user_creatable = excluded.user_creatable`

	return UpsertBatch(ctx, r.db, entryTypes, func(tx *sql.Tx, entryType *domain.EntryType) error {
		_, err := tx.ExecContext(ctx, query,
			entryType.ID, entryType.Name, entryType.Colour, entryType.Enabled, entryType.UserCreatable)
		return err
	})
}

// GetReference retrieves the id/name projection for a kind by id. Absence is
// a NotFound error, distinct from an empty search result.
func (r *SQLiteRepository) GetReference(ctx context.Context, kind domain.Kind, id int64) (*domain.Reference, error) {
	query := fmt.Sprintf("SELECT id, name FROM %s WHERE id = ?", kind.Table())
	return QuerySingle(ctx, r.db, query, ScanReference, kind.String(), fmt.Sprintf("%d", id), id)
}

// SearchReferences finds rows of a kind whose name contains the fragment,
// case-insensitive, ordered by id. An empty result is not an error.
func (r *SQLiteRepository) SearchReferences(ctx context.Context, kind domain.Kind, fragment string) ([]*domain.Reference, error) {
	query := fmt.Sprintf("SELECT id, name FROM %s WHERE name LIKE ? ORDER BY id ASC", kind.Table())
	return QueryMultiple(ctx, r.db, query, ScanReferences, kind.String(), "%"+fragment+"%")
}

// ListReferences retrieves all id/name projections for a kind in id order
func (r *SQLiteRepository) ListReferences(ctx context.Context, kind domain.Kind) ([]*domain.Reference, error) {
	query := fmt.Sprintf("SELECT id, name FROM %s ORDER BY id ASC", kind.Table())
	return QueryMultiple(ctx, r.db, query, ScanReferences, kind.String())
}

// ListUsers retrieves all users
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query := `
	SELECT id, name, login, time_zone, email, first_name, last_name, enabled, is_admin, created_at, updated_at, last_login
	FROM users ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanUsers, "users")
}

// ListClients retrieves all clients
func (r *SQLiteRepository) ListClients(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT id, name, owner_id, owner_name, custom_fields FROM clients ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanClients, "clients")
}

// ListCategories retrieves all categories
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanCategories, "categories")
}

// ListTagTypes retrieves all tag types
func (r *SQLiteRepository) ListTagTypes(ctx context.Context) ([]*domain.TagType, error) {
	query := `SELECT id, name, description FROM tag_types ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTagTypes, "tag types")
}

// ListEntryTypes retrieves all entry types
func (r *SQLiteRepository) ListEntryTypes(ctx context.Context) ([]*domain.EntryType, error) {
	query := `SELECT id, name, colour, enabled, user_creatable FROM types ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanEntryTypes, "types")
}

// GetClient retrieves a client by ID
func (r *SQLiteRepository) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT id, name, owner_id, owner_name, custom_fields FROM clients WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanClient, "client", fmt.Sprintf("%d", id), id)
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
	SELECT id, name, owner_id, owner_name, custom_fields, archived, estimated_hours, client_id, parent_id
	FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasks retrieves all tasks in id order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	query := `
	SELECT id, name, owner_id, owner_name, custom_fields, archived, estimated_hours, client_id, parent_id
	FROM tasks ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// SearchTasks finds tasks whose name contains the fragment, case-insensitive
func (r *SQLiteRepository) SearchTasks(ctx context.Context, fragment string) ([]*domain.Task, error) {
	query := `
	SELECT id, name, owner_id, owner_name, custom_fields, archived, estimated_hours, client_id, parent_id
	FROM tasks WHERE name LIKE ? ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", "%"+fragment+"%")
}

// SaveProfile stores the credentials row written by init
func (r *SQLiteRepository) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	query := `
	INSERT INTO profile (id, api_url, api_key)
	VALUES (1, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		api_url = excluded.api_url,
		api_key = excluded.api_key`

	if _, err := r.db.ExecContext(ctx, query, profile.APIURL, profile.APIKey); err != nil {
		return errors.NewDatabaseError("save profile", err)
	}
	return nil
}

// GetProfile retrieves the stored credentials row
func (r *SQLiteRepository) GetProfile(ctx context.Context) (*domain.Profile, error) {
	query := `SELECT id, api_url, api_key FROM profile WHERE id = 1`
	return QuerySingle(ctx, r.db, query, ScanProfile, "profile", "1")
}
