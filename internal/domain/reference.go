package domain

import (
	"fmt"
	"time"
)

// Reference is the id/name projection shared by every cached entity. All
// fuzzy matching and disambiguation operates on this shape.
type Reference struct {
	ID   int64
	Name string
}

// String returns the reference in "id: name" form for listings
func (r Reference) String() string {
	return fmt.Sprintf("%d: %s", r.ID, r.Name)
}

// User is a timesheet user snapshot from the remote service.
type User struct {
	ID        int64
	Name      string
	Login     string
	TimeZone  string
	Email     string
	FirstName string
	LastName  string
	Enabled   bool
	IsAdmin   bool
	CreatedAt *time.Time
	UpdatedAt *time.Time
	LastLogin *time.Time
}

// Ref returns the id/name projection of the user
func (u User) Ref() Reference {
	return Reference{ID: u.ID, Name: u.Name}
}

// Client owns a tree of tasks. Direct children are stored on the task rows
// via ClientID; the client row itself carries no child list.
type Client struct {
	ID           int64
	Name         string
	OwnerID      int64
	OwnerName    string
	CustomFields []string
}

// Ref returns the id/name projection of the client
func (c Client) Ref() Reference {
	return Reference{ID: c.ID, Name: c.Name}
}

// Task is a node in a client's task tree. Exactly one of ClientID and
// ParentID is set for any task reachable from the remote listing: a task is
// either a direct child of a client or a sub-task of another task.
type Task struct {
	ID             int64
	Name           string
	OwnerID        int64
	OwnerName      string
	CustomFields   []string
	Archived       bool
	EstimatedHours *int64
	ClientID       *int64
	ParentID       *int64
}

// Ref returns the id/name projection of the task
func (t Task) Ref() Reference {
	return Reference{ID: t.ID, Name: t.Name}
}

// HasValidParentage reports whether exactly one of ClientID and ParentID is set.
func (t Task) HasValidParentage() bool {
	return (t.ClientID != nil) != (t.ParentID != nil)
}

// Category is a flat entry category.
type Category struct {
	ID   int64
	Name string
}

// Ref returns the id/name projection of the category
func (c Category) Ref() Reference {
	return Reference{ID: c.ID, Name: c.Name}
}

// TagType is a flat tag type with a description.
type TagType struct {
	ID          int64
	Name        string
	Description string
}

// Ref returns the id/name projection of the tag type
func (t TagType) Ref() Reference {
	return Reference{ID: t.ID, Name: t.Name}
}

// EntryType is an entry type such as Billable or Unbillable.
type EntryType struct {
	ID            int64
	Name          string
	Colour        string
	Enabled       bool
	UserCreatable bool
}

// Ref returns the id/name projection of the entry type
func (e EntryType) Ref() Reference {
	return Reference{ID: e.ID, Name: e.Name}
}

// Profile holds the credentials stored in the cache by init. A single row
// with ID 1 is kept.
type Profile struct {
	ID     int64
	APIURL string
	APIKey string
}
