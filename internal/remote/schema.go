package remote

// Wire schemas for the QikTimes reference endpoints. Each list endpoint
// wraps its rows in a single-key object.

// User mirrors one element of users.json
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Login     string `json:"login"`
	TimeZone  string `json:"time_zone"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Enabled   bool   `json:"enabled"`
	IsAdmin   bool   `json:"is_admin"`
	UpdatedAt string `json:"updated_at"`
	LastLogin string `json:"last_login"`
	CreatedAt string `json:"created_at"`
}

// TagType mirrors one element of tag_types.json
type TagType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EntryType mirrors one element of types.json
type EntryType struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Colour        string `json:"colour"`
	Enabled       bool   `json:"enabled"`
	UserCreatable bool   `json:"user_creatable"`
}

// Category mirrors one element of categories.json
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Task mirrors one node of the task tree in tasks.json. Sub-tasks nest
// recursively.
type Task struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	OwnerID        int64    `json:"owner_id"`
	OwnerName      string   `json:"owner_name"`
	CustomFields   []string `json:"custom_fields"`
	Archived       bool     `json:"archived"`
	EstimatedHours *int64   `json:"estimated_hours"`
	SubTasks       []Task   `json:"sub_tasks"`
}

// Client mirrors one element of the clients list in tasks.json
type Client struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	OwnerID      int64    `json:"owner_id"`
	OwnerName    string   `json:"owner_name"`
	CustomFields []string `json:"custom_fields"`
	Tasks        []Task   `json:"tasks"`
}

type usersResponse struct {
	Users []User `json:"users"`
}

type tagTypesResponse struct {
	TagTypes []TagType `json:"tag_types"`
}

type entryTypesResponse struct {
	Types []EntryType `json:"types"`
}

type categoriesResponse struct {
	Categories []Category `json:"categories"`
}

type tasksResponse struct {
	Clients []Client `json:"clients"`
}
