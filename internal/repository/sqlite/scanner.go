package sqlite

import (
	"database/sql"

	"qikfiller/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// collect drains rows through a single-row scan function
func collect[T any](rows Rows, scanFunc func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		result, err := scanFunc(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanReference scans an id/name projection from a database row
func ScanReference(scanner Scanner) (*domain.Reference, error) {
	ref := &domain.Reference{}
	if err := scanner.Scan(&ref.ID, &ref.Name); err != nil {
		return nil, err
	}
	return ref, nil
}

// ScanReferences scans multiple id/name projections from database rows
func ScanReferences(rows Rows) ([]*domain.Reference, error) {
	return collect(rows, ScanReference)
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*domain.User, error) {
	user := &domain.User{}
	var login, timeZone, email, firstName, lastName sql.NullString
	var createdAt, updatedAt, lastLogin sql.NullString

	err := scanner.Scan(
		&user.ID,
		&user.Name,
		&login,
		&timeZone,
		&email,
		&firstName,
		&lastName,
		&user.Enabled,
		&user.IsAdmin,
		&createdAt,
		&updatedAt,
		&lastLogin,
	)
	if err != nil {
		return nil, err
	}

	user.Login = login.String
	user.TimeZone = timeZone.String
	user.Email = email.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.CreatedAt = TimePtr(createdAt)
	user.UpdatedAt = TimePtr(updatedAt)
	user.LastLogin = TimePtr(lastLogin)

	return user, nil
}

// ScanUsers scans multiple users from database rows
func ScanUsers(rows Rows) ([]*domain.User, error) {
	return collect(rows, ScanUser)
}

// ScanClient scans a single client from a database row
func ScanClient(scanner Scanner) (*domain.Client, error) {
	client := &domain.Client{}
	var ownerID sql.NullInt64
	var ownerName, customFields sql.NullString

	err := scanner.Scan(&client.ID, &client.Name, &ownerID, &ownerName, &customFields)
	if err != nil {
		return nil, err
	}

	client.OwnerID = ownerID.Int64
	client.OwnerName = ownerName.String
	client.CustomFields = SplitCustomFields(customFields.String)

	return client, nil
}

// ScanClients scans multiple clients from database rows
func ScanClients(rows Rows) ([]*domain.Client, error) {
	return collect(rows, ScanClient)
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*domain.Task, error) {
	task := &domain.Task{}
	var ownerID, estimatedHours, clientID, parentID sql.NullInt64
	var ownerName, customFields sql.NullString

	err := scanner.Scan(
		&task.ID,
		&task.Name,
		&ownerID,
		&ownerName,
		&customFields,
		&task.Archived,
		&estimatedHours,
		&clientID,
		&parentID,
	)
	if err != nil {
		return nil, err
	}

	task.OwnerID = ownerID.Int64
	task.OwnerName = ownerName.String
	task.CustomFields = SplitCustomFields(customFields.String)
	task.EstimatedHours = Int64Ptr(estimatedHours)
	task.ClientID = Int64Ptr(clientID)
	task.ParentID = Int64Ptr(parentID)

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*domain.Task, error) {
	return collect(rows, ScanTask)
}

// ScanCategory scans a single category from a database row
func ScanCategory(scanner Scanner) (*domain.Category, error) {
	category := &domain.Category{}
	if err := scanner.Scan(&category.ID, &category.Name); err != nil {
		return nil, err
	}
	return category, nil
}

// ScanCategories scans multiple categories from database rows
func ScanCategories(rows Rows) ([]*domain.Category, error) {
	return collect(rows, ScanCategory)
}

// ScanTagType scans a single tag type from a database row
func ScanTagType(scanner Scanner) (*domain.TagType, error) {
	tagType := &domain.TagType{}
	var description sql.NullString
	if err := scanner.Scan(&tagType.ID, &tagType.Name, &description); err != nil {
		return nil, err
	}
	tagType.Description = description.String
	return tagType, nil
}

// ScanTagTypes scans multiple tag types from database rows
func ScanTagTypes(rows Rows) ([]*domain.TagType, error) {
	return collect(rows, ScanTagType)
}

// ScanEntryType scans a single entry type from a database row
func ScanEntryType(scanner Scanner) (*domain.EntryType, error) {
	entryType := &domain.EntryType{}
	var colour sql.NullString
	if err := scanner.Scan(&entryType.ID, &entryType.Name, &colour, &entryType.Enabled, &entryType.UserCreatable); err != nil {
		return nil, err
	}
	entryType.Colour = colour.String
	return entryType, nil
}

// ScanEntryTypes scans multiple entry types from database rows
func ScanEntryTypes(rows Rows) ([]*domain.EntryType, error) {
	return collect(rows, ScanEntryType)
}

// ScanProfile scans the stored credentials row
func ScanProfile(scanner Scanner) (*domain.Profile, error) {
	profile := &domain.Profile{}
	if err := scanner.Scan(&profile.ID, &profile.APIURL, &profile.APIKey); err != nil {
		return nil, err
	}
	return profile, nil
}
