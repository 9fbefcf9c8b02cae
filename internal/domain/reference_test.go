package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceString(t *testing.T) {
	t.Run("should render as id colon name", func(t *testing.T) {
		ref := Reference{ID: 42, Name: "Acme"}
		assert.Equal(t, "42: Acme", ref.String())
	})
}

func TestTaskHasValidParentage(t *testing.T) {
	clientID := int64(1)
	parentID := int64(2)

	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{name: "should accept a direct client child", task: Task{ClientID: &clientID}, expected: true},
		{name: "should accept a sub-task", task: Task{ParentID: &parentID}, expected: true},
		{name: "should reject a task with both links", task: Task{ClientID: &clientID, ParentID: &parentID}, expected: false},
		{name: "should reject a task with neither link", task: Task{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.HasValidParentage())
		})
	}
}

func TestRefProjections(t *testing.T) {
	t.Run("should project every entity to its id and name", func(t *testing.T) {
		assert.Equal(t, Reference{ID: 1, Name: "Alice"}, User{ID: 1, Name: "Alice"}.Ref())
		assert.Equal(t, Reference{ID: 2, Name: "Acme"}, Client{ID: 2, Name: "Acme"}.Ref())
		assert.Equal(t, Reference{ID: 3, Name: "Scoping"}, Task{ID: 3, Name: "Scoping"}.Ref())
		assert.Equal(t, Reference{ID: 4, Name: "Development"}, Category{ID: 4, Name: "Development"}.Ref())
		assert.Equal(t, Reference{ID: 5, Name: "Jira"}, TagType{ID: 5, Name: "Jira"}.Ref())
		assert.Equal(t, Reference{ID: 6, Name: "Billable"}, EntryType{ID: 6, Name: "Billable"}.Ref())
	})
}
