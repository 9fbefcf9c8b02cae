package cli

import (
	"context"
	"fmt"

	"qikfiller/internal/api"
)

// TasksCommand handles the tasks command
type TasksCommand struct {
	api api.API
}

// NewTasksCommand creates a new tasks command handler
func NewTasksCommand(apiInstance api.API) *TasksCommand {
	return &TasksCommand{api: apiInstance}
}

// Execute prints every task's root-to-leaf path, indented per level
func (c *TasksCommand) Execute(ctx context.Context, args []string) error {
	lines, err := c.api.TaskTree(ctx)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}
