package resolve

import (
	"context"

	"qikfiller/internal/domain"
	"qikfiller/internal/errors"
)

// Hierarchy walks task parent links. Every task reachable from the remote
// listing belongs to a tree rooted at a client; the walk is iterative with a
// visited set so malformed data fails instead of looping.
type Hierarchy struct {
	store Store
}

// NewHierarchy creates a hierarchy resolver over the given store
func NewHierarchy(store Store) *Hierarchy {
	return &Hierarchy{store: store}
}

// OwningClient follows parent links from the task until a node with a direct
// client reference is found and returns that client.
func (h *Hierarchy) OwningClient(ctx context.Context, task *domain.Task) (*domain.Client, error) {
	current := task
	visited := map[int64]bool{}

	for current.ClientID == nil {
		if visited[current.ID] {
			return nil, errors.NewCorruptHierarchyError(task.ID, "cycle in parent chain")
		}
		visited[current.ID] = true

		if current.ParentID == nil {
			return nil, errors.NewCorruptHierarchyError(task.ID, "no client at root of parent chain")
		}

		parent, err := h.store.GetTask(ctx, *current.ParentID)
		if err != nil {
			if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
				return nil, errors.NewCorruptHierarchyError(task.ID, "dangling parent link")
			}
			return nil, err
		}
		current = parent
	}

	client, err := h.store.GetClient(ctx, *current.ClientID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewCorruptHierarchyError(task.ID, "dangling client link")
		}
		return nil, err
	}
	return client, nil
}

// Path is the ordered root-to-leaf display path of a task: the owning client
// followed by each task from the client's direct child down to the task itself.
type Path struct {
	Client *domain.Client
	Tasks  []*domain.Task
}

// DisplayPath computes the root-to-leaf path for a task
func (h *Hierarchy) DisplayPath(ctx context.Context, task *domain.Task) (*Path, error) {
	tasks := []*domain.Task{task}
	current := task
	visited := map[int64]bool{}

	for current.ClientID == nil {
		if visited[current.ID] {
			return nil, errors.NewCorruptHierarchyError(task.ID, "cycle in parent chain")
		}
		visited[current.ID] = true

		if current.ParentID == nil {
			return nil, errors.NewCorruptHierarchyError(task.ID, "no client at root of parent chain")
		}

		parent, err := h.store.GetTask(ctx, *current.ParentID)
		if err != nil {
			if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
				return nil, errors.NewCorruptHierarchyError(task.ID, "dangling parent link")
			}
			return nil, err
		}
		tasks = append([]*domain.Task{parent}, tasks...)
		current = parent
	}

	client, err := h.store.GetClient(ctx, *current.ClientID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewCorruptHierarchyError(task.ID, "dangling client link")
		}
		return nil, err
	}

	return &Path{Client: client, Tasks: tasks}, nil
}
