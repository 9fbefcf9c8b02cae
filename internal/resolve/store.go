package resolve

import (
	"context"

	"qikfiller/internal/domain"
)

// Store is the slice of the reference cache the resolvers read from. The
// sqlite repository satisfies it; tests use an in-memory fake.
type Store interface {
	GetReference(ctx context.Context, kind domain.Kind, id int64) (*domain.Reference, error)
	SearchReferences(ctx context.Context, kind domain.Kind, fragment string) ([]*domain.Reference, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	SearchTasks(ctx context.Context, fragment string) ([]*domain.Task, error)
}
