package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qikfiller/internal/domain"
	"qikfiller/internal/errors"
)

// scriptedChooser returns the given id without prompting and records the
// candidates it was shown.
func scriptedChooser(id int64, shown *[]Candidate) Chooser {
	return func(kind domain.Kind, candidates []Candidate) (int64, error) {
		if shown != nil {
			*shown = append([]Candidate{}, candidates...)
		}
		return id, nil
	}
}

func failingChooser(t *testing.T) Chooser {
	return func(kind domain.Kind, candidates []Candidate) (int64, error) {
		t.Fatalf("chooser should not have been called, got %d candidates", len(candidates))
		return 0, nil
	}
}

func TestResolverField(t *testing.T) {
	ctx := context.Background()

	t.Run("should resolve an integer token as an explicit id without searching", func(t *testing.T) {
		store := newFakeStore()
		store.addRef(domain.KindCategory, 7, "Development")
		resolver := NewResolver(store, failingChooser(t))

		id, err := resolver.Field(ctx, domain.KindCategory, "7")

		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.Equal(t, 0, store.searchCalls)
	})

	t.Run("should fail when an explicit id does not exist", func(t *testing.T) {
		store := newFakeStore()
		resolver := NewResolver(store, failingChooser(t))

		_, err := resolver.Field(ctx, domain.KindCategory, "99")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		assert.Equal(t, 0, store.searchCalls)
	})

	t.Run("should resolve a unique name fragment without prompting", func(t *testing.T) {
		store := newFakeStore()
		store.addRef(domain.KindEntryType, 1, "Billable")
		store.addRef(domain.KindEntryType, 2, "Internal")
		resolver := NewResolver(store, failingChooser(t))

		id, err := resolver.Field(ctx, domain.KindEntryType, "bill")

		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("should fail when nothing matches the fragment", func(t *testing.T) {
		store := newFakeStore()
		store.addRef(domain.KindEntryType, 1, "Billable")
		resolver := NewResolver(store, failingChooser(t))

		_, err := resolver.Field(ctx, domain.KindEntryType, "holiday")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		assert.Contains(t, err.Error(), "holiday")
	})

	t.Run("should prompt on ties and honour the chosen id", func(t *testing.T) {
		store := newFakeStore()
		store.addRef(domain.KindClient, 1, "Apple")
		store.addRef(domain.KindClient, 2, "Application Co")
		var shown []Candidate
		resolver := NewResolver(store, scriptedChooser(2, &shown))

		id, err := resolver.Field(ctx, domain.KindClient, "app")

		require.NoError(t, err)
		assert.Equal(t, int64(2), id)
		require.Len(t, shown, 2)
		assert.Equal(t, "Apple", shown[0].Name)
		assert.Equal(t, "Application Co", shown[1].Name)
	})

	t.Run("should reject a chosen id outside the candidate set", func(t *testing.T) {
		store := newFakeStore()
		store.addRef(domain.KindClient, 1, "Apple")
		store.addRef(domain.KindClient, 2, "Application Co")
		resolver := NewResolver(store, scriptedChooser(42, nil))

		_, err := resolver.Field(ctx, domain.KindClient, "app")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAmbiguous))
	})
}

func TestResolverTaskField(t *testing.T) {
	ctx := context.Background()

	// One client with two tasks, a second client with one similarly named
	// task under an intermediate parent.
	setup := func() *fakeStore {
		store := newFakeStore()
		store.addClient(&domain.Client{ID: 10, Name: "Acme"})
		store.addClient(&domain.Client{ID: 11, Name: "Teapot Industries"})
		store.addTask(&domain.Task{ID: 20, Name: "Scoping", ClientID: int64Ptr(10)})
		store.addTask(&domain.Task{ID: 21, Name: "Delivery", ClientID: int64Ptr(10)})
		store.addTask(&domain.Task{ID: 26, Name: "Planning", ClientID: int64Ptr(11)})
		store.addTask(&domain.Task{ID: 27, Name: "Scoping", ParentID: int64Ptr(26)})
		return store
	}

	t.Run("should resolve an integer token as an explicit task id", func(t *testing.T) {
		store := setup()
		resolver := NewResolver(store, failingChooser(t))

		id, err := resolver.TaskField(ctx, "21")

		require.NoError(t, err)
		assert.Equal(t, int64(21), id)
		assert.Equal(t, 0, store.searchCalls)
	})

	t.Run("should resolve a unique task fragment without prompting", func(t *testing.T) {
		store := setup()
		resolver := NewResolver(store, failingChooser(t))

		id, err := resolver.TaskField(ctx, "deliv")

		require.NoError(t, err)
		assert.Equal(t, int64(21), id)
	})

	t.Run("should prompt with owning client names on an ambiguous fragment", func(t *testing.T) {
		store := setup()
		var shown []Candidate
		resolver := NewResolver(store, scriptedChooser(20, &shown))

		id, err := resolver.TaskField(ctx, "scop")

		require.NoError(t, err)
		assert.Equal(t, int64(20), id)
		require.Len(t, shown, 2)
		assert.Equal(t, "Acme", shown[0].ClientName)
		assert.Equal(t, "Teapot Industries", shown[1].ClientName)
	})

	t.Run("should narrow an ambiguous fragment with a client scope", func(t *testing.T) {
		store := setup()
		resolver := NewResolver(store, failingChooser(t))

		id, err := resolver.TaskField(ctx, "tea:scop")

		require.NoError(t, err)
		assert.Equal(t, int64(27), id)
	})

	t.Run("should list all of a client's tasks when the task fragment is empty", func(t *testing.T) {
		store := setup()
		var shown []Candidate
		resolver := NewResolver(store, scriptedChooser(21, &shown))

		id, err := resolver.TaskField(ctx, "acme:")

		require.NoError(t, err)
		assert.Equal(t, int64(21), id)
		require.Len(t, shown, 2)
	})

	t.Run("should fail when the scope eliminates every candidate", func(t *testing.T) {
		store := setup()
		resolver := NewResolver(store, failingChooser(t))

		_, err := resolver.TaskField(ctx, "acme:planning")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("should surface a corrupt hierarchy instead of prompting", func(t *testing.T) {
		store := setup()
		store.addTask(&domain.Task{ID: 30, Name: "Scoping orphan", ParentID: int64Ptr(999)})
		resolver := NewResolver(store, failingChooser(t))

		_, err := resolver.TaskField(ctx, "scop")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeCorruptHierarchy))
	})
}
