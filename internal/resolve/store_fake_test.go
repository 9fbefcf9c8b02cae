package resolve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"qikfiller/internal/domain"
	"qikfiller/internal/errors"
)

// fakeStore is an in-memory Store used by the resolver tests. It records
// search calls so tests can assert the exact-id fast path never searches.
type fakeStore struct {
	refs        map[domain.Kind]map[int64]string
	clients     map[int64]*domain.Client
	tasks       map[int64]*domain.Task
	searchCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		refs:    make(map[domain.Kind]map[int64]string),
		clients: make(map[int64]*domain.Client),
		tasks:   make(map[int64]*domain.Task),
	}
}

func (s *fakeStore) addRef(kind domain.Kind, id int64, name string) {
	if s.refs[kind] == nil {
		s.refs[kind] = make(map[int64]string)
	}
	s.refs[kind][id] = name
}

func (s *fakeStore) addClient(client *domain.Client) {
	s.clients[client.ID] = client
	s.addRef(domain.KindClient, client.ID, client.Name)
}

func (s *fakeStore) addTask(task *domain.Task) {
	s.tasks[task.ID] = task
	s.addRef(domain.KindTask, task.ID, task.Name)
}

func (s *fakeStore) GetReference(ctx context.Context, kind domain.Kind, id int64) (*domain.Reference, error) {
	name, ok := s.refs[kind][id]
	if !ok {
		return nil, errors.NewNotFoundError(kind.String(), fmt.Sprintf("%d", id))
	}
	return &domain.Reference{ID: id, Name: name}, nil
}

func (s *fakeStore) SearchReferences(ctx context.Context, kind domain.Kind, fragment string) ([]*domain.Reference, error) {
	s.searchCalls++
	var matches []*domain.Reference
	for id, name := range s.refs[kind] {
		if strings.Contains(strings.ToLower(name), strings.ToLower(fragment)) {
			matches = append(matches, &domain.Reference{ID: id, Name: name})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (s *fakeStore) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	client, ok := s.clients[id]
	if !ok {
		return nil, errors.NewNotFoundError("client", fmt.Sprintf("%d", id))
	}
	return client, nil
}

func (s *fakeStore) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	return task, nil
}

func (s *fakeStore) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *fakeStore) SearchTasks(ctx context.Context, fragment string) ([]*domain.Task, error) {
	s.searchCalls++
	var tasks []*domain.Task
	for _, task := range s.tasks {
		if strings.Contains(strings.ToLower(task.Name), strings.ToLower(fragment)) {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func int64Ptr(v int64) *int64 {
	return &v
}
