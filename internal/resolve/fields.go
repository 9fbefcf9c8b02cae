package resolve

import (
	"context"
	"strconv"
	"strings"

	"qikfiller/internal/domain"
	"qikfiller/internal/errors"
)

// Candidate is one row of a disambiguation prompt. ClientName is set only
// for task candidates, where the owning client forms a third column.
type Candidate struct {
	ID         int64
	Name       string
	ClientName string
}

// Chooser picks one id from an ambiguous candidate set. Production wiring
// prompts on standard input; tests inject a scripted function. The resolver
// verifies the returned id is within the candidate set.
type Chooser func(kind domain.Kind, candidates []Candidate) (int64, error)

// Resolver turns user-supplied tokens into confirmed reference ids. It is a
// pure read+choose operation over the store; nothing is ever written.
type Resolver struct {
	store     Store
	hierarchy *Hierarchy
	choose    Chooser
}

// NewResolver creates a field resolver with the given chooser
func NewResolver(store Store, choose Chooser) *Resolver {
	return &Resolver{
		store:     store,
		hierarchy: NewHierarchy(store),
		choose:    choose,
	}
}

// Field resolves a token for any reference kind into exactly one id.
// An integer token is an explicit id and bypasses matching entirely;
// otherwise the token is matched as a case-insensitive substring of names,
// prompting on ties.
func (r *Resolver) Field(ctx context.Context, kind domain.Kind, token string) (int64, error) {
	if id, ok := parseID(token); ok {
		ref, err := r.store.GetReference(ctx, kind, id)
		if err != nil {
			return 0, err
		}
		return ref.ID, nil
	}

	matches, err := r.store.SearchReferences(ctx, kind, token)
	if err != nil {
		return 0, err
	}

	switch len(matches) {
	case 0:
		return 0, errors.NewNotFoundError(kind.String(), token)
	case 1:
		return matches[0].ID, nil
	default:
		candidates := make([]Candidate, len(matches))
		for i, match := range matches {
			candidates[i] = Candidate{ID: match.ID, Name: match.Name}
		}
		return r.chooseFrom(kind, candidates)
	}
}

// TaskField resolves a task token, supporting the scoped
// "client-fragment:task-fragment" shorthand. The split is on the first
// colon; an empty task fragment starts from all tasks, and a non-empty
// client fragment narrows by the owning client's name.
func (r *Resolver) TaskField(ctx context.Context, token string) (int64, error) {
	if id, ok := parseID(token); ok {
		ref, err := r.store.GetReference(ctx, domain.KindTask, id)
		if err != nil {
			return 0, err
		}
		return ref.ID, nil
	}

	clientFragment := ""
	taskFragment := token
	if i := strings.Index(token, ":"); i >= 0 {
		clientFragment = token[:i]
		taskFragment = token[i+1:]
	}

	var tasks []*domain.Task
	var err error
	if taskFragment != "" {
		tasks, err = r.store.SearchTasks(ctx, taskFragment)
	} else {
		tasks, err = r.store.ListTasks(ctx)
	}
	if err != nil {
		return 0, err
	}

	// Candidates carry the owning client for the third prompt column, so
	// ascend for every match even when no client filter was given.
	var candidates []Candidate
	for _, task := range tasks {
		client, err := r.hierarchy.OwningClient(ctx, task)
		if err != nil {
			return 0, err
		}
		if clientFragment != "" && !strings.Contains(strings.ToLower(client.Name), strings.ToLower(clientFragment)) {
			continue
		}
		candidates = append(candidates, Candidate{ID: task.ID, Name: task.Name, ClientName: client.Name})
	}

	switch len(candidates) {
	case 0:
		return 0, errors.NewNotFoundError(domain.KindTask.String(), token)
	case 1:
		return candidates[0].ID, nil
	default:
		return r.chooseFrom(domain.KindTask, candidates)
	}
}

// chooseFrom runs the chooser once and verifies its answer is one of the
// presented candidates. There is no re-prompt; a bad answer is an error.
func (r *Resolver) chooseFrom(kind domain.Kind, candidates []Candidate) (int64, error) {
	id, err := r.choose(kind, candidates)
	if err != nil {
		return 0, err
	}
	for _, candidate := range candidates {
		if candidate.ID == id {
			return id, nil
		}
	}
	return 0, errors.NewAmbiguousInputError(strconv.FormatInt(id, 10), "id is not one of the presented candidates")
}

// parseID reports whether the token is an explicit integer id
func parseID(token string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
