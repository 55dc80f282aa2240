package graph

import (
	"context"

	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/taskboard-dev/taskboard/internal/auth"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/stores"
)

// Resolver is the root of the schema. Queries and mutations dispatch to the
// stores; the caller identity comes from the request context.
type Resolver struct {
	users    *stores.UserStore
	projects *stores.ProjectStore
	tasks    *stores.TaskStore

	// onProjectChange, when set, is invoked after a successful mutation that
	// touches the given project, so live subscribers can refresh.
	onProjectChange func(projectID string)
}

func NewResolver(users *stores.UserStore, projects *stores.ProjectStore, tasks *stores.TaskStore, onProjectChange func(projectID string)) *Resolver {
	return &Resolver{
		users:    users,
		projects: projects,
		tasks:    tasks,

		onProjectChange: onProjectChange,
	}
}

// actingUser returns the resolved caller, or nil for anonymous requests.
func actingUser(ctx context.Context) *models.User {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return nil
	}
	return &user
}

// parseID converts a GraphQL ID into a UUID. The boolean is false for
// malformed ids, which callers treat the same as an unknown entity.
func parseID(id graphql.ID) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

func (r *Resolver) notifyProjectChange(projectID uuid.UUID) {
	if r.onProjectChange != nil {
		r.onProjectChange(projectID.String())
	}
}

func (r *Resolver) Me(ctx context.Context) *UserResolver {
	user := actingUser(ctx)
	if user == nil {
		return nil
	}
	return &UserResolver{u: *user}
}

func (r *Resolver) Users(ctx context.Context) ([]*UserResolver, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*UserResolver, 0, len(users))
	for _, u := range users {
		resolvers = append(resolvers, &UserResolver{u: u})
	}

	return resolvers, nil
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	id, ok := parseID(args.ID)
	if !ok {
		return nil, nil
	}

	user, err := r.users.FindByID(ctx, id)
	if err != nil {
		return nil, queryLookupErr(err)
	}

	return &UserResolver{u: user}, nil
}

func (r *Resolver) AllProjects(ctx context.Context) ([]*ProjectResolver, error) {
	projects, err := r.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return r.projectResolvers(projects), nil
}

func (r *Resolver) MyProjects(ctx context.Context) ([]*ProjectResolver, error) {
	user := actingUser(ctx)
	if user == nil {
		return []*ProjectResolver{}, nil
	}

	projects, err := r.projects.ListOwnedBy(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return r.projectResolvers(projects), nil
}

func (r *Resolver) Project(ctx context.Context, args struct{ ID graphql.ID }) (*ProjectResolver, error) {
	id, ok := parseID(args.ID)
	if !ok {
		return nil, nil
	}

	project, err := r.projects.GetByID(ctx, id)
	if err != nil {
		return nil, queryLookupErr(err)
	}

	return &ProjectResolver{r: r, p: project}, nil
}

func (r *Resolver) AllTasks(ctx context.Context) ([]*TaskResolver, error) {
	tasks, err := r.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return r.taskResolvers(tasks), nil
}

func (r *Resolver) TasksByProject(ctx context.Context, args struct{ ProjectID graphql.ID }) ([]*TaskResolver, error) {
	id, ok := parseID(args.ProjectID)
	if !ok {
		return []*TaskResolver{}, nil
	}

	tasks, err := r.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.taskResolvers(tasks), nil
}

func (r *Resolver) TasksByStatus(ctx context.Context, args struct{ Status string }) ([]*TaskResolver, error) {
	tasks, err := r.tasks.ListByStatus(ctx, models.TaskStatus(args.Status))
	if err != nil {
		return nil, err
	}

	return r.taskResolvers(tasks), nil
}

func (r *Resolver) Task(ctx context.Context, args struct{ ID graphql.ID }) (*TaskResolver, error) {
	id, ok := parseID(args.ID)
	if !ok {
		return nil, nil
	}

	task, err := r.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, queryLookupErr(err)
	}

	return &TaskResolver{r: r, t: task}, nil
}

func (r *Resolver) MyTasks(ctx context.Context) ([]*TaskResolver, error) {
	user := actingUser(ctx)
	if user == nil {
		return []*TaskResolver{}, nil
	}

	tasks, err := r.tasks.ListAssignedTo(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return r.taskResolvers(tasks), nil
}

func (r *Resolver) projectResolvers(projects []models.Project) []*ProjectResolver {
	resolvers := make([]*ProjectResolver, 0, len(projects))
	for _, p := range projects {
		resolvers = append(resolvers, &ProjectResolver{r: r, p: p})
	}
	return resolvers
}

func (r *Resolver) taskResolvers(tasks []models.Task) []*TaskResolver {
	resolvers := make([]*TaskResolver, 0, len(tasks))
	for _, t := range tasks {
		resolvers = append(resolvers, &TaskResolver{r: r, t: t})
	}
	return resolvers
}
