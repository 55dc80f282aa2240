package graph

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/stores"
)

// queryLookupErr maps a not-found lookup to an absent result; anything else is
// unexpected and surfaces as a query error.
func queryLookupErr(err error) error {
	if errors.Is(err, stores.ErrNotFound) {
		return nil
	}
	return err
}

type UserResolver struct {
	u models.User
}

func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(r.u.ID.String())
}

func (r *UserResolver) Email() string {
	return r.u.Email
}

func (r *UserResolver) FirstName() string {
	return r.u.FirstName
}

func (r *UserResolver) LastName() string {
	return r.u.LastName
}

func (r *UserResolver) FullName() string {
	return r.u.FullName()
}

func (r *UserResolver) IsActive() bool {
	return r.u.IsActive
}

func (r *UserResolver) DateJoined() graphql.Time {
	return graphql.Time{Time: r.u.DateJoined}
}

type ProjectResolver struct {
	r *Resolver
	p models.Project
}

func (r *ProjectResolver) ID() graphql.ID {
	return graphql.ID(r.p.ID.String())
}

func (r *ProjectResolver) Name() string {
	return r.p.Name
}

func (r *ProjectResolver) Description() string {
	return r.p.Description
}

func (r *ProjectResolver) Owner(ctx context.Context) (*UserResolver, error) {
	owner, err := r.r.users.FindByID(ctx, r.p.OwnerID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{u: owner}, nil
}

func (r *ProjectResolver) TaskCount(ctx context.Context) (int32, error) {
	count, err := r.r.projects.TaskCount(ctx, r.p.ID)
	if err != nil {
		return 0, err
	}
	return int32(count), nil
}

func (r *ProjectResolver) Tasks(ctx context.Context) ([]*TaskResolver, error) {
	tasks, err := r.r.tasks.ListByProject(ctx, r.p.ID)
	if err != nil {
		return nil, err
	}
	return r.r.taskResolvers(tasks), nil
}

func (r *ProjectResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.p.CreatedAt}
}

func (r *ProjectResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.p.UpdatedAt}
}

type TaskResolver struct {
	r *Resolver
	t models.Task
}

func (r *TaskResolver) ID() graphql.ID {
	return graphql.ID(r.t.ID.String())
}

func (r *TaskResolver) Title() string {
	return r.t.Title
}

func (r *TaskResolver) Description() string {
	return r.t.Description
}

func (r *TaskResolver) Status() string {
	return string(r.t.Status)
}

func (r *TaskResolver) Priority() string {
	return string(r.t.Priority)
}

func (r *TaskResolver) Project(ctx context.Context) (*ProjectResolver, error) {
	project, err := r.r.projects.GetByID(ctx, r.t.ProjectID)
	if err != nil {
		return nil, err
	}
	return &ProjectResolver{r: r.r, p: project}, nil
}

// Assignee resolves to null when unassigned or when the referenced user no
// longer exists.
func (r *TaskResolver) Assignee(ctx context.Context) (*UserResolver, error) {
	if r.t.AssigneeID == nil {
		return nil, nil
	}

	assignee, err := r.r.users.FindByID(ctx, *r.t.AssigneeID)
	if err != nil {
		return nil, queryLookupErr(err)
	}

	return &UserResolver{u: assignee}, nil
}

func (r *TaskResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.t.CreatedAt}
}

func (r *TaskResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.t.UpdatedAt}
}
