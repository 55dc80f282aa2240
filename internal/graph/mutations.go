package graph

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/taskboard-dev/taskboard/internal/auth"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/stores"
)

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// unexpectedMessage logs the cause server-side and returns the generic client
// message, so internal error text never reaches the response.
func unexpectedMessage(op string, err error) string {
	log.Printf("%s failed: %v", op, err)
	return "Internal server error"
}

type CreateUserArgs struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

func (r *Resolver) CreateUser(ctx context.Context, args CreateUserArgs) *CreateUserPayloadResolver {
	user, err := r.users.Create(ctx, args.Email, args.Password, strValue(args.FirstName), strValue(args.LastName))

	if err != nil {
		var message string

		switch {
		case errors.Is(err, stores.ErrDuplicateEmail):
			message = "A user with this email already exists"
		case errors.Is(err, stores.ErrValidation):
			message = "Email and password are required"
		default:
			message = unexpectedMessage("createUser", err)
		}

		return &CreateUserPayloadResolver{message: message}
	}

	return &CreateUserPayloadResolver{
		user:    &UserResolver{u: user},
		success: true,
		message: "User created successfully",
	}
}

type TokenAuthArgs struct {
	Email    string
	Password string
}

func (r *Resolver) TokenAuth(ctx context.Context, args TokenAuthArgs) *TokenPayloadResolver {
	user, err := r.users.Authenticate(ctx, args.Email, args.Password)

	if err != nil {
		if errors.Is(err, stores.ErrInvalidCredentials) {
			return &TokenPayloadResolver{message: "Invalid email or password"}
		}
		return &TokenPayloadResolver{message: unexpectedMessage("tokenAuth", err)}
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return &TokenPayloadResolver{message: unexpectedMessage("tokenAuth", err)}
	}

	return &TokenPayloadResolver{
		token:   &token,
		success: true,
		message: "Authentication successful",
	}
}

func (r *Resolver) VerifyToken(ctx context.Context, args struct{ Token string }) *VerifyTokenPayloadResolver {
	token, err := auth.VerifyJWT(args.Token)
	if err != nil {
		return &VerifyTokenPayloadResolver{message: "Invalid or expired token"}
	}

	_, email, expiresAt, err := auth.TokenClaims(token)
	if err != nil {
		return &VerifyTokenPayloadResolver{message: "Invalid or expired token"}
	}

	return &VerifyTokenPayloadResolver{
		email:     &email,
		expiresAt: &expiresAt,
		success:   true,
		message:   "Token is valid",
	}
}

func (r *Resolver) RefreshToken(ctx context.Context, args struct{ Token string }) *TokenPayloadResolver {
	token, err := auth.RefreshJWT(args.Token)
	if err != nil {
		return &TokenPayloadResolver{message: "Invalid or expired token"}
	}

	return &TokenPayloadResolver{
		token:   &token,
		success: true,
		message: "Token refreshed successfully",
	}
}

type CreateProjectArgs struct {
	Name        string
	Description *string
}

func (r *Resolver) CreateProject(ctx context.Context, args CreateProjectArgs) *ProjectPayloadResolver {
	project, err := r.projects.Create(ctx, args.Name, strValue(args.Description), actingUser(ctx))

	if err != nil {
		var message string

		switch {
		case errors.Is(err, stores.ErrUnauthenticated):
			message = "Authentication required to create a project"
		case errors.Is(err, stores.ErrValidation):
			message = "Project name is required"
		default:
			message = unexpectedMessage("createProject", err)
		}

		return &ProjectPayloadResolver{message: message}
	}

	r.notifyProjectChange(project.ID)

	return &ProjectPayloadResolver{
		project: &ProjectResolver{r: r, p: project},
		success: true,
		message: "Project created successfully",
	}
}

type UpdateProjectArgs struct {
	ID          graphql.ID
	Name        *string
	Description *string
}

func (r *Resolver) UpdateProject(ctx context.Context, args UpdateProjectArgs) *ProjectPayloadResolver {
	id, ok := parseID(args.ID)
	if !ok {
		return &ProjectPayloadResolver{message: "Project not found"}
	}

	patch := stores.ProjectPatch{
		Name:        args.Name,
		Description: args.Description,
	}

	project, err := r.projects.Update(ctx, id, patch, actingUser(ctx))

	if err != nil {
		var message string

		switch {
		case errors.Is(err, stores.ErrUnauthenticated):
			message = "Authentication required"
		case errors.Is(err, stores.ErrNotFound):
			message = "Project not found"
		case errors.Is(err, stores.ErrForbidden):
			message = "You do not have permission to update this project"
		default:
			message = unexpectedMessage("updateProject", err)
		}

		return &ProjectPayloadResolver{message: message}
	}

	r.notifyProjectChange(project.ID)

	return &ProjectPayloadResolver{
		project: &ProjectResolver{r: r, p: project},
		success: true,
		message: "Project updated successfully",
	}
}

func (r *Resolver) DeleteProject(ctx context.Context, args struct{ ID graphql.ID }) *DeletePayloadResolver {
	id, ok := parseID(args.ID)
	if !ok {
		return &DeletePayloadResolver{message: "Project not found"}
	}

	project, err := r.projects.Delete(ctx, id, actingUser(ctx))

	if err != nil {
		var message string

		switch {
		case errors.Is(err, stores.ErrUnauthenticated):
			message = "Authentication required"
		case errors.Is(err, stores.ErrNotFound):
			message = "Project not found"
		case errors.Is(err, stores.ErrForbidden):
			message = "You do not have permission to delete this project"
		default:
			message = unexpectedMessage("deleteProject", err)
		}

		return &DeletePayloadResolver{message: message}
	}

	r.notifyProjectChange(project.ID)

	return &DeletePayloadResolver{
		success: true,
		message: fmt.Sprintf("Project %q deleted successfully", project.Name),
	}
}

type CreateTaskArgs struct {
	ProjectID   graphql.ID
	Title       string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *graphql.ID
}

func (r *Resolver) CreateTask(ctx context.Context, args CreateTaskArgs) *TaskPayloadResolver {
	projectID, ok := parseID(args.ProjectID)
	if !ok {
		return &TaskPayloadResolver{message: "Project not found"}
	}

	input := stores.CreateTaskInput{
		ProjectID:   projectID,
		Title:       args.Title,
		Description: strValue(args.Description),
		Status:      models.TaskStatus(strValue(args.Status)),
		Priority:    models.TaskPriority(strValue(args.Priority)),
		AssigneeID:  optionalUUID(args.AssigneeID),
	}

	task, err := r.tasks.Create(ctx, input, actingUser(ctx))

	if err != nil {
		var message string

		switch {
		case errors.Is(err, stores.ErrUnauthenticated):
			message = "Authentication required to create a task"
		case errors.Is(err, stores.ErrNotFound):
			message = "Project not found"
		case errors.Is(err, stores.ErrValidation):
			message = "Invalid status or priority"
		default:
			message = unexpectedMessage("createTask", err)
		}

		return &TaskPayloadResolver{message: message}
	}

	r.notifyProjectChange(task.ProjectID)

	return &TaskPayloadResolver{
		task:    &TaskResolver{r: r, t: task},
		success: true,
		message: "Task created successfully",
	}
}

type UpdateTaskArgs struct {
	ID          graphql.ID
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *graphql.ID
}

func (r *Resolver) UpdateTask(ctx context.Context, args UpdateTaskArgs) *TaskPayloadResolver {
	id, ok := parseID(args.ID)
	if !ok {
		return &TaskPayloadResolver{message: "Task not found"}
	}

	patch := stores.TaskPatch{
		Title:       args.Title,
		Description: args.Description,
		AssigneeID:  optionalUUID(args.AssigneeID),
	}

	if args.Status != nil {
		status := models.TaskStatus(*args.Status)
		patch.Status = &status
	}
	if args.Priority != nil {
		priority := models.TaskPriority(*args.Priority)
		patch.Priority = &priority
	}

	task, err := r.tasks.Update(ctx, id, patch, actingUser(ctx))

	if err != nil {
		var message string

		switch {
		case errors.Is(err, stores.ErrUnauthenticated):
			message = "Authentication required"
		case errors.Is(err, stores.ErrNotFound):
			message = "Task not found"
		case errors.Is(err, stores.ErrValidation):
			message = "Invalid status or priority"
		default:
			message = unexpectedMessage("updateTask", err)
		}

		return &TaskPayloadResolver{message: message}
	}

	r.notifyProjectChange(task.ProjectID)

	return &TaskPayloadResolver{
		task:    &TaskResolver{r: r, t: task},
		success: true,
		message: "Task updated successfully",
	}
}

func (r *Resolver) DeleteTask(ctx context.Context, args struct{ ID graphql.ID }) *DeletePayloadResolver {
	id, ok := parseID(args.ID)
	if !ok {
		return &DeletePayloadResolver{message: "Task not found"}
	}

	task, err := r.tasks.Delete(ctx, id, actingUser(ctx))

	if err != nil {
		var message string

		switch {
		case errors.Is(err, stores.ErrUnauthenticated):
			message = "Authentication required"
		case errors.Is(err, stores.ErrNotFound):
			message = "Task not found"
		default:
			message = unexpectedMessage("deleteTask", err)
		}

		return &DeletePayloadResolver{message: message}
	}

	r.notifyProjectChange(task.ProjectID)

	return &DeletePayloadResolver{
		success: true,
		message: fmt.Sprintf("Task %q deleted successfully", task.Title),
	}
}

// optionalUUID parses an optional ID argument. A malformed id behaves like a
// reference to a missing user: the assignee ends up unset.
func optionalUUID(id *graphql.ID) *uuid.UUID {
	if id == nil {
		return nil
	}

	parsed, err := uuid.Parse(string(*id))
	if err != nil {
		// Keep "provided but unresolvable" semantics for bad ids.
		nilID := uuid.Nil
		return &nilID
	}

	return &parsed
}
