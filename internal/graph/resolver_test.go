package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/internal/auth"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/stores"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	schema   *graphql.Schema
	users    *stores.UserStore
	projects *stores.ProjectStore
	tasks    *stores.TaskStore
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}))

	users := stores.NewUserStore(db)
	projects := stores.NewProjectStore(db)
	tasks := stores.NewTaskStore(db)

	resolver := NewResolver(users, projects, tasks, nil)

	return testEnv{
		schema:   NewSchema(resolver),
		users:    users,
		projects: projects,
		tasks:    tasks,
	}
}

// exec runs a query and decodes the data payload. GraphQL-level errors fail
// the test; domain failures surface inside payload envelopes instead.
func exec(t *testing.T, env testEnv, ctx context.Context, query string) map[string]interface{} {
	t.Helper()

	resp := env.schema.Exec(ctx, query, "", nil)
	require.Empty(t, resp.Errors, "unexpected GraphQL errors")

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))

	return data
}

func payload(t *testing.T, data map[string]interface{}, field string) map[string]interface{} {
	t.Helper()

	p, ok := data[field].(map[string]interface{})
	require.True(t, ok, "missing %s payload", field)

	return p
}

func signedUp(t *testing.T, env testEnv, email string) (models.User, context.Context) {
	t.Helper()

	user, err := env.users.Create(context.Background(), email, "password123", "Test", "User")
	require.NoError(t, err)

	return user, auth.WithCurrentUser(context.Background(), user)
}

func TestCreateUserMutation(t *testing.T) {
	env := setupEnv(t)

	data := exec(t, env, context.Background(), `mutation {
		createUser(email: "alice@example.com", password: "password123", firstName: "Alice", lastName: "Smith") {
			user { email fullName isActive }
			success
			message
		}
	}`)

	p := payload(t, data, "createUser")
	assert.Equal(t, true, p["success"])
	assert.Equal(t, "User created successfully", p["message"])

	user := p["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Alice Smith", user["fullName"])
	assert.Equal(t, true, user["isActive"])

	// Same email again fails inside the envelope, not as a GraphQL error.
	data = exec(t, env, context.Background(), `mutation {
		createUser(email: "alice@example.com", password: "other") {
			user { id }
			success
			message
		}
	}`)

	p = payload(t, data, "createUser")
	assert.Equal(t, false, p["success"])
	assert.Equal(t, "A user with this email already exists", p["message"])
	assert.Nil(t, p["user"])
}

func TestTokenAuthAndVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	env := setupEnv(t)
	signedUp(t, env, "alice@example.com")

	data := exec(t, env, context.Background(), `mutation {
		tokenAuth(email: "alice@example.com", password: "password123") {
			token
			success
			message
		}
	}`)

	p := payload(t, data, "tokenAuth")
	assert.Equal(t, true, p["success"])
	assert.Equal(t, "Authentication successful", p["message"])

	token, ok := p["token"].(string)
	require.True(t, ok, "token should be present")
	require.NotEmpty(t, token)

	data = exec(t, env, context.Background(), fmt.Sprintf(`mutation {
		verifyToken(token: %q) {
			email
			expiresAt
			success
			message
		}
	}`, token))

	p = payload(t, data, "verifyToken")
	assert.Equal(t, true, p["success"])
	assert.Equal(t, "Token is valid", p["message"])
	assert.Equal(t, "alice@example.com", p["email"])
	assert.NotNil(t, p["expiresAt"])

	data = exec(t, env, context.Background(), fmt.Sprintf(`mutation {
		refreshToken(token: %q) {
			token
			success
			message
		}
	}`, token))

	p = payload(t, data, "refreshToken")
	assert.Equal(t, true, p["success"])
	assert.Equal(t, "Token refreshed successfully", p["message"])
	assert.NotEmpty(t, p["token"])
}

func TestTokenAuthBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	env := setupEnv(t)
	signedUp(t, env, "alice@example.com")

	data := exec(t, env, context.Background(), `mutation {
		tokenAuth(email: "alice@example.com", password: "wrong") {
			token
			success
			message
		}
	}`)

	p := payload(t, data, "tokenAuth")
	assert.Equal(t, false, p["success"])
	assert.Equal(t, "Invalid email or password", p["message"])
	assert.Nil(t, p["token"])
}

func TestVerifyTokenInvalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	env := setupEnv(t)

	data := exec(t, env, context.Background(), `mutation {
		verifyToken(token: "not-a-token") {
			email
			success
			message
		}
	}`)

	p := payload(t, data, "verifyToken")
	assert.Equal(t, false, p["success"])
	assert.Equal(t, "Invalid or expired token", p["message"])
	assert.Nil(t, p["email"])
}

func TestMeQuery(t *testing.T) {
	env := setupEnv(t)

	data := exec(t, env, context.Background(), `{ me { email } }`)
	assert.Nil(t, data["me"], "anonymous callers have no identity")

	_, ctx := signedUp(t, env, "alice@example.com")

	data = exec(t, env, ctx, `{ me { email } }`)
	me := data["me"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", me["email"])
}

func TestMyProjectsAnonymous(t *testing.T) {
	env := setupEnv(t)

	owner, ctx := signedUp(t, env, "owner@example.com")
	_, err := env.projects.Create(ctx, "P1", "", &owner)
	require.NoError(t, err)

	data := exec(t, env, context.Background(), `{ myProjects { id } }`)
	assert.Empty(t, data["myProjects"], "anonymous callers see no owned projects")

	data = exec(t, env, ctx, `{ myProjects { name } allProjects { name } }`)
	assert.Len(t, data["myProjects"], 1)
	assert.Len(t, data["allProjects"], 1)
}

func TestProjectOwnership(t *testing.T) {
	env := setupEnv(t)

	owner, ownerCtx := signedUp(t, env, "owner@example.com")
	_, otherCtx := signedUp(t, env, "other@example.com")

	project, err := env.projects.Create(context.Background(), "P1", "", &owner)
	require.NoError(t, err)

	update := fmt.Sprintf(`mutation {
		updateProject(id: %q, name: "Q") {
			project { name }
			success
			message
		}
	}`, project.ID)

	data := exec(t, env, otherCtx, update)
	p := payload(t, data, "updateProject")
	assert.Equal(t, false, p["success"])
	assert.Equal(t, "You do not have permission to update this project", p["message"])
	assert.Nil(t, p["project"])

	data = exec(t, env, ownerCtx, update)
	p = payload(t, data, "updateProject")
	assert.Equal(t, true, p["success"])
	assert.Equal(t, "Project updated successfully", p["message"])
	assert.Equal(t, "Q", p["project"].(map[string]interface{})["name"])
}

func TestDeleteProjectMutation(t *testing.T) {
	env := setupEnv(t)

	owner, ctx := signedUp(t, env, "owner@example.com")
	project, err := env.projects.Create(context.Background(), "Doomed", "", &owner)
	require.NoError(t, err)

	data := exec(t, env, ctx, fmt.Sprintf(`mutation {
		deleteProject(id: %q) { success message }
	}`, project.ID))

	p := payload(t, data, "deleteProject")
	assert.Equal(t, true, p["success"])
	assert.Equal(t, `Project "Doomed" deleted successfully`, p["message"])

	_, err = env.projects.GetByID(context.Background(), project.ID)
	assert.ErrorIs(t, err, stores.ErrNotFound)
}

func TestCreateTaskMutation(t *testing.T) {
	env := setupEnv(t)

	owner, ctx := signedUp(t, env, "owner@example.com")
	project, err := env.projects.Create(context.Background(), "P1", "", &owner)
	require.NoError(t, err)

	t.Run("defaults applied", func(t *testing.T) {
		data := exec(t, env, ctx, fmt.Sprintf(`mutation {
			createTask(projectId: %q, title: "T1") {
				task { title status priority assignee { id } }
				success
				message
			}
		}`, project.ID))

		p := payload(t, data, "createTask")
		assert.Equal(t, true, p["success"])
		assert.Equal(t, "Task created successfully", p["message"])

		task := p["task"].(map[string]interface{})
		assert.Equal(t, "T1", task["title"])
		assert.Equal(t, "BACKLOG", task["status"])
		assert.Equal(t, "MEDIUM", task["priority"])
		assert.Nil(t, task["assignee"])
	})

	t.Run("explicit enums", func(t *testing.T) {
		data := exec(t, env, ctx, fmt.Sprintf(`mutation {
			createTask(projectId: %q, title: "T2", status: DOING, priority: URGENT) {
				task { status priority }
				success
			}
		}`, project.ID))

		p := payload(t, data, "createTask")
		assert.Equal(t, true, p["success"])

		task := p["task"].(map[string]interface{})
		assert.Equal(t, "DOING", task["status"])
		assert.Equal(t, "URGENT", task["priority"])
	})

	t.Run("anonymous caller", func(t *testing.T) {
		data := exec(t, env, context.Background(), fmt.Sprintf(`mutation {
			createTask(projectId: %q, title: "T3") {
				task { id }
				success
				message
			}
		}`, project.ID))

		p := payload(t, data, "createTask")
		assert.Equal(t, false, p["success"])
		assert.Equal(t, "Authentication required to create a task", p["message"])
		assert.Nil(t, p["task"])
	})
}

func TestUpdateTaskMutation(t *testing.T) {
	env := setupEnv(t)

	owner, ctx := signedUp(t, env, "owner@example.com")
	project, err := env.projects.Create(context.Background(), "P1", "", &owner)
	require.NoError(t, err)

	task, err := env.tasks.Create(context.Background(), stores.CreateTaskInput{ProjectID: project.ID, Title: "T1"}, &owner)
	require.NoError(t, err)

	data := exec(t, env, ctx, fmt.Sprintf(`mutation {
		updateTask(id: %q, status: DONE) {
			task { title status }
			success
			message
		}
	}`, task.ID))

	p := payload(t, data, "updateTask")
	assert.Equal(t, true, p["success"])
	assert.Equal(t, "Task updated successfully", p["message"])

	updated := p["task"].(map[string]interface{})
	assert.Equal(t, "T1", updated["title"], "omitted fields stay untouched")
	assert.Equal(t, "DONE", updated["status"])
}

func TestTaskQueries(t *testing.T) {
	env := setupEnv(t)

	owner, ctx := signedUp(t, env, "owner@example.com")
	project, err := env.projects.Create(context.Background(), "P1", "", &owner)
	require.NoError(t, err)

	_, err = env.tasks.Create(context.Background(), stores.CreateTaskInput{
		ProjectID:  project.ID,
		Title:      "mine",
		Status:     models.StatusDoing,
		AssigneeID: &owner.ID,
	}, &owner)
	require.NoError(t, err)
	_, err = env.tasks.Create(context.Background(), stores.CreateTaskInput{ProjectID: project.ID, Title: "other"}, &owner)
	require.NoError(t, err)

	data := exec(t, env, ctx, fmt.Sprintf(`{
		allTasks { id }
		tasksByProject(projectId: %q) { id }
		tasksByStatus(status: DOING) { title }
		myTasks { title assignee { email } }
	}`, project.ID))

	assert.Len(t, data["allTasks"], 2)
	assert.Len(t, data["tasksByProject"], 2)

	doing := data["tasksByStatus"].([]interface{})
	require.Len(t, doing, 1)
	assert.Equal(t, "mine", doing[0].(map[string]interface{})["title"])

	mine := data["myTasks"].([]interface{})
	require.Len(t, mine, 1)
	task := mine[0].(map[string]interface{})
	assert.Equal(t, "mine", task["title"])
	assert.Equal(t, "owner@example.com", task["assignee"].(map[string]interface{})["email"])
}

func TestSingleEntityLookups(t *testing.T) {
	env := setupEnv(t)

	owner, _ := signedUp(t, env, "owner@example.com")
	project, err := env.projects.Create(context.Background(), "P1", "", &owner)
	require.NoError(t, err)

	data := exec(t, env, context.Background(), fmt.Sprintf(`{
		project(id: %q) { name owner { email } taskCount }
	}`, project.ID))

	got := data["project"].(map[string]interface{})
	assert.Equal(t, "P1", got["name"])
	assert.Equal(t, "owner@example.com", got["owner"].(map[string]interface{})["email"])
	assert.EqualValues(t, 0, got["taskCount"])

	// Malformed and unknown ids both read as absent.
	data = exec(t, env, context.Background(), `{ task(id: "not-a-uuid") { id } }`)
	assert.Nil(t, data["task"])

	data = exec(t, env, context.Background(), `{ user(id: "7f1fb90e-3a3f-4f6a-9a6e-000000000000") { id } }`)
	assert.Nil(t, data["user"])
}
