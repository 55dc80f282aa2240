package graph

import graphql "github.com/graph-gophers/graphql-go"

// Schema is the single query/mutation surface of the API. Domain failures are
// reported through the mutation payload envelopes, never as GraphQL errors.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	scalar Time

	type Query {
		me: User
		users: [User!]!
		user(id: ID!): User
		allProjects: [Project!]!
		myProjects: [Project!]!
		project(id: ID!): Project
		allTasks: [Task!]!
		tasksByProject(projectId: ID!): [Task!]!
		tasksByStatus(status: TaskStatus!): [Task!]!
		task(id: ID!): Task
		myTasks: [Task!]!
	}

	type Mutation {
		createUser(email: String!, password: String!, firstName: String, lastName: String): CreateUserPayload!
		tokenAuth(email: String!, password: String!): TokenPayload!
		verifyToken(token: String!): VerifyTokenPayload!
		refreshToken(token: String!): TokenPayload!
		createProject(name: String!, description: String): ProjectPayload!
		updateProject(id: ID!, name: String, description: String): ProjectPayload!
		deleteProject(id: ID!): DeletePayload!
		createTask(projectId: ID!, title: String!, description: String, status: TaskStatus, priority: TaskPriority, assigneeId: ID): TaskPayload!
		updateTask(id: ID!, title: String, description: String, status: TaskStatus, priority: TaskPriority, assigneeId: ID): TaskPayload!
		deleteTask(id: ID!): DeletePayload!
	}

	type User {
		id: ID!
		email: String!
		firstName: String!
		lastName: String!
		fullName: String!
		isActive: Boolean!
		dateJoined: Time!
	}

	type Project {
		id: ID!
		name: String!
		description: String!
		owner: User!
		taskCount: Int!
		tasks: [Task!]!
		createdAt: Time!
		updatedAt: Time!
	}

	enum TaskStatus {
		BACKLOG
		TODO
		DOING
		DONE
	}

	enum TaskPriority {
		LOW
		MEDIUM
		HIGH
		URGENT
	}

	type Task {
		id: ID!
		title: String!
		description: String!
		status: TaskStatus!
		priority: TaskPriority!
		project: Project!
		assignee: User
		createdAt: Time!
		updatedAt: Time!
	}

	type CreateUserPayload {
		user: User
		success: Boolean!
		message: String!
	}

	type TokenPayload {
		token: String
		success: Boolean!
		message: String!
	}

	type VerifyTokenPayload {
		email: String
		expiresAt: Time
		success: Boolean!
		message: String!
	}

	type ProjectPayload {
		project: Project
		success: Boolean!
		message: String!
	}

	type TaskPayload {
		task: Task
		success: Boolean!
		message: String!
	}

	type DeletePayload {
		success: Boolean!
		message: String!
	}
`

// NewSchema parses the schema against the resolver. Panics on a schema or
// resolver mismatch, which is a programming error.
func NewSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, r)
}
