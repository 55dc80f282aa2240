package graph

import (
	"time"

	graphql "github.com/graph-gophers/graphql-go"
)

// Mutation envelopes. Domain outcomes travel in {entity, success, message};
// GraphQL-level errors are reserved for malformed requests and internal
// failures in query resolution.

type CreateUserPayloadResolver struct {
	user    *UserResolver
	success bool
	message string
}

func (p *CreateUserPayloadResolver) User() *UserResolver { return p.user }
func (p *CreateUserPayloadResolver) Success() bool       { return p.success }
func (p *CreateUserPayloadResolver) Message() string     { return p.message }

type TokenPayloadResolver struct {
	token   *string
	success bool
	message string
}

func (p *TokenPayloadResolver) Token() *string { return p.token }
func (p *TokenPayloadResolver) Success() bool  { return p.success }
func (p *TokenPayloadResolver) Message() string { return p.message }

type VerifyTokenPayloadResolver struct {
	email     *string
	expiresAt *time.Time
	success   bool
	message   string
}

func (p *VerifyTokenPayloadResolver) Email() *string { return p.email }

func (p *VerifyTokenPayloadResolver) ExpiresAt() *graphql.Time {
	if p.expiresAt == nil {
		return nil
	}
	return &graphql.Time{Time: *p.expiresAt}
}

func (p *VerifyTokenPayloadResolver) Success() bool   { return p.success }
func (p *VerifyTokenPayloadResolver) Message() string { return p.message }

type ProjectPayloadResolver struct {
	project *ProjectResolver
	success bool
	message string
}

func (p *ProjectPayloadResolver) Project() *ProjectResolver { return p.project }
func (p *ProjectPayloadResolver) Success() bool             { return p.success }
func (p *ProjectPayloadResolver) Message() string           { return p.message }

type TaskPayloadResolver struct {
	task    *TaskResolver
	success bool
	message string
}

func (p *TaskPayloadResolver) Task() *TaskResolver { return p.task }
func (p *TaskPayloadResolver) Success() bool       { return p.success }
func (p *TaskPayloadResolver) Message() string     { return p.message }

type DeletePayloadResolver struct {
	success bool
	message string
}

func (p *DeletePayloadResolver) Success() bool   { return p.success }
func (p *DeletePayloadResolver) Message() string { return p.message }
