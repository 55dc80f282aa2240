package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
)

type graphqlRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQL executes a query/mutation document against the schema. Domain
// failures are carried inside the response payloads; only a malformed request
// body is rejected at the HTTP level.
func GraphQL(schema *graphql.Schema) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req graphqlRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			log.Printf("Failed to bind GraphQL request: %v", err)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		response := schema.Exec(ctx.Request.Context(), req.Query, req.OperationName, req.Variables)

		ctx.JSON(http.StatusOK, response)
	}
}
