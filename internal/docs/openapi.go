// Package docs publishes the API description: an OpenAPI 3 document built
// from the route definitions and a Swagger UI page rendering it.
package docs

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bissquit/subscribers-api/internal/version"
	"github.com/getkin/kin-openapi/openapi3"
)

// Paths under which the documentation is served.
const (
	SpecPath = "/api/openapi.json"
	UIPath   = "/docs"
)

// ServerURL builds the externally visible base URL from host and port.
// A host that already carries a scheme is used verbatim.
func ServerURL(host, port string) string {
	if strings.Contains(host, "://") {
		return strings.TrimSuffix(host, "/")
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" || port == "80" {
		return "http://" + host
	}
	return fmt.Sprintf("http://%s:%s", host, port)
}

// NewDocument returns the validated OpenAPI description of the subscribers API.
// serverURL may be empty, in which case no servers entry is published.
func NewDocument(ctx context.Context, serverURL string) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Subscribers API",
			Description: "Manage subscribers and the channels they follow.",
			Version:     version.Version,
		},
		Paths: openapi3.NewPaths(),
	}
	if serverURL != "" {
		doc.Servers = openapi3.Servers{{URL: serverURL}}
	}

	doc.Paths.Set("/api/subscribers/names", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"subscribers"},
			OperationID: "listSubscriberNames",
			Summary:     "List subscriber names",
			Responses: responses(
				on(http.StatusOK, jsonResponse("Names of all subscribers", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))),
				on(http.StatusInternalServerError, errorResponse("Record store failure", true)),
			),
		},
	})

	doc.Paths.Set("/api/subscribers", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"subscribers"},
			OperationID: "listSubscribers",
			Summary:     "List subscribers",
			Responses: responses(
				on(http.StatusOK, jsonResponse("All subscribers", openapi3.NewArraySchema().WithItems(subscriberSchema()))),
				on(http.StatusInternalServerError, errorResponse("Record store failure", true)),
			),
		},
		Post: &openapi3.Operation{
			Tags:        []string{"subscribers"},
			OperationID: "createSubscriber",
			Summary:     "Create a subscriber",
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Subscriber to create").
					WithRequired(true).
					WithJSONSchema(createSubscriberSchema()),
			},
			Responses: responses(
				on(http.StatusCreated, jsonResponse("Created subscriber", subscriberSchema())),
				on(http.StatusBadRequest, errorResponse("Missing name or subscribedChannel", false)),
				on(http.StatusInternalServerError, errorResponse("Record store failure", true)),
			),
		},
	})

	doc.Paths.Set("/api/subscribers/{id}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"subscribers"},
			OperationID: "getSubscriber",
			Summary:     "Get a subscriber by id",
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewPathParameter("id").
					WithDescription("Subscriber id").
					WithSchema(openapi3.NewStringSchema())},
			},
			Responses: responses(
				on(http.StatusOK, jsonResponse("The subscriber", subscriberSchema())),
				on(http.StatusNotFound, errorResponse("Subscriber not found", false)),
				on(http.StatusInternalServerError, errorResponse("Malformed id or record store failure", true)),
			),
		},
	})

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

func subscriberSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("_id", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("subscribedChannel", openapi3.NewStringSchema().WithMinLength(1))
	s.Required = []string{"_id", "name", "subscribedChannel"}
	return s
}

func createSubscriberSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("subscribedChannel", openapi3.NewStringSchema())
	s.Required = []string{"name", "subscribedChannel"}
	return s
}

func errorSchema(withCause bool) *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema())
	if withCause {
		s = s.WithProperty("error", openapi3.NewStringSchema())
	}
	s.Required = []string{"message"}
	return s
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchema(schema)
}

func errorResponse(description string, withCause bool) *openapi3.Response {
	return jsonResponse(description, errorSchema(withCause))
}

type statusResponse struct {
	status   int
	response *openapi3.Response
}

func on(status int, response *openapi3.Response) statusResponse {
	return statusResponse{status: status, response: response}
}

func responses(entries ...statusResponse) *openapi3.Responses {
	r := openapi3.NewResponsesWithCapacity(len(entries))
	for _, e := range entries {
		r.Set(strconv.Itoa(e.status), &openapi3.ResponseRef{Value: e.response})
	}
	return r
}
