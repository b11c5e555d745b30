package openapi

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document metadata.
const (
	Title   = "Task Service API"
	Version = "1.0.0"

	TasksTag      = "Tasks"
	tasksTagDesc  = "Methods for working with tasks"
	tasksPath     = "/api/v1/tasks"
	taskPath      = "/api/v1/tasks/{uuid}"
	problemMedia  = "application/problem+json"
	schemaRefBase = "#/components/schemas/"

	exampleAssignee    = "123e4567-e89b-12d3-a456-426614174000"
	exampleTaskUUID    = "123e4567-e89b-12d3-a456-426614174001"
	exampleDescription = "Processing of nickel silver spoons"
	exampleTimestamp   = "2024-03-01T10:00:00Z"
	maxDescription     = 1000
)

// NewDocument returns the OpenAPI document for the task endpoints.
func NewDocument() *openapi3.T {
	schemas := openapi3.Schemas{
		"TaskRequest":      openapi3.NewSchemaRef("", taskRequestSchema()),
		"TaskPatchRequest": openapi3.NewSchemaRef("", taskPatchSchema()),
		"TaskResponse":     openapi3.NewSchemaRef("", taskResponseSchema()),
		"ProblemDetail":    openapi3.NewSchemaRef("", problemSchema()),
	}
	ref := func(name string) *openapi3.SchemaRef {
		return openapi3.NewSchemaRef(schemaRefBase+name, schemas[name].Value)
	}

	uuidParam := &openapi3.ParameterRef{Value: openapi3.NewPathParameter("uuid").
		WithDescription("Task's UUID").
		WithSchema(openapi3.NewUUIDSchema())}

	taskList := openapi3.NewArraySchema()
	taskList.Items = ref("TaskResponse")

	problem := func(code int, desc string) openapi3.NewResponsesOption {
		return openapi3.WithStatus(code, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription(desc).
			WithContent(openapi3.NewContentWithSchemaRef(ref("ProblemDetail"), []string{problemMedia}))})
	}
	ok := func(code int, desc string, schema *openapi3.SchemaRef) openapi3.NewResponsesOption {
		resp := openapi3.NewResponse().WithDescription(desc)
		if schema != nil {
			resp = resp.WithContent(openapi3.NewContentWithJSONSchemaRef(schema))
		}
		return openapi3.WithStatus(code, &openapi3.ResponseRef{Value: resp})
	}
	body := func(name string) *openapi3.RequestBodyRef {
		return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(ref(name))}
	}

	notFound := problem(http.StatusNotFound, "Task not found")
	badRequest := problem(http.StatusBadRequest, "Request or assignee is not valid")
	internal := problem(http.StatusInternalServerError, "Internal server error")

	paths := openapi3.NewPaths()
	paths.Set(tasksPath, &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{TasksTag},
			Summary:     "Creating a new task",
			OperationID: "createTask",
			RequestBody: body("TaskRequest"),
			Responses: openapi3.NewResponses(
				ok(http.StatusCreated, "The task was successfully created", ref("TaskResponse")),
				badRequest, internal),
		},
		Get: &openapi3.Operation{
			Tags:        []string{TasksTag},
			Summary:     "Getting a list of all tasks",
			OperationID: "listTasks",
			Responses: openapi3.NewResponses(
				ok(http.StatusOK, "The task was found", openapi3.NewSchemaRef("", taskList)),
				internal),
		},
	})
	paths.Set(taskPath, &openapi3.PathItem{
		Parameters: openapi3.Parameters{uuidParam},
		Get: &openapi3.Operation{
			Tags:        []string{TasksTag},
			Summary:     "Getting a task by UUID",
			OperationID: "getTask",
			Responses: openapi3.NewResponses(
				ok(http.StatusOK, "The task was found", ref("TaskResponse")),
				badRequest, notFound, internal),
		},
		Put: &openapi3.Operation{
			Tags:        []string{TasksTag},
			Summary:     "Full task update",
			OperationID: "replaceTask",
			RequestBody: body("TaskRequest"),
			Responses: openapi3.NewResponses(
				ok(http.StatusOK, "The task has been successfully updated", ref("TaskResponse")),
				badRequest, notFound, internal),
		},
		Patch: &openapi3.Operation{
			Tags:        []string{TasksTag},
			Summary:     "Partial task update",
			OperationID: "patchTask",
			RequestBody: body("TaskPatchRequest"),
			Responses: openapi3.NewResponses(
				ok(http.StatusOK, "The task has been partially updated successfully", ref("TaskResponse")),
				badRequest, notFound, internal),
		},
		Delete: &openapi3.Operation{
			Tags:        []string{TasksTag},
			Summary:     "Deleting a task",
			OperationID: "deleteTask",
			Responses: openapi3.NewResponses(
				ok(http.StatusNoContent, "The task has been deleted", nil),
				badRequest, notFound, internal),
		},
	})

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       Title,
			Description: "Creating, reading, updating and deleting tasks assigned to users",
			Version:     Version,
		},
		Tags:       openapi3.Tags{&openapi3.Tag{Name: TasksTag, Description: tasksTagDesc}},
		Paths:      paths,
		Components: &openapi3.Components{Schemas: schemas},
	}
}

func assigneeSchema() *openapi3.Schema {
	s := openapi3.NewUUIDSchema().WithNullable()
	s.Description = "The UUID of the assigned user"
	s.Example = exampleAssignee
	return s
}

func descriptionSchema() *openapi3.Schema {
	s := openapi3.NewStringSchema().WithMaxLength(maxDescription)
	s.Description = "Task description"
	s.Example = exampleDescription
	return s
}

func taskRequestSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("assigneeUuid", assigneeSchema()).
		WithProperty("description", descriptionSchema().WithMinLength(1))
	s.Description = "Task data for creation or full update"
	s.Required = []string{"description"}
	return s
}

func taskPatchSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("assigneeUuid", assigneeSchema()).
		WithProperty("description", descriptionSchema().WithNullable())
	s.Description = "Task fields to change; absent or null fields are left unchanged"
	return s
}

func taskResponseSchema() *openapi3.Schema {
	id := openapi3.NewUUIDSchema()
	id.Description = "Task's UUID"
	id.Example = exampleTaskUUID

	created := openapi3.NewDateTimeSchema()
	created.Description = "Creation time"
	created.Example = exampleTimestamp

	updated := openapi3.NewDateTimeSchema()
	updated.Description = "Last modification time"
	updated.Example = exampleTimestamp

	s := openapi3.NewObjectSchema().
		WithProperty("uuid", id).
		WithProperty("assigneeUuid", assigneeSchema()).
		WithProperty("description", descriptionSchema()).
		WithProperty("createdAt", created).
		WithProperty("updatedAt", updated)
	s.Description = "Task"
	s.Required = []string{"uuid", "description", "createdAt", "updatedAt"}
	return s
}

func problemSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("type", openapi3.NewStringSchema()).
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewInt32Schema()).
		WithProperty("detail", openapi3.NewStringSchema()).
		WithProperty("instance", openapi3.NewStringSchema()).
		WithProperty("traceId", openapi3.NewStringSchema())
	s.Description = "RFC 7807 problem details"
	s.Required = []string{"type", "title", "status"}
	return s
}
