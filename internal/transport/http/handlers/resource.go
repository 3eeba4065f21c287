package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/covenantlab/contract-platform/internal/core/port"
	"github.com/covenantlab/contract-platform/internal/repository"
)

// reservedListParams are query parameters interpreted as pagination and
// ordering rather than column filters.
var reservedListParams = map[string]struct{}{
	"limit":   {},
	"offset":  {},
	"orderBy": {},
	"order":   {},
}

// ResourceOption configures a Resource controller.
type ResourceOption[T any] func(*Resource[T])

// WithSanitizedResponses strips credential keys from every payload the
// resource returns.
func WithSanitizedResponses[T any]() ResourceOption[T] {
	return func(r *Resource[T]) {
		r.sanitize = true
	}
}

// WithPrepareCreate registers a hook run on the decoded entity before it is
// persisted, typically to assign identifiers and timestamps.
func WithPrepareCreate[T any](prepare func(*T)) ResourceOption[T] {
	return func(r *Resource[T]) {
		r.prepareCreate = prepare
	}
}

// Resource is a generic CRUD controller over a repository. Every mounted
// collection shares the same request surface: filtering and pagination on
// List, create with prepare hooks, opaque patch maps on Update.
type Resource[T any] struct {
	repo          port.Repository[T]
	sanitize      bool
	prepareCreate func(*T)
}

// NewResource builds a controller for one collection.
func NewResource[T any](repo port.Repository[T], opts ...ResourceOption[T]) *Resource[T] {
	r := &Resource[T]{repo: repo}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resource[T]) respond(c *gin.Context, status int, payload any) {
	if r.sanitize {
		payload = Sanitize(payload)
	}
	c.JSON(status, payload)
}

// List returns all entities matching the query-parameter filters. Reserved
// parameters control ordering and pagination; everything else is treated as
// an equality filter on the column of the same name.
func (r *Resource[T]) List(c *gin.Context) {
	criteria := port.Criteria{Filter: port.Filter{}}

	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		if _, reserved := reservedListParams[key]; reserved {
			continue
		}
		criteria.Filter[key] = values[0]
	}

	if orderBy := c.Query("orderBy"); orderBy != "" {
		criteria.OrderBy = []port.Order{{
			Column: orderBy,
			Desc:   c.Query("order") == "desc",
		}}
	}

	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			criteria.Limit = n
		}
	}

	if offset := c.Query("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n > 0 {
			criteria.Offset = n
		}
	}

	items, err := r.repo.FindMany(c.Request.Context(), criteria)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrInvalidField, Status: http.StatusBadRequest, Message: "Unknown field"},
		}, http.StatusInternalServerError, "failed to list")
		return
	}

	if items == nil {
		items = []T{}
	}

	r.respond(c, http.StatusOK, items)
}

// Get returns one entity by primary key. An absent row is a successful
// response with a JSON null body, not a 404.
func (r *Resource[T]) Get(c *gin.Context) {
	entity, err := r.repo.FindUnique(c.Request.Context(), port.Filter{"id": c.Param("id")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to get"))
		return
	}

	r.respond(c, http.StatusOK, entity)
}

// Create decodes the request body into the entity type and persists it.
func (r *Resource[T]) Create(c *gin.Context) {
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	if r.prepareCreate != nil {
		r.prepareCreate(&entity)
	}

	created, err := r.repo.Create(c.Request.Context(), entity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to create"))
		return
	}

	r.respond(c, http.StatusCreated, created)
}

// Update applies an opaque patch map to the entity with the given id.
func (r *Resource[T]) Update(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}
	delete(data, "id")

	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "empty update"))
		return
	}

	updated, err := r.repo.Update(c.Request.Context(), port.Filter{"id": c.Param("id")}, data)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "Not found"},
			{Err: repository.ErrInvalidField, Status: http.StatusBadRequest, Message: "Unknown field"},
		}, http.StatusInternalServerError, "failed to update")
		return
	}

	r.respond(c, http.StatusOK, updated)
}

// Delete removes the entity with the given id and returns it.
func (r *Resource[T]) Delete(c *gin.Context) {
	deleted, err := r.repo.Delete(c.Request.Context(), port.Filter{"id": c.Param("id")})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "Not found"},
		}, http.StatusInternalServerError, "failed to delete")
		return
	}

	r.respond(c, http.StatusOK, deleted)
}
