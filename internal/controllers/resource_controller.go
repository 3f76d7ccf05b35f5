package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/flowbaker/commerce-go/internal/managers"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

const DefaultPageSize = 10

// ResourceController serves the commerce REST surface from a ResourceManager
type ResourceController struct {
	resources *managers.ResourceManager
	pageSize  int
	segments  map[string]bool
}

type ResourceControllerDependencies struct {
	ResourceManager *managers.ResourceManager
	PageSize        int
}

func NewResourceController(deps ResourceControllerDependencies) *ResourceController {
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	segments := map[string]bool{}
	for _, resource := range commerce.ResourceTypes() {
		segment, _ := commerce.ResolveSegment(resource)
		segments[segment] = true
	}

	return &ResourceController{
		resources: deps.ResourceManager,
		pageSize:  pageSize,
		segments:  segments,
	}
}

// RequireKnownPath rejects unknown API versions and resource segments
func (rc *ResourceController) RequireKnownPath(c fiber.Ctx) error {
	version := c.Params("version")
	number, err := strconv.Atoi(strings.TrimPrefix(version, "v"))
	if !strings.HasPrefix(version, "v") || err != nil || number < 1 {
		return notFound(c, fmt.Sprintf("unknown API version %q", version))
	}

	if !rc.segments[c.Params("resource")] {
		return notFound(c, fmt.Sprintf("unknown resource %q", c.Params("resource")))
	}

	if nested := c.Params("nested"); nested != "" && !rc.segments[nested] {
		return notFound(c, fmt.Sprintf("unknown resource %q", nested))
	}

	return c.Next()
}

func (rc *ResourceController) List(c fiber.Ctx) error {
	return rc.listCollection(c, c.Params("resource"))
}

func (rc *ResourceController) ListNested(c fiber.Ctx) error {
	return rc.listCollection(c, nestedCollection(c))
}

func (rc *ResourceController) Get(c fiber.Ctx) error {
	return rc.getRecord(c, c.Params("resource"), c.Params("id"))
}

func (rc *ResourceController) GetNested(c fiber.Ctx) error {
	return rc.getRecord(c, nestedCollection(c), c.Params("nestedId"))
}

func (rc *ResourceController) Build(c fiber.Ctx) error {
	fields, err := decodeFields(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	record := rc.resources.Create(c.Params("resource"), fields)

	log.Debug().
		Str("resource", c.Params("resource")).
		Str("id", record.ID()).
		Msg("Sandbox record created")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

func (rc *ResourceController) Update(c fiber.Ctx) error {
	fields, err := decodeFields(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	record, err := rc.resources.Update(c.Params("resource"), c.Params("id"), fields)
	if err != nil {
		return rc.recordError(c, c.Params("resource"), c.Params("id"), err)
	}

	return c.JSON(fiber.Map{"data": record})
}

func (rc *ResourceController) Delete(c fiber.Ctx) error {
	if err := rc.resources.Delete(c.Params("resource"), c.Params("id")); err != nil {
		return rc.recordError(c, c.Params("resource"), c.Params("id"), err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "deleted": true}})
}

func (rc *ResourceController) listCollection(c fiber.Ctx, collection string) error {
	page, err := positiveQuery(c, "page", 1)
	if err != nil {
		return badRequest(c, err.Error())
	}

	limit, err := positiveQuery(c, "limit", rc.pageSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result := rc.resources.List(collection, page, limit)

	var nextPage any
	if result.HasMore {
		query := url.Values{}
		for key, value := range c.Queries() {
			query.Set(key, value)
		}
		query.Set("page", strconv.Itoa(page+1))
		query.Set("limit", strconv.Itoa(limit))

		nextPage = fmt.Sprintf("/%s/%s?%s", c.Params("version"), collection, query.Encode())
	}

	return c.JSON(fiber.Map{
		"data": result.Records,
		"metadata": fiber.Map{
			"pagination": fiber.Map{
				"currentPage": result.Page,
				"pageSize":    result.PageSize,
				"totalItems":  result.TotalItems,
				"nextPage":    nextPage,
			},
		},
	})
}

func (rc *ResourceController) getRecord(c fiber.Ctx, collection, id string) error {
	record, err := rc.resources.Get(collection, id)
	if err != nil {
		return rc.recordError(c, collection, id, err)
	}

	return c.JSON(fiber.Map{"data": record})
}

func (rc *ResourceController) recordError(c fiber.Ctx, collection, id string, err error) error {
	if errors.Is(err, managers.ErrRecordNotFound) {
		return notFound(c, fmt.Sprintf("%s %s not found", collection, id))
	}

	log.Error().Err(err).Str("collection", collection).Str("id", id).Msg("Sandbox record lookup failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
}

func nestedCollection(c fiber.Ctx) string {
	return c.Params("resource") + "/" + c.Params("id") + "/" + c.Params("nested")
}

func decodeFields(c fiber.Ctx) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("request body must be a JSON object")
	}
	return fields, nil
}

func positiveQuery(c fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func notFound(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": message})
}

func badRequest(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}
