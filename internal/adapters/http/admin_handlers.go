package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/slashexp/experiences/internal/core/domain"
)

// AdminAuthMiddleware guards back-office routes with a static bearer
// token. An empty configured token disables the whole group.
func AdminAuthMiddleware(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return errForbidden(c, "admin API disabled")
		}
		auth := c.Get("Authorization")
		presented, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return errUnauthorized(c, "invalid admin token")
		}
		return c.Next()
	}
}

// AdminListUsersHandler returns all storefront accounts.
func AdminListUsersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := deps.Admin.ListUsers(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(users)
	}
}

// AdminDeleteUserHandler removes an account.
func AdminDeleteUserHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Admin.DeleteUser(c.Context(), c.Params("id")); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "deleted"})
	}
}

// AdminListProvidersHandler returns all partner providers.
func AdminListProvidersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		providers, err := deps.Admin.ListProviders(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(providers)
	}
}

// AdminSaveProviderHandler creates or updates a provider.
func AdminSaveProviderHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p domain.Provider
		if err := c.BodyParser(&p); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Admin.SaveProvider(c.Context(), &p); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(p)
	}
}

// AdminDeleteProviderHandler removes a provider.
func AdminDeleteProviderHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Admin.DeleteProvider(c.Context(), c.Params("id")); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "deleted"})
	}
}

// AdminSaveCategoryHandler creates or updates a browse category.
func AdminSaveCategoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cat domain.Category
		if err := c.BodyParser(&cat); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Admin.SaveCategory(c.Context(), &cat); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(cat)
	}
}

// AdminDeleteCategoryHandler removes a category by slug.
func AdminDeleteCategoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Admin.DeleteCategory(c.Context(), c.Params("slug")); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "deleted"})
	}
}

// AdminListLinksHandler returns all partner redirect links.
func AdminListLinksHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		links, err := deps.Admin.ListLinks(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(links)
	}
}

// AdminSaveLinkHandler creates or updates a redirect link.
func AdminSaveLinkHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var l domain.RedirectLink
		if err := c.BodyParser(&l); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Admin.SaveLink(c.Context(), &l); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(l)
	}
}

// AdminSaveExperienceHandler creates or updates a catalog listing.
func AdminSaveExperienceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var e domain.Experience
		if err := c.BodyParser(&e); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Admin.SaveExperience(c.Context(), &e); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(e)
	}
}

// AdminDeleteExperienceHandler removes a catalog listing.
func AdminDeleteExperienceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Admin.DeleteExperience(c.Context(), c.Params("id")); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "deleted"})
	}
}
