package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slashexp/experiences/internal/pkg/metrics"
)

// GetCartHandler returns the cart priced against the current catalog.
func GetCartHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := deps.Cart.Get(c.Context(), userID(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(cart)
	}
}

// AddCartItemHandler puts an experience in the cart.
func AddCartItemHandler(deps *Dependencies) fiber.Handler {
	type req struct {
		ExperienceID string `json:"experience_id"`
		Quantity     int    `json:"quantity"`
	}
	return func(c *fiber.Ctx) error {
		var body req
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Cart.Add(c.Context(), userID(c), body.ExperienceID, body.Quantity); err != nil {
			return errBadRequest(c, err.Error())
		}
		cart, err := deps.Cart.Get(c.Context(), userID(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.Status(201).JSON(cart)
	}
}

// RemoveCartItemHandler deletes one experience from the cart.
func RemoveCartItemHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("experienceID")
		if id == "" {
			return errBadRequest(c, "experience id is required")
		}
		if err := deps.Cart.Remove(c.Context(), userID(c), id); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// ClearCartHandler empties the cart.
func ClearCartHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Cart.Clear(c.Context(), userID(c)); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// CheckoutHandler converts the cart into an order with a gateway payment.
func CheckoutHandler(deps *Dependencies) fiber.Handler {
	type req struct {
		GiftMessage    string `json:"gift_message"`
		RecipientEmail string `json:"recipient_email"`
	}
	return func(c *fiber.Ctx) error {
		var body req
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		order, err := deps.Cart.Checkout(c.Context(), userID(c), body.GiftMessage, body.RecipientEmail)
		if err != nil {
			metrics.OrdersPlaced.WithLabelValues("failed").Inc()
			return errBadRequest(c, err.Error())
		}
		metrics.OrdersPlaced.WithLabelValues(order.Status).Inc()
		return c.Status(201).JSON(order)
	}
}

// GetWishlistHandler returns the wishlisted experiences.
func GetWishlistHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exps, err := deps.Wishlist.List(c.Context(), userID(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(exps)
	}
}

// ToggleWishlistHandler flips one experience in or out of the wishlist.
func ToggleWishlistHandler(deps *Dependencies) fiber.Handler {
	type req struct {
		ExperienceID string `json:"experience_id"`
	}
	return func(c *fiber.Ctx) error {
		var body req
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		wishlisted, err := deps.Wishlist.Toggle(c.Context(), userID(c), body.ExperienceID)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"experience_id": body.ExperienceID, "wishlisted": wishlisted})
	}
}

// ClearWishlistHandler empties the wishlist.
func ClearWishlistHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Wishlist.Clear(c.Context(), userID(c)); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
