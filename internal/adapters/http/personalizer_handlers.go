package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slashexp/experiences/internal/core/usecases"
	"github.com/slashexp/experiences/internal/pkg/metrics"
)

// StartPersonalizerHandler opens a new wizard session.
func StartPersonalizerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := deps.Personalizer.Start(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		metrics.PersonalizerSessions.WithLabelValues("started").Inc()
		return c.Status(201).JSON(session)
	}
}

// GetPersonalizerHandler returns an active wizard session.
func GetPersonalizerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := deps.Personalizer.Get(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, err.Error())
		}
		return c.JSON(session)
	}
}

// AnswerPersonalizerHandler submits the current step's answers.
func AnswerPersonalizerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var answers usecases.StepAnswers
		if err := c.BodyParser(&answers); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		session, err := deps.Personalizer.Advance(c.Context(), c.Params("id"), answers)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(session)
	}
}

// CompletePersonalizerHandler finishes the wizard and returns suggestions.
func CompletePersonalizerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		suggestions, err := deps.Personalizer.Complete(c.Context(), c.Params("id"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		metrics.PersonalizerSessions.WithLabelValues("completed").Inc()
		return c.JSON(fiber.Map{"suggestions": suggestions, "count": len(suggestions)})
	}
}
