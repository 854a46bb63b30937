package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"optigenius/internal/store"
)

func reportStore(c *fiber.Ctx) (*store.Store, error) {
	stVal := c.Locals("store")
	if stVal == nil {
		return nil, c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Success: false,
			Code:    "STORAGE_UNAVAILABLE",
			Error:   "Report storage is not configured",
		})
	}
	return stVal.(*store.Store), nil
}

func listReportsHandler(c *fiber.Ctx) error {
	st, err := reportStore(c)
	if st == nil {
		return err
	}

	reports, err := st.ListReports(c.Context(), userID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Code:    "INTERNAL_ERROR",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": reports})
}

func getReportHandler(c *fiber.Ctx) error {
	st, err := reportStore(c)
	if st == nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Code:    "BAD_REQUEST",
			Error:   "Invalid report id",
		})
	}

	report, err := st.GetReport(c.Context(), id, userID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Success: false,
				Code:    "NOT_FOUND",
				Error:   "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Code:    "INTERNAL_ERROR",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": report})
}

func deleteReportHandler(c *fiber.Ctx) error {
	st, err := reportStore(c)
	if st == nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Code:    "BAD_REQUEST",
			Error:   "Invalid report id",
		})
	}

	if err := st.DeleteReport(c.Context(), id, userID(c)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Success: false,
				Code:    "NOT_FOUND",
				Error:   "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Code:    "INTERNAL_ERROR",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
