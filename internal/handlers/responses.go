package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"triage/internal/email"
	"triage/internal/models"
	"triage/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// GetResponseHandler returns the reply draft belonging to an email
// @Summary Get the reply draft for an email
// @Tags responses
// @Produce json
// @Param id path string true "Email id"
// @Success 200 {object} models.AiResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/emails/{id}/response [get]
func GetResponseHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		response, err := st.GetResponseByEmailID(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "AI response not found"})
		}
		return c.JSON(http.StatusOK, response)
	}
}

// UpdateResponseHandler applies a partial edit to a reply draft
// @Summary Update a reply draft
// @Description Save edited content or change the draft status
// @Tags responses
// @Accept json
// @Produce json
// @Param id path string true "Response id"
// @Param request body models.ResponseUpdateRequest true "Fields to update"
// @Success 200 {object} models.AiResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/responses/{id} [patch]
func UpdateResponseHandler(st *store.Store, validate *validator.Validate) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ResponseUpdateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid response status"})
		}

		response, err := st.UpdateResponse(c.Param("id"), req)
		if err != nil {
			if errors.Is(err, store.ErrResponseNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "AI response not found"})
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}

		return c.JSON(http.StatusOK, response)
	}
}

// SendResponseHandler marks a reply draft as sent and resolves its email
// @Summary Send a reply draft
// @Description Mark the draft as sent, resolve the owning email, and dispatch the reply when outbound email is configured
// @Tags responses
// @Produce json
// @Param id path string true "Response id"
// @Success 200 {object} models.AiResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/responses/{id}/send [post]
func SendResponseHandler(st *store.Store, dispatcher *email.Dispatcher, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		response, err := st.MarkResponseSent(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "AI response not found"})
		}

		// Outbound dispatch is best effort: the stored state is already
		// final and a delivery failure must not surface to the caller.
		if dispatcher != nil && dispatcher.Enabled() {
			if owner, err := st.GetEmail(response.EmailID); err == nil {
				if err := dispatcher.SendReply(owner.Sender, owner.Subject, response.Content); err != nil {
					logger.Warn().Err(err).Str("email_id", owner.ID).Msg("Reply dispatch failed")
				} else {
					logger.Info().Str("email_id", owner.ID).Msg("Reply dispatched")
				}
			}
		}

		return c.JSON(http.StatusOK, response)
	}
}
