package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"triage/internal/config"
	"triage/internal/models"
	"triage/internal/processor"
	"triage/internal/store"
	"triage/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ListEmailsHandler returns the visible email list
// @Summary List support emails
// @Description Get all support-relevant emails ordered by priority, then recency. Optional search and status filters compose on top of the ordered list.
// @Tags emails
// @Produce json
// @Param search query string false "Free-text search over subject, sender and body"
// @Param status query string false "Filter by workflow status"
// @Success 200 {array} models.Email
// @Router /api/emails [get]
func ListEmailsHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		emails := st.ListEmails()

		if status := c.QueryParam("status"); status != "" {
			emails = filterByStatus(emails, status)
		}
		if search := c.QueryParam("search"); search != "" {
			emails = filterBySearch(emails, search)
		}

		return c.JSON(http.StatusOK, emails)
	}
}

// filterByStatus keeps emails in the given workflow status.
func filterByStatus(emails []models.Email, status string) []models.Email {
	filtered := make([]models.Email, 0, len(emails))
	for _, email := range emails {
		if email.Status == status {
			filtered = append(filtered, email)
		}
	}
	return filtered
}

// filterBySearch keeps emails whose subject, sender or body contains every
// meaningful token of the query.
func filterBySearch(emails []models.Email, query string) []models.Email {
	required := utils.ExtractMeaningfulTokens(query)
	if len(required) == 0 {
		return emails
	}

	filtered := make([]models.Email, 0, len(emails))
	for _, email := range emails {
		tokenSet := utils.BuildTokenSet(email.Subject, email.Sender, email.Body)
		if utils.ContainsAllTokens(tokenSet, required) {
			filtered = append(filtered, email)
		}
	}
	return filtered
}

// GetEmailHandler returns one email together with its reply draft
// @Summary Get an email
// @Description Get a single email with its AI-drafted reply
// @Tags emails
// @Produce json
// @Param id path string true "Email id"
// @Success 200 {object} models.EmailDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/emails/{id} [get]
func GetEmailHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		email, err := st.GetEmail(id)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Email not found"})
		}

		detail := models.EmailDetailResponse{Email: email}
		if response, err := st.GetResponseByEmailID(id); err == nil {
			detail.AiResponse = &response
		}

		return c.JSON(http.StatusOK, detail)
	}
}

// CreateEmailHandler ingests a raw email through the full pipeline
// @Summary Create an email
// @Description Run a raw email through classification and store it with its reply draft
// @Tags emails
// @Accept json
// @Produce json
// @Param request body models.RawEmail true "Raw email"
// @Success 201 {object} models.Email
// @Failure 400 {object} models.ErrorResponse
// @Router /api/emails [post]
func CreateEmailHandler(st *store.Store, proc *processor.Processor, validate *validator.Validate) echo.HandlerFunc {
	return func(c echo.Context) error {
		var raw models.RawEmail
		if err := c.Bind(&raw); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		}
		if err := validate.Struct(&raw); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Invalid email: %v", err)})
		}

		processed, err := proc.ProcessEmail(c.Request().Context(), raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		}

		email, _ := st.CreateEmail(processed)
		return c.JSON(http.StatusCreated, email)
	}
}

// UpdateEmailStatusHandler changes the workflow status of an email
// @Summary Update email status
// @Description Set the workflow status of an email to pending, processing or resolved
// @Tags emails
// @Accept json
// @Produce json
// @Param id path string true "Email id"
// @Param request body models.StatusUpdateRequest true "New status"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/emails/{id}/status [patch]
func UpdateEmailStatusHandler(st *store.Store, validate *validator.Validate) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.StatusUpdateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid status"})
		}

		if err := st.UpdateEmailStatus(c.Param("id"), req.Status); err != nil {
			if errors.Is(err, store.ErrEmailNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Email not found"})
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}

		return c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
	}
}

// RefreshEmailsHandler loads the sample dataset if it has not been loaded yet
// @Summary Reload sample data
// @Description Trigger the idempotent sample-data import and report the visible email count
// @Tags emails
// @Produce json
// @Success 200 {object} models.RefreshResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/emails/refresh [post]
func RefreshEmailsHandler(st *store.Store, cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		raws, err := store.LoadSampleCSV(cfg.SampleDataPath)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}

		st.Seed(c.Request().Context(), raws)

		return c.JSON(http.StatusOK, models.RefreshResponse{
			Success: true,
			Count:   len(st.ListEmails()),
		})
	}
}
