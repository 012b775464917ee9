package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"triage/internal/classify"
	"triage/internal/config"
	"triage/internal/models"
	"triage/internal/processor"
	"triage/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeps() (*store.Store, *processor.Processor) {
	proc := processor.New(classify.NewAnalyzer(nil, zerolog.Nop()), zerolog.Nop())
	return store.New(proc, zerolog.Nop()), proc
}

func ingestEmail(t *testing.T, st *store.Store, proc *processor.Processor, subject, body string) (models.Email, models.AiResponse) {
	t.Helper()
	processed, err := proc.ProcessEmail(context.Background(), models.RawEmail{
		Sender:   "customer@example.com",
		Subject:  subject,
		Body:     body,
		SentDate: time.Now().UTC().Add(-time.Hour),
	})
	require.NoError(t, err)
	return st.CreateEmail(processed)
}

func TestListEmailsHandler(t *testing.T) {
	st, proc := newTestDeps()
	ingestEmail(t, st, proc, "Urgent support request", "The system is down, we cannot access anything.")
	ingestEmail(t, st, proc, "Support query about pricing", "What does the enterprise plan cost?")
	ingestEmail(t, st, proc, "Weekly Newsletter", "This week in product news.")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/emails", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := ListEmailsHandler(st)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var emails []models.Email
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &emails))
	require.Len(t, emails, 2)
	require.NotNil(t, emails[0].Priority)
	assert.Equal(t, models.PriorityUrgent, *emails[0].Priority)
}

func TestListEmailsHandler_Filters(t *testing.T) {
	st, proc := newTestDeps()
	ingestEmail(t, st, proc, "Urgent support request", "The billing system is down, we cannot access anything.")
	ingestEmail(t, st, proc, "Support query about pricing", "What does the enterprise plan cost?")

	tests := []struct {
		name          string
		query         string
		expectedCount int
		checkSubject  string
	}{
		{
			name:          "status filter keeps matching emails",
			query:         "status=processing",
			expectedCount: 1,
			checkSubject:  "Urgent support request",
		},
		{
			name:          "status filter with no matches",
			query:         "status=resolved",
			expectedCount: 0,
		},
		{
			name:          "search matches body tokens",
			query:         "search=billing",
			expectedCount: 1,
			checkSubject:  "Urgent support request",
		},
		{
			name:          "search requires every token",
			query:         "search=billing+pricing",
			expectedCount: 0,
		},
		{
			name:          "search is case-insensitive",
			query:         "search=PRICING",
			expectedCount: 1,
			checkSubject:  "Support query about pricing",
		},
		{
			name:          "filters compose",
			query:         "status=pending&search=pricing",
			expectedCount: 1,
			checkSubject:  "Support query about pricing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/emails?"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := ListEmailsHandler(st)(c)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)

			var emails []models.Email
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &emails))
			require.Len(t, emails, tt.expectedCount)
			if tt.checkSubject != "" {
				assert.Equal(t, tt.checkSubject, emails[0].Subject)
			}
		})
	}
}

func TestGetEmailHandler(t *testing.T) {
	st, proc := newTestDeps()
	email, response := ingestEmail(t, st, proc, "Support request", "Please look into my invoice.")

	t.Run("returns email with reply draft", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/emails/"+email.ID, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(email.ID)

		err := GetEmailHandler(st)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var detail models.EmailDetailResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, email.ID, detail.Email.ID)
		require.NotNil(t, detail.AiResponse)
		assert.Equal(t, response.ID, detail.AiResponse.ID)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/emails/missing", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := GetEmailHandler(st)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "Email not found", errResp.Error)
	})
}

func TestCreateEmailHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid email is processed and stored",
			body:           `{"sender":"jane@example.com","subject":"Support request","body":"My invoice looks wrong","sentDate":"2026-03-01T12:00:00Z"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing body field is rejected",
			body:           `{"sender":"jane@example.com","subject":"Support request"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json is rejected",
			body:           `{"sender":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, proc := newTestDeps()

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/emails", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := CreateEmailHandler(st, proc, validator.New())(c)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				var email models.Email
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &email))
				assert.NotEmpty(t, email.ID)
				require.NotNil(t, email.Category)
				assert.Equal(t, "Billing", *email.Category)

				// The reply draft is stored alongside the email.
				_, err := st.GetResponseByEmailID(email.ID)
				assert.NoError(t, err)
			}
		})
	}
}

func TestRefreshEmailsHandler(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"sender,subject,body,sent_date\n"+
			"alice@example.com,Support request,My invoice looks wrong,21-08-2025 14:30\n"+
			"news@example.com,Weekly Newsletter,Product news,21-08-2025 15:00\n"), 0o644))

	st, _ := newTestDeps()
	cfg := &config.Config{SampleDataPath: csvPath}

	t.Run("first refresh seeds the store", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/emails/refresh", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RefreshEmailsHandler(st, cfg)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.RefreshResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		// The newsletter is stored but not visible.
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("second refresh does not duplicate", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/emails/refresh", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RefreshEmailsHandler(st, cfg)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.RefreshResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("missing fixture reports an error", func(t *testing.T) {
		badCfg := &config.Config{SampleDataPath: filepath.Join(t.TempDir(), "missing.csv")}

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/emails/refresh", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RefreshEmailsHandler(st, badCfg)(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestUpdateEmailStatusHandler(t *testing.T) {
	st, proc := newTestDeps()
	email, _ := ingestEmail(t, st, proc, "Support request", "Please look into my question.")

	tests := []struct {
		name           string
		id             string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid status update",
			id:             email.ID,
			body:           `{"status":"resolved"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown status value is rejected",
			id:             email.ID,
			body:           `{"status":"archived"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid status",
		},
		{
			name:           "empty status is rejected",
			id:             email.ID,
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid status",
		},
		{
			name:           "unknown email id",
			id:             "missing",
			body:           `{"status":"resolved"}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Email not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPatch, "/api/emails/"+tt.id+"/status", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			err := UpdateEmailStatusHandler(st, validator.New())(c)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedError != "" {
				var errResp models.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.expectedError, errResp.Error)
			}
		})
	}

	fetched, err := st.GetEmail(email.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, fetched.Status)
}
