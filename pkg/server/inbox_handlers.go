package server

import (
	"net/http"
	"time"

	"github.com/rendetalje/friday/pkg/chat"
	"github.com/rendetalje/friday/pkg/models"
)

const (
	defaultCalendarDays    = 7
	defaultEmailQuery      = "in:inbox"
	defaultEmailMaxResults = 20
)

type createLeadRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Source  string `json:"source"`
	Notes   string `json:"notes"`
}

type createTaskRequest struct {
	UserID      int64      `json:"user_id" validate:"required,gt=0"`
	Title       string     `json:"title"   validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	RelatedTo   string     `json:"related_to"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type scoreLeadRequest struct {
	SenderName   string `json:"sender_name"`
	SenderEmail  string `json:"sender_email"   validate:"required,email"`
	EmailContent string `json:"email_content"  validate:"required"`
}

// GetLeadsHandler godoc
//
//	@Summary		List leads for a user
//	@Tags			inbox
//	@Produce		json
//	@Param			user_id	query		int64	true	"User ID"
//	@Success		200		{array}		models.Lead
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/leads [get]
func GetLeadsHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requireQueryUserID(r, w)
		if userID == 0 {
			return
		}
		leads, err := appState.LeadStore.ListByUser(r.Context(), userID)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := encodeJSON(w, leads); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// CreateLeadHandler godoc
//
//	@Summary		Create a lead
//	@Tags			inbox
//	@Accept			json
//	@Produce		json
//	@Param			lead	body		createLeadRequest	true	"Lead"
//	@Success		201		{object}	models.Lead
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/leads [post]
func CreateLeadHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createLeadRequest
		if err := decodeAndValidateJSON(r, &payload); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}

		source := payload.Source
		if source == "" {
			source = "manual"
		}
		lead := models.Lead{
			UserID:  payload.UserID,
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Company: payload.Company,
			Source:  source,
			Notes:   payload.Notes,
			Score:   50,
			Status:  models.LeadStatusNew,
		}
		created, err := appState.LeadStore.Create(r.Context(), &lead)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		if err := encodeJSON(w, created); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// UpdateLeadStatusHandler godoc
//
//	@Summary		Update the pipeline status of a lead
//	@Tags			inbox
//	@Accept			json
//	@Produce		plain
//	@Param			leadId	path		int64				true	"Lead ID"
//	@Param			status	body		updateStatusRequest	true	"Status"
//	@Success		200		{string}	string		"OK"
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		404		{object}	APIError	"Not Found"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/leads/{leadId}/status [patch]
func UpdateLeadStatusHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leadID := parseIDFromURL(r, w, "leadId")
		if leadID == 0 {
			return
		}
		var payload updateStatusRequest
		if err := decodeAndValidateJSON(r, &payload); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}
		if err := appState.LeadStore.UpdateStatus(r.Context(), leadID, payload.Status); err != nil {
			if isNotFound(err) {
				renderError(w, err, http.StatusNotFound)
				return
			}
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(OKResponse))
	}
}

// ScoreLeadHandler godoc
//
//	@Summary		Score a lead from its inbound email
//	@Description	runs the LLM lead scoring rubric over the email content and
//	@Description	persists the resulting score on the lead
//	@Tags			inbox
//	@Accept			json
//	@Produce		json
//	@Param			leadId	path		int64				true	"Lead ID"
//	@Param			email	body		scoreLeadRequest	true	"Inbound email"
//	@Success		200		{object}	models.LeadScoreAnalysis
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		404		{object}	APIError	"Not Found"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/leads/{leadId}/score [post]
func ScoreLeadHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leadID := parseIDFromURL(r, w, "leadId")
		if leadID == 0 {
			return
		}
		var payload scoreLeadRequest
		if err := decodeAndValidateJSON(r, &payload); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}

		analysis, err := chat.AnalyzeLeadScore(r.Context(), appState.LLM, chat.LeadScoreInput{
			SenderName:   payload.SenderName,
			SenderEmail:  payload.SenderEmail,
			EmailContent: payload.EmailContent,
		})
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		if err := appState.LeadStore.UpdateScore(r.Context(), leadID, analysis.Score); err != nil {
			if isNotFound(err) {
				renderError(w, err, http.StatusNotFound)
				return
			}
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		if err := encodeJSON(w, analysis); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetTasksHandler godoc
//
//	@Summary		List tasks for a user
//	@Tags			inbox
//	@Produce		json
//	@Param			user_id	query		int64	true	"User ID"
//	@Success		200		{array}		models.Task
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/tasks [get]
func GetTasksHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requireQueryUserID(r, w)
		if userID == 0 {
			return
		}
		tasks, err := appState.TaskStore.ListByUser(r.Context(), userID)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := encodeJSON(w, tasks); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// CreateTaskHandler godoc
//
//	@Summary		Create a task
//	@Tags			inbox
//	@Accept			json
//	@Produce		json
//	@Param			task	body		createTaskRequest	true	"Task"
//	@Success		201		{object}	models.Task
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/tasks [post]
func CreateTaskHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createTaskRequest
		if err := decodeAndValidateJSON(r, &payload); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}

		priority := payload.Priority
		if priority == "" {
			priority = models.TaskPriorityMedium
		}
		task := models.Task{
			UserID:      payload.UserID,
			Title:       payload.Title,
			Description: payload.Description,
			DueDate:     payload.DueDate,
			Priority:    priority,
			Status:      models.TaskStatusTodo,
			RelatedTo:   payload.RelatedTo,
		}
		created, err := appState.TaskStore.Create(r.Context(), &task)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		if err := encodeJSON(w, created); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// UpdateTaskStatusHandler godoc
//
//	@Summary		Update the status of a task
//	@Tags			inbox
//	@Accept			json
//	@Produce		plain
//	@Param			taskId	path		int64				true	"Task ID"
//	@Param			status	body		updateStatusRequest	true	"Status"
//	@Success		200		{string}	string		"OK"
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		404		{object}	APIError	"Not Found"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/tasks/{taskId}/status [patch]
func UpdateTaskStatusHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := parseIDFromURL(r, w, "taskId")
		if taskID == 0 {
			return
		}
		var payload updateStatusRequest
		if err := decodeAndValidateJSON(r, &payload); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}
		if err := appState.TaskStore.UpdateStatus(r.Context(), taskID, payload.Status); err != nil {
			if isNotFound(err) {
				renderError(w, err, http.StatusNotFound)
				return
			}
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(OKResponse))
	}
}

// GetCalendarHandler godoc
//
//	@Summary		List upcoming calendar events
//	@Tags			inbox
//	@Produce		json
//	@Param			days	query		int64	false	"Days ahead to include (default 7)"
//	@Success		200		{array}		models.CalendarEvent
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/calendar [get]
func GetCalendarHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := extractQueryStringValueToInt(r, "days")
		if err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}
		if days <= 0 {
			days = defaultCalendarDays
		}

		now := time.Now()
		events, err := appState.Calendar.ListEvents(r.Context(), now, now.AddDate(0, 0, int(days)))
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := encodeJSON(w, events); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// SearchEmailHandler godoc
//
//	@Summary		Search the mailbox
//	@Tags			inbox
//	@Produce		json
//	@Param			q	query		string	false	"Gmail search query (default in:inbox)"
//	@Param			max	query		int64	false	"Max threads (default 20)"
//	@Success		200	{array}		models.EmailThread
//	@Failure		400	{object}	APIError	"Bad Request"
//	@Failure		500	{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/email [get]
func SearchEmailHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			query = defaultEmailQuery
		}
		maxResults, err := extractQueryStringValueToInt(r, "max")
		if err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}
		if maxResults <= 0 {
			maxResults = defaultEmailMaxResults
		}

		threads, err := appState.Email.SearchThreads(r.Context(), query, int(maxResults))
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := encodeJSON(w, threads); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetCustomersHandler godoc
//
//	@Summary		List customers from the accounting system
//	@Tags			inbox
//	@Produce		json
//	@Success		200	{array}		models.Customer
//	@Failure		500	{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/customers [get]
func GetCustomersHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := appState.Invoicing.GetCustomers(r.Context())
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := encodeJSON(w, customers); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetProductsHandler godoc
//
//	@Summary		List the service catalogue from the accounting system
//	@Tags			inbox
//	@Produce		json
//	@Success		200	{array}		models.Product
//	@Failure		500	{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/products [get]
func GetProductsHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := appState.Invoicing.GetProducts(r.Context())
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := encodeJSON(w, products); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetInvoicesHandler godoc
//
//	@Summary		List invoices from the accounting system
//	@Tags			inbox
//	@Produce		json
//	@Success		200	{array}		models.Invoice
//	@Failure		500	{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/inbox/invoices [get]
func GetInvoicesHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoices, err := appState.Invoicing.GetInvoices(r.Context())
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := encodeJSON(w, invoices); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
