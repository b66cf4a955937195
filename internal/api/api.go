// Package api exposes the ledger over HTTP with JSON and CSV responses.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/service"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Ledger is the set of operations the HTTP layer needs from the service.
type Ledger interface {
	AddUser(ctx context.Context, name, email, mobile string) (*models.User, error)
	EditUser(ctx context.Context, id int64, name, email, mobile string) (*models.User, error)
	RemoveUser(ctx context.Context, id int64) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) (map[int64]*models.User, error)
	AddExpense(ctx context.Context, in service.ExpenseInput) (*models.Expense, error)
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
	BalanceSheet(ctx context.Context) ([]models.BalanceEntry, error)
	UserExpenses(ctx context.Context, userID int64) ([]models.UserExpense, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// Ensure the service satisfies Ledger
var _ Ledger = (*service.Service)(nil)

// API holds the HTTP REST/JSON handlers for the application.
type API struct {
	ledger  Ledger
	metrics *metrics.Metrics
}

// New creates the API over ledger. m may be nil, in which case /metrics is not served.
func New(ledger Ledger, m *metrics.Metrics) *API {
	return &API{ledger: ledger, metrics: m}
}

// Routes registers every endpoint on a new ServeMux.
func (api *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /add", api.addUser)
	mux.HandleFunc("POST /users", api.addUser)
	mux.HandleFunc("POST /edit/{id}", api.editUser)
	mux.HandleFunc("PUT /users/{id}", api.editUser)
	mux.HandleFunc("GET /delete/{id}", api.removeUser)
	mux.HandleFunc("DELETE /users/{id}", api.removeUser)
	mux.HandleFunc("GET /users", api.listUsers)
	mux.HandleFunc("GET /users/{id}", api.getUser)

	mux.HandleFunc("POST /add_expense", api.addExpense)
	mux.HandleFunc("POST /expenses", api.addExpense)
	mux.HandleFunc("GET /expenses", api.listExpenses)
	mux.HandleFunc("GET /expense/{id}", api.getExpense)
	mux.HandleFunc("GET /expenses/{user_id}", api.userExpenses)

	mux.HandleFunc("GET /balance_sheet", api.balanceSheet)
	mux.HandleFunc("GET /download_balance_sheet", api.downloadBalanceSheet)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if api.metrics != nil {
		mux.Handle("GET /metrics", api.metrics.Handler())
	}

	return mux
}

// Handler returns the routes wrapped with logging, metrics and CORS.
func (api *API) Handler(corsOrigin string) http.Handler {
	return middleware.CORS(corsOrigin)(middleware.Logging(api.metrics)(api.Routes()))
}

// writeJSON marshals data into a response with content-type application/json
func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a status code and error message
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}

// writeServiceError maps the error taxonomy onto status codes. Anything that
// is not a caller error is logged and reported with the generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	var (
		validation *models.ValidationError
		notFound   *models.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		if len(validation.Fields) > 0 {
			writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Errors: validation.Fields})
			return
		}
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error())
	default:
		slog.Error(generic,
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, generic)
	}
}

// decodeJSON reads a JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Warn("Unable to decode and parse json", "error", err)
		writeError(w, http.StatusBadRequest, "unable to decode and parse json")
		return false
	}
	return true
}

// pathID parses the named path value as an ID, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
