package api

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
)

// addUser registers a user from a JSON body.
func (api *API) addUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := api.ledger.AddUser(r.Context(), req.Name, req.Email, req.Mobile)
	if err != nil {
		writeServiceError(w, r, err, "Failed to add user")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// editUser overwrites a user's fields. The body may be JSON or a form.
func (api *API) editUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req userRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if !decodeJSON(w, r, &req) {
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "unable to parse form")
			return
		}
		req = userRequest{
			Name:   r.PostForm.Get("name"),
			Email:  r.PostForm.Get("email"),
			Mobile: r.PostForm.Get("mobile"),
		}
	}

	user, err := api.ledger.EditUser(r.Context(), id, req.Name, req.Email, req.Mobile)
	if err != nil {
		writeServiceError(w, r, err, "Failed to edit user")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (api *API) removeUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := api.ledger.RemoveUser(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listUsers returns all users keyed by ID.
func (api *API) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := api.ledger.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to list users")
		return
	}

	resp := make(map[int64]userResponse, len(users))
	for id, u := range users {
		resp[id] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (api *API) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := api.ledger.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// addExpense records an expense from a JSON body.
func (api *API) addExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := api.ledger.AddExpense(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, r, err, "Failed to add expense")
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (api *API) getExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	expense, err := api.ledger.GetExpense(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to get expense")
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (api *API) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := api.ledger.ListExpenses(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to list expenses")
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// userExpenses returns the expense history of one user.
func (api *API) userExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	history, err := api.ledger.UserExpenses(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve expenses")
		return
	}

	resp := make([]userExpenseResponse, len(history))
	for i, h := range history {
		resp[i] = userExpenseResponse{
			ExpenseID:   h.ExpenseID,
			PayerName:   h.PayerName,
			Amount:      number(h.Amount),
			SplitAmount: number(h.SplitAmount),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (api *API) balanceSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := api.ledger.BalanceSheet(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate balance sheet")
		return
	}

	resp := make([]balanceResponse, len(sheet))
	for i, e := range sheet {
		resp[i] = balanceResponse{UserID: e.UserID, Name: e.Name, Balance: number(e.Balance)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// downloadBalanceSheet serves the balance sheet as a CSV attachment.
// The CSV is rendered fully before any header is sent so failures still get a 500.
func (api *API) downloadBalanceSheet(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := api.ledger.ExportCSV(r.Context(), &buf); err != nil {
		writeServiceError(w, r, err, "Failed to generate balance sheet")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=balance_sheet.csv")
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("Failed to write balance sheet", "error", err)
	}
}
