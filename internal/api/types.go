package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type fieldErrorsResponse struct {
	Errors map[string]string `json:"errors"`
}

type userRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type userResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// splitRequest accepts amounts as JSON numbers or strings.
type splitRequest struct {
	Method     string           `json:"method"`
	Amount     *decimal.Decimal `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage"`
}

type expenseRequest struct {
	PayerID      *int64           `json:"payer_id"`
	Amount       *decimal.Decimal `json:"amount"`
	Participants []int64          `json:"participants"`
	Splits       []splitRequest   `json:"splits"`
}

// Money is rendered as a JSON number built from the decimal's exact digits.
type splitResponse struct {
	Method     string      `json:"method"`
	Amount     json.Number `json:"amount,omitempty"`
	Percentage json.Number `json:"percentage,omitempty"`
}

type expenseResponse struct {
	ID           int64           `json:"id"`
	PayerID      int64           `json:"payer_id"`
	Amount       json.Number     `json:"amount"`
	Participants []int64         `json:"participants"`
	Splits       []splitResponse `json:"splits"`
	SplitAmounts []json.Number   `json:"split_amounts"`
	CreatedAt    int64           `json:"created_at"`
}

type balanceResponse struct {
	UserID  int64       `json:"user_id"`
	Name    string      `json:"name"`
	Balance json.Number `json:"balance"`
}

type userExpenseResponse struct {
	ExpenseID   int64       `json:"expense_id"`
	PayerName   string      `json:"payer_name"`
	Amount      json.Number `json:"amount"`
	SplitAmount json.Number `json:"split_amount"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile}
}

func (req expenseRequest) toInput() service.ExpenseInput {
	in := service.ExpenseInput{
		PayerID:      req.PayerID,
		Amount:       req.Amount,
		Participants: req.Participants,
	}
	if req.Splits != nil {
		in.Splits = make([]models.SplitSpec, len(req.Splits))
		for i, s := range req.Splits {
			spec := models.SplitSpec{Method: models.SplitMethod(s.Method)}
			if s.Amount != nil {
				spec.Amount = *s.Amount
			}
			if s.Percentage != nil {
				spec.Percentage = *s.Percentage
			}
			in.Splits[i] = spec
		}
	}
	return in
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	resp := expenseResponse{
		ID:           e.ID,
		PayerID:      e.PayerID,
		Amount:       number(e.Amount),
		Participants: e.Participants,
		Splits:       make([]splitResponse, len(e.Splits)),
		SplitAmounts: make([]json.Number, len(e.SplitAmounts)),
		CreatedAt:    e.CreatedAt,
	}
	for i, s := range e.Splits {
		split := splitResponse{Method: string(s.Method)}
		switch s.Method {
		case models.SplitExact:
			split.Amount = number(s.Amount)
		case models.SplitPercentage:
			split.Percentage = number(s.Percentage)
		}
		resp.Splits[i] = split
	}
	for i, a := range e.SplitAmounts {
		resp.SplitAmounts[i] = number(a)
	}
	return resp
}
