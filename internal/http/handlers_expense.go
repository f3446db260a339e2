package http

import (
	"errors"
	"fmt"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	logger := log.FromContext(ctx)
	sess := s.sessions.Get(w, r)
	form := ParseExpenseForm(r.PostForm)

	e, err := form.Expense()
	if err != nil {
		s.rejectForm(w, r, sess, form, err)
		return
	}

	receipt, err := s.svc.CreateExpense(ctx, e)
	if errors.Is(err, core.ErrValidation) {
		s.rejectForm(w, r, sess, form, err)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to save expense", log.NewFields().WithExpense(e).WithOperation(log.OpCreate).WithError(err).ToSlice()...)
		view := newFormView(sess.SelectedCategory(), form, s.currency).
			withMessage(NotificationError, "Could not save the expense. Please try again.")
		s.render(w, r, NewHTMXResponse().Status(http.StatusInternalServerError), "expense_form", view)
		return
	}

	e.ID = receipt.ID
	sess.SelectCategory(e.Category)
	logger.InfoContext(ctx, "Expense created", log.NewFields().WithExpense(e).WithOperation(log.OpCreate).ToSlice()...)

	msg := fmt.Sprintf("Expense added: %s - %s", e.Name, e.Amount.Format(s.currency))
	b := NewHTMXResponse().TriggerExpenseCreated(receipt.ID)
	view := newFormView(sess.SelectedCategory(), ExpenseForm{}, s.currency)
	if receipt.ExportErr != nil {
		warn := msg + ". The spreadsheet export could not be updated."
		view = view.withMessage(NotificationWarning, warn)
		b.TriggerWarningNotification(warn)
	} else {
		view = view.withMessage(NotificationSuccess, msg)
		b.TriggerSuccessNotification(msg)
	}
	s.render(w, r, b, "expense_form", view)
}

func (s *Server) rejectForm(w http.ResponseWriter, r *http.Request, sess *Session, form ExpenseForm, err error) {
	log.FromContext(r.Context()).InfoContext(r.Context(), "Expense rejected",
		log.FieldOperation, log.OpCreate,
		log.FieldErrorType, log.ErrorType(err),
		log.FieldError, err.Error())
	view := newFormView(sess.SelectedCategory(), form, s.currency).
		withMessage(NotificationError, validationMessage(err))
	s.render(w, r, NewHTMXResponse().Status(http.StatusUnprocessableEntity), "expense_form", view)
}

// validationMessage is the user facing text for a validation error.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyName):
		return "Please enter an expense name."
	case errors.Is(err, core.ErrInvalidAmount):
		return "Please enter an amount greater than 0."
	case errors.Is(err, core.ErrInvalidCategory):
		return "Please choose one of the listed categories."
	case errors.Is(err, core.ErrInvalidDate):
		return "Please enter a valid date (YYYY-MM-DD)."
	}
	return "The expense could not be validated."
}

// handleDeleteExpense removes the selected record and returns the refreshed
// browse view, honouring the filter the user had applied.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	logger := log.FromContext(ctx)

	id, err := ParseID(r.Form)
	if err != nil {
		BadRequestError("Please select an expense to delete.").Write(w)
		return
	}

	receipt, err := s.svc.DeleteExpense(ctx, id)
	if err != nil {
		s.storageFailure(w, r, log.OpDelete, err)
		return
	}
	logger.InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id)

	records, err := s.svc.ListExpenses(ctx)
	if err != nil {
		s.storageFailure(w, r, log.OpList, err)
		return
	}

	b := NewHTMXResponse().TriggerExpenseDeleted(id)
	if receipt.ExportErr != nil {
		b.TriggerWarningNotification("Expense deleted. The spreadsheet export could not be updated.")
	} else {
		b.TriggerSuccessNotification("Expense deleted.")
	}
	s.render(w, r, b, "expenses", newBrowseView(records, ParseFilter(r.Form), s.currency))
}
