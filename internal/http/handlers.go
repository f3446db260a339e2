package http

import (
	"encoding/json"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady reports whether the record store can be read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{"templates": "ok", "sessions": s.sessions.Len()}

	if records, err := s.svc.ListExpenses(ctx); err != nil {
		checks["storage"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["storage"] = map[string]any{"status": "ok", "records": len(records)}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleIndex renders the full page with every view filled in, so the page
// is usable before any partial loads.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()
	sess := s.sessions.Get(w, r)

	records, err := s.svc.ListExpenses(ctx)
	if err != nil {
		s.storageFailure(w, r, log.OpList, err)
		return
	}

	data := indexView{
		Form:      newFormView(sess.SelectedCategory(), ExpenseForm{}, s.currency),
		Dashboard: newDashboardView(records, s.currency),
		Browse:    newBrowseView(records, core.Filter{}, s.currency),
		Currency:  s.currency,
	}
	s.render(w, r, NewHTMXResponse(), "index.html", data)
}

// handleForm returns an empty entry form for the caller's session.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	sess := s.sessions.Get(w, r)
	s.render(w, r, NewHTMXResponse(), "expense_form", newFormView(sess.SelectedCategory(), ExpenseForm{}, s.currency))
}

// handleSelectCategory updates the highlighted quick-select category and
// re-renders the form, keeping whatever the user already typed.
func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	sess := s.sessions.Get(w, r)

	raw := r.PostForm.Get("quick_category")
	if raw == "" {
		raw = r.PostForm.Get("category")
	}
	form := ParseExpenseForm(r.PostForm)

	b := NewHTMXResponse()
	if c, err := core.ParseCategory(raw); err == nil && sess.SelectCategory(c) {
		form.Category = string(c)
	} else {
		b.Status(http.StatusUnprocessableEntity)
		form.Category = string(sess.SelectedCategory())
	}
	s.render(w, r, b, "expense_form", newFormView(sess.SelectedCategory(), form, s.currency))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	records, err := s.svc.ListExpenses(ctx)
	if err != nil {
		s.storageFailure(w, r, log.OpList, err)
		return
	}
	s.render(w, r, NewHTMXResponse(), "dashboard", newDashboardView(records, s.currency))
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	records, err := s.svc.ListExpenses(ctx)
	if err != nil {
		s.storageFailure(w, r, log.OpList, err)
		return
	}
	s.render(w, r, NewHTMXResponse(), "expenses", newBrowseView(records, ParseFilter(r.URL.Query()), s.currency))
}

func (s *Server) storageFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	fields := log.NewFields().WithOperation(op).WithError(err)
	log.FromContext(r.Context()).ErrorContext(r.Context(), "Record store unavailable", fields.ToSlice()...)
	InternalServerError("The expense database is unavailable. Please try again.").Write(w)
}
