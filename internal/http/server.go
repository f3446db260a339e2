package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
	appweb "fintrack/web"
)

// ExpenseService is the write path and snapshot source used by the handlers.
type ExpenseService interface {
	CreateExpense(ctx context.Context, e core.Expense) (services.Receipt, error)
	DeleteExpense(ctx context.Context, id int64) (services.Receipt, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)
}

// Options tune the server; the zero value is usable.
type Options struct {
	CurrencySymbol string
	Logger         *log.Logger
	RequestTimeout time.Duration
	// MutationsPerMinute caps writes per client IP; 0 means 60.
	MutationsPerMinute int
}

type Server struct {
	http.Server
	templates *template.Template
	svc       ExpenseService
	sessions  *SessionStore
	logger    *log.Logger
	currency  string
	timeout   time.Duration
	started   time.Time
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, svc ExpenseService, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "₹"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 7 * time.Second
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: t,
		svc:       svc,
		sessions:  NewSessionStore(),
		logger:    opts.Logger,
		currency:  opts.CurrencySymbol,
		timeout:   opts.RequestTimeout,
		started:   time.Now(),
	}

	mux := http.NewServeMux()

	sub, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
	mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	limit := ratelimit.NewLimiter(ratelimit.Config{Requests: opts.MutationsPerMinute, Window: time.Minute}).
		Middleware(trace.ClientIP)
	mux.Handle("/expenses", limit(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("/expenses/delete", limit(http.HandlerFunc(s.handleDeleteExpense)))
	// UI partials
	mux.HandleFunc("/ui/form", s.handleForm)
	mux.HandleFunc("/ui/category", s.handleSelectCategory)
	mux.HandleFunc("/ui/dashboard", s.handleDashboard)
	mux.HandleFunc("/ui/expenses", s.handleExpenses)

	var h http.Handler = mux
	h = security.Headers(security.DefaultHeadersConfig())(h)
	h = trace.Middleware(h)
	h = log.Middleware(s.logger)(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// render writes the named template with status; a template failure turns
// into a 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder, name string, data any) {
	if err := b.BodyTemplate(s.templates, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldOperation, log.OpRender,
			"template", name,
			log.FieldError, err.Error())
		InternalServerError("Failed to render page").Write(w)
		return
	}
	b.Write(w)
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}
