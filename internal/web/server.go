package web

import (
	"embed"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler holds the gateway's dependencies: the API client and the
// session cookie manager.
type Handler struct {
	api      *APIClient
	sessions *SessionManager
}

// NewApp builds the session gateway's Fiber app: rendered pages, the
// login/logout/register flows and the login-gated catalog, cart and order
// views.
func NewApp(api *APIClient, sessions *SessionManager) *fiber.App {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err) // embedded FS layout is fixed at compile time
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")

	app := fiber.New(fiber.Config{Views: engine})
	app.Use(logger.New())
	app.Use(recover.New())

	h := &Handler{api: api, sessions: sessions}

	app.Get("/", h.HandleHome)
	app.Get("/login", h.HandleLoginPage)
	app.Post("/login", h.HandleLogin)
	app.Get("/register", h.HandleRegisterPage)
	app.Post("/register", h.HandleRegister)
	app.Get("/logout", h.HandleLogout)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Pages below require a logged-in session.
	authed := app.Group("", h.LoginRequired)
	authed.Get("/products", h.HandleProducts)
	authed.Get("/cart", h.HandleCart)
	authed.Get("/orders", h.HandleOrders)

	return app
}

// LoginRequired guards a route group: a valid session cookie is necessary
// and sufficient. Anything else redirects to the login page, preserving
// the originally requested path for the post-login redirect.
func (h *Handler) LoginRequired(c *fiber.Ctx) error {
	sess, err := h.sessions.Parse(c.Cookies(SessionCookie))
	if err != nil {
		return c.Redirect("/login?next="+url.QueryEscape(c.Path()), fiber.StatusFound)
	}
	c.Locals("session", sess)
	return c.Next()
}

// currentSession returns the session stored by LoginRequired, or parses
// the cookie directly on ungated routes. Returns nil when not logged in.
func (h *Handler) currentSession(c *fiber.Ctx) *Session {
	if sess, ok := c.Locals("session").(*Session); ok {
		return sess
	}
	sess, err := h.sessions.Parse(c.Cookies(SessionCookie))
	if err != nil {
		return nil
	}
	return sess
}
