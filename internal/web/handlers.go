package web

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// credentialsForm is the login form/JSON body.
type credentialsForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next" form:"next"`
}

// registerForm is the registration form body.
type registerForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

// HandleHome renders the landing page.
func (h *Handler) HandleHome(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Session": h.currentSession(c),
	})
}

// HandleLoginPage renders the login form.
func (h *Handler) HandleLoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Next": c.Query("next"),
	})
}

// HandleLogin forwards credentials to the API service and, on success,
// issues the session cookie and redirects to the original destination.
// JSON callers get {success, redirect}; form callers get a 302 or the
// re-rendered login view with an inline error.
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var form credentialsForm
	if err := c.BodyParser(&form); err != nil {
		return h.loginFailure(c, form, "Invalid login request")
	}

	resp, err := h.api.Login(form.Username, form.Password)
	if err != nil {
		log.WithError(err).Error("login call to api service failed")
		return h.loginFailure(c, form, "Login is temporarily unavailable")
	}
	if !resp.Success {
		return h.loginFailure(c, form, "Invalid username or password")
	}

	token, err := h.sessions.Issue(resp.UserID, form.Username)
	if err != nil {
		log.WithError(err).Error("failed to issue session token")
		return h.loginFailure(c, form, "Login is temporarily unavailable")
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.sessions.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	next := form.Next
	if next == "" {
		next = c.Query("next")
	}
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{
			"success":  true,
			"redirect": next,
		})
	}
	return c.Redirect(next, fiber.StatusFound)
}

func (h *Handler) loginFailure(c *fiber.Ctx, form credentialsForm, message string) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
	return c.Render("login", fiber.Map{
		"Error": message,
		"Next":  form.Next,
	})
}

// HandleRegisterPage renders the registration form.
func (h *Handler) HandleRegisterPage(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{
		"Username": "",
		"Email":    "",
	})
}

// HandleRegister forwards the registration fields to the API service. On
// success it redirects to the login page; on failure it re-renders the
// form with the API's message inline.
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var form registerForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("register", fiber.Map{
			"Error":    "Invalid registration request",
			"Username": "",
			"Email":    "",
		})
	}

	resp, err := h.api.Register(form.Username, form.Email, form.Password)
	if err != nil {
		log.WithError(err).Error("register call to api service failed")
		return c.Render("register", fiber.Map{
			"Error":    "Registration is temporarily unavailable",
			"Username": form.Username,
			"Email":    form.Email,
		})
	}
	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = "Registration failed"
		}
		return c.Render("register", fiber.Map{
			"Error":    message,
			"Username": form.Username,
			"Email":    form.Email,
		})
	}

	return c.Redirect("/login", fiber.StatusFound)
}

// HandleLogout clears the session unconditionally and sends the user back
// to the login page.
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/login", fiber.StatusFound)
}

// HandleProducts renders the catalog page.
func (h *Handler) HandleProducts(c *fiber.Ctx) error {
	sess := h.currentSession(c)
	products, err := h.api.Products()
	if err != nil {
		log.WithError(err).Error("products call to api service failed")
		return c.Render("products", fiber.Map{
			"Session": sess,
			"Error":   "Could not load the catalog",
		})
	}
	return c.Render("products", fiber.Map{
		"Session":  sess,
		"Products": products,
	})
}

// HandleCart renders the user's cart page.
func (h *Handler) HandleCart(c *fiber.Ctx) error {
	sess := h.currentSession(c)
	items, err := h.api.CartItems(sess.UserID)
	if err != nil {
		log.WithField("user_id", sess.UserID).WithError(err).
			Error("cart call to api service failed")
		return c.Render("cart", fiber.Map{
			"Session": sess,
			"Error":   "Could not load your cart",
		})
	}
	return c.Render("cart", fiber.Map{
		"Session": sess,
		"Items":   items,
	})
}

// HandleOrders renders the user's order history page.
func (h *Handler) HandleOrders(c *fiber.Ctx) error {
	sess := h.currentSession(c)
	orders, err := h.api.Orders(sess.UserID)
	if err != nil {
		log.WithField("user_id", sess.UserID).WithError(err).
			Error("orders call to api service failed")
		return c.Render("orders", fiber.Map{
			"Session": sess,
			"Error":   "Could not load your orders",
		})
	}
	return c.Render("orders", fiber.Map{
		"Session": sess,
		"Orders":  orders,
	})
}
