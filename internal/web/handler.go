// Package web maps the HTTP surface onto the apikeys and users services.
package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/apikeys"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/middleware"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/session"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/storage"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/users"
)

type Handler struct {
	sessions   session.Store
	keys       *apikeys.Service
	users      *users.Service
	sessionTTL time.Duration
	cookieOpts session.CookieOptions
	exportDir  string
	log        *slog.Logger
}

type Options struct {
	SessionTTL time.Duration
	Cookie     session.CookieOptions
	ExportDir  string
	Logger     *slog.Logger
}

func NewHandler(sessions session.Store, keys *apikeys.Service, userSvc *users.Service, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &Handler{
		sessions:   sessions,
		keys:       keys,
		users:      userSvc,
		sessionTTL: opts.SessionTTL,
		cookieOpts: opts.Cookie,
		exportDir:  opts.ExportDir,
		log:        opts.Logger,
	}
}

// Register installs the views and every route on the router. Everything
// past the login pages sits behind the session guard.
func (h *Handler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(templates())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)

	protected := r.Group("/")
	protected.Use(middleware.RequireAuth(h.sessions))

	protected.GET("/welcome", h.welcome)

	protected.GET("/generate-key", h.generateKeyForm)
	protected.POST("/generate-key", h.generateKey)
	protected.GET("/api-keys", h.listKeys)
	protected.POST("/search-api-keys", h.searchKeys)
	protected.GET("/export-api-keys", h.exportKeys)
	protected.GET("/edit-api-key/:keyId", h.editKeyForm)
	protected.POST("/edit-api-key/:keyId", h.editKey)
	protected.GET("/delete-api-key/:keyId", h.deleteKey)

	protected.GET("/create-user", h.createUserForm)
	protected.POST("/create-user", h.createUser)
	protected.GET("/view-users", h.viewUsers)
	protected.GET("/edit-user/:userId", h.editUserForm)
	protected.POST("/edit-user/:userId", h.editUser)
}

func (h *Handler) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.users.Authenticate(c.Request.Context(), username, password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		c.String(http.StatusOK, "Invalid credentials")
		return
	}
	if err != nil {
		h.log.Error("login lookup failed", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		h.log.Error("session id generation failed", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	expiresAt := time.Now().Add(h.sessionTTL)
	err = h.sessions.Create(c.Request.Context(), session.Session{
		ID:            sessionID,
		Username:      username,
		Authenticated: true,
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		h.log.Error("session create failed", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	session.SetCookie(c.Writer, sessionID, expiresAt, h.cookieOpts)
	c.Redirect(http.StatusFound, "/welcome")
}

func (h *Handler) logout(c *gin.Context) {
	if cookie, err := c.Request.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		// Best-effort: an already-gone session still logs out.
		_ = h.sessions.Destroy(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer, h.cookieOpts)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) welcome(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	c.HTML(http.StatusOK, "welcome.html", gin.H{"Username": sess.Username})
}

func (h *Handler) generateKeyForm(c *gin.Context) {
	c.HTML(http.StatusOK, "generate-key.html", nil)
}

func (h *Handler) generateKey(c *gin.Context) {
	name := c.PostForm("name")

	if _, err := h.keys.Create(c.Request.Context(), name); err != nil {
		h.log.Error("api key creation failed", "error", err)
		c.String(http.StatusOK, "Error generating API key")
		return
	}

	c.Redirect(http.StatusFound, "/api-keys")
}

func (h *Handler) listKeys(c *gin.Context) {
	keys, err := h.keys.List(c.Request.Context())
	if err != nil {
		h.log.Error("api key list failed", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	c.HTML(http.StatusOK, "api-keys.html", gin.H{"Keys": keys, "Search": ""})
}

func (h *Handler) searchKeys(c *gin.Context) {
	search := c.PostForm("search")

	keys, err := h.keys.Search(c.Request.Context(), search)
	if err != nil {
		h.log.Error("api key search failed", "error", err, "search", search)
		c.String(http.StatusOK, "Error searching API keys")
		return
	}

	c.HTML(http.StatusOK, "api-keys.html", gin.H{"Keys": keys, "Search": search})
}

func (h *Handler) exportKeys(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.keys.ExportCSV(c.Request.Context(), &buf); err != nil {
		h.log.Error("api key export failed", "error", err)
		c.String(http.StatusInternalServerError, "Error exporting API keys")
		return
	}

	// Server-side copy is incidental; the download must not depend on it.
	path := filepath.Join(h.exportDir, apikeys.ExportFilename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		h.log.Warn("export side copy failed", "error", err, "path", path)
	}

	c.Header("Content-Disposition", `attachment; filename="`+apikeys.ExportFilename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) editKeyForm(c *gin.Context) {
	key, err := h.keys.Get(c.Request.Context(), c.Param("keyId"))
	if errors.Is(err, storage.ErrNotFound) {
		c.String(http.StatusOK, "API Key not found")
		return
	}
	if err != nil {
		h.log.Error("api key fetch failed", "error", err)
		c.String(http.StatusOK, "Error fetching API Key")
		return
	}

	c.HTML(http.StatusOK, "edit-key.html", gin.H{"Key": key})
}

func (h *Handler) editKey(c *gin.Context) {
	name := c.PostForm("name")

	err := h.keys.Rename(c.Request.Context(), c.Param("keyId"), name)
	if errors.Is(err, storage.ErrNotFound) {
		c.String(http.StatusOK, "API Key not found")
		return
	}
	if err != nil {
		h.log.Error("api key update failed", "error", err)
		c.String(http.StatusOK, "Error updating API Key")
		return
	}

	c.Redirect(http.StatusFound, "/api-keys")
}

func (h *Handler) deleteKey(c *gin.Context) {
	if err := h.keys.Delete(c.Request.Context(), c.Param("keyId")); err != nil {
		h.log.Error("api key delete failed", "error", err)
		c.String(http.StatusOK, "Error deleting API Key")
		return
	}

	c.Redirect(http.StatusFound, "/api-keys")
}

func (h *Handler) createUserForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create-user.html", nil)
}

func (h *Handler) createUser(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.users.Create(c.Request.Context(), username, password)
	if errors.Is(err, users.ErrUsernameTaken) {
		c.String(http.StatusOK, "Username already exists")
		return
	}
	if err != nil {
		h.log.Error("user creation failed", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	c.Redirect(http.StatusFound, "/view-users")
}

func (h *Handler) viewUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error("user list failed", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	c.HTML(http.StatusOK, "view-users.html", gin.H{"Users": list})
}

func (h *Handler) editUserForm(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("userId"))
	if errors.Is(err, storage.ErrNotFound) {
		c.String(http.StatusOK, "User not found")
		return
	}
	if err != nil {
		h.log.Error("user fetch failed", "error", err)
		c.String(http.StatusOK, "Error fetching user")
		return
	}

	c.HTML(http.StatusOK, "edit-user.html", gin.H{"User": u})
}

func (h *Handler) editUser(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	err := h.users.Update(c.Request.Context(), c.Param("userId"), username, password)
	if errors.Is(err, storage.ErrNotFound) {
		c.String(http.StatusOK, "User not found")
		return
	}
	if err != nil {
		h.log.Error("user update failed", "error", err)
		c.String(http.StatusOK, "Error updating user")
		return
	}

	c.Redirect(http.StatusFound, "/view-users")
}
