package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/apikeys"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/config"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/keygen"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/session"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/users"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/web"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func(context.Context) error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	keyService := apikeys.NewService(infra.Keys, keygen.New(infra.Keys))
	userService := users.NewService(infra.Users)

	handler := web.NewHandler(infra.Sessions, keyService, userService, web.Options{
		SessionTTL: cfg.SessionTTL,
		Cookie: session.CookieOptions{
			Secure:   cfg.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		},
		ExportDir: cfg.ExportDir,
		Logger:    slog.Default(),
	})

	router := gin.New()
	router.Use(gin.Recovery())

	handler.Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router, infra.Close, nil
}
