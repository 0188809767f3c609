package handlers

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"socialforum/internal/config"
	"socialforum/internal/service"
)

// HealthChecker reports whether the backing datastore is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	ChannelService service.ChannelService
	PostService    service.PostService
	CommentService service.CommentService
	Health         HealthChecker
	Cfg            *config.Config
	Log            *zap.Logger
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, health HealthChecker, cfg *config.Config, log *zap.Logger) *Handlers {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		ChannelService: services.Channel,
		PostService:    services.Post,
		CommentService: services.Comment,
		Health:         health,
		Cfg:            cfg,
		Log:            log,
		Validate:       validate,
	}
}

// jsonFieldName makes validation errors name fields the way clients send them.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
