package service

//go:generate go run go.uber.org/mock/mockgen -source=./renderer.go -destination=../mocks/renderer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/notification/model"
	"hotelops/internal/domains/notification/repository"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
)

const cacheGetTemplate = "notification:template"

type Renderer interface {
	Render(ctx context.Context, notification model.Notification) (model.Message, error)
}

type rendererImpl struct {
	repo  repository.Template
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func NewRenderer(repo repository.Template, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Renderer {
	return &rendererImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Render fills the active stored template for the notification type, falling back to the built-in one.
func (r *rendererImpl) Render(ctx context.Context, notification model.Notification) (res model.Message, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Render")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !notification.Type.Valid() {
		return res, fmt.Errorf("unknown notification type %q", notification.Type)
	}

	tpl, err := r.template(ctx, notification.Type)
	if err != nil {
		return res, err
	}

	subject, body := tpl.Render(notification.Variables)

	return model.Message{
		Type:      notification.Type,
		Recipient: notification.Recipient,
		Subject:   subject,
		Body:      body,
	}, nil
}

func (r *rendererImpl) template(ctx context.Context, notificationType model.Type) (tpl model.Template, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetTemplate, string(notificationType))

	if err = r.cache.Get(ctx, cacheKey, &tpl); err == nil {
		return tpl, nil
	}

	tpl, err = r.repo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldType, Operator: gDto.FilterOperatorEq, Value: notificationType, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("type", string(notificationType)).Msg("failed to get notification template")

		return tpl, fmt.Errorf("failed to get notification template: %w", err)
	}

	if tpl.ID == constant.Empty {
		fallback, ok := model.DefaultTemplate(notificationType)
		if !ok {
			return tpl, fmt.Errorf("no template for notification type %q", notificationType)
		}

		log.Warn().Str("type", string(notificationType)).Msg("no stored template, using built-in")

		return fallback, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := r.cache.Save(c, cacheKey, tpl, r.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save notification template to cache")
		}
	}()

	return tpl, nil
}
