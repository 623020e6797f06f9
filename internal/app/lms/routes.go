package lms

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/lms-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/lms-backend/internal/http/handlers/auth/register"
	coursecreate "github.com/magabrotheeeer/lms-backend/internal/http/handlers/course/create"
	courselist "github.com/magabrotheeeer/lms-backend/internal/http/handlers/course/list"
	courseread "github.com/magabrotheeeer/lms-backend/internal/http/handlers/course/read"
	courseremove "github.com/magabrotheeeer/lms-backend/internal/http/handlers/course/remove"
	"github.com/magabrotheeeer/lms-backend/internal/http/handlers/course/subscribe"
	"github.com/magabrotheeeer/lms-backend/internal/http/handlers/course/unsubscribe"
	courseupdate "github.com/magabrotheeeer/lms-backend/internal/http/handlers/course/update"
	"github.com/magabrotheeeer/lms-backend/internal/http/handlers/health"
	lessoncreate "github.com/magabrotheeeer/lms-backend/internal/http/handlers/lesson/create"
	lessonlist "github.com/magabrotheeeer/lms-backend/internal/http/handlers/lesson/list"
	lessonread "github.com/magabrotheeeer/lms-backend/internal/http/handlers/lesson/read"
	lessonremove "github.com/magabrotheeeer/lms-backend/internal/http/handlers/lesson/remove"
	lessonupdate "github.com/magabrotheeeer/lms-backend/internal/http/handlers/lesson/update"
	"github.com/magabrotheeeer/lms-backend/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/lms-backend/internal/http/handlers/payment/paymentlist"
	userlist "github.com/magabrotheeeer/lms-backend/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/lms-backend/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/lms-backend/internal/services/auth"
	courseservice "github.com/magabrotheeeer/lms-backend/internal/services/course"
	lessonservice "github.com/magabrotheeeer/lms-backend/internal/services/lesson"
	paymentservice "github.com/magabrotheeeer/lms-backend/internal/services/payment"
	subservice "github.com/magabrotheeeer/lms-backend/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	courseService *courseservice.CourseService,
	lessonService *lessonservice.LessonService,
	subscriptionService *subservice.SubscriptionService,
	paymentService *paymentservice.PaymentService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Чтение курса доступно без авторизации, но с токеном
		// ответ дополняется статусом подписки.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(authService, logger))
			r.Get("/courses/{id}", courseread.New(logger, courseService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/courses", coursecreate.New(logger, courseService).ServeHTTP)
			r.Get("/courses", courselist.New(logger, courseService).ServeHTTP)
			r.Put("/courses/{id}", courseupdate.New(logger, courseService).ServeHTTP)
			r.Delete("/courses/{id}", courseremove.New(logger, courseService).ServeHTTP)

			r.Post("/courses/{id}/subscribe", subscribe.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/courses/{id}/unsubscribe", unsubscribe.New(logger, subscriptionService).ServeHTTP)

			r.Post("/lessons", lessoncreate.New(logger, lessonService).ServeHTTP)
			r.Get("/lessons", lessonlist.New(logger, lessonService).ServeHTTP)
			r.Get("/lessons/{id}", lessonread.New(logger, lessonService).ServeHTTP)
			r.Put("/lessons/{id}", lessonupdate.New(logger, lessonService).ServeHTTP)
			r.Delete("/lessons/{id}", lessonremove.New(logger, lessonService).ServeHTTP)

			r.Post("/payments/create", paymentcreate.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, paymentService).ServeHTTP)

			r.Get("/users", userlist.New(logger, authService).ServeHTTP)
		})

		r.Get("/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
