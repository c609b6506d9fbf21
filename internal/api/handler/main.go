package handler

import (
	"net/http"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"

	"kindlog/internal/services"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "💛")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(EdgeRateLimit(cfg.Container))
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.
		routesAPIv1.GET("", Hello)

		a := groupAuth{cfg.Container}
		routesAPIv1.POST("/auth/register", a.Register)
		routesAPIv1.POST("/auth/recover", a.Recover)

		u := groupUser{cfg.Container}
		routesAPIv1User := routesAPIv1.Group("/user/me")
		{
			routesAPIv1User.GET("", u.Me)
			routesAPIv1User.GET("/stats", u.Stats)
			routesAPIv1User.GET("/achievements", u.Achievements)
			routesAPIv1User.GET("/actions", u.Actions)
		}

		ac := groupAction{cfg.Container}
		routesAPIv1.POST("/actions", ac.Record)
		routesAPIv1.POST("/actions/:id/claps", ac.AddClap)
		routesAPIv1.DELETE("/actions/:id/claps", ac.RemoveClap)

		ch := groupChallenge{cfg.Container}
		routesAPIv1.GET("/challenges", ch.List)
		routesAPIv1.GET("/challenges/suggested", ch.Suggested)
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
