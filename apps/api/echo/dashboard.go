package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/admitcrm/core/student"
)

type dashboardApi struct {
	svc *student.Service
}

func registerDashboardAPI(g *echo.Group, svc *student.Service) {
	api := dashboardApi{svc: svc}
	g.GET("/dashboard", api.retrieve)
}

func (api *dashboardApi) retrieve(ctx echo.Context) error {
	dash, err := api.svc.Dashboard(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}
