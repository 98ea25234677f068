package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/travel-planner-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/api/http/routes"
	tripshttp "github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/http"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	SessionTTL  time.Duration
	DB          httpapi.Pinger
	Planner     tripshttp.Planner
	Sessions    session.Store
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	trips := tripshttp.New(dep.Planner, dep.Sessions)
	trips.RegisterPages(r, dep.SessionTTL)

	routes.RegisterV1(r, routes.V1Deps{Trips: trips})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
