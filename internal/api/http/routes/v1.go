package routes

import (
	tripshttp "github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/http"
	"github.com/gin-gonic/gin"
)

type V1Deps struct {
	Trips *tripshttp.Handler
}

// RegisterV1 mounts the JSON API under /api/v1.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	dep.Trips.Register(api)
}
