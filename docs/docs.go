// Package docs Driveline Vehicle Inspection API.
//
// Documentation of the Driveline vehicle inspection API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://api.driveline-inspections.com
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/driveline/vehicle-inspection-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/vehicles vehicles vehicleListEndpointID
// Lists vehicles with filters and pagination.
// responses:
//   200: vehicleListResponse

// Paginated vehicle list.
// swagger:response vehicleListResponse
type vehicleListResponseWrapper struct {
	// in:body
	Body models.VehicleListResponse
}
