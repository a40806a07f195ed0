package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/driveline/vehicle-inspection-api/api"
	"github.com/driveline/vehicle-inspection-api/api/scheduler"
	"github.com/driveline/vehicle-inspection-api/config"
	"github.com/driveline/vehicle-inspection-api/databases"
	"github.com/driveline/vehicle-inspection-api/mail"
	"github.com/driveline/vehicle-inspection-api/models"
	"github.com/driveline/vehicle-inspection-api/storage"
)

// App stores the router, db connection and object storage so they can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Storage   storage.ObjectStorage
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	auth := api.Auth{JWTSecret: a.Config.JWTSecret, AIKey: a.Config.AIServiceKey}

	r := mux.NewRouter()

	u := User{DB: databases.NewUserDatabase(a.dbHelper), JWTSecret: a.Config.JWTSecret}
	v := Vehicle{DB: databases.NewVehicleDatabase(a.dbHelper), Storage: a.Storage}
	i := Inspection{
		DB:      databases.NewInspectionDatabase(a.dbHelper),
		VDB:     databases.NewVehicleDatabase(a.dbHelper),
		UDB:     databases.NewUserDatabase(a.dbHelper),
		Storage: a.Storage,
	}
	s := Storage{Storage: a.Storage}
	m := Mail{Mailer: mail.New(&a.Config)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/login", http.HandlerFunc(u.LoginHandler)).Methods("POST")
	apiCreate.Handle("/users", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	apiCreate.Handle("/users/{user_id}", auth.Middleware(http.HandlerFunc(u.UserByIDHandler))).Methods("GET")

	advisorUp := auth.RequireRoles(models.RoleServiceAdvisor, models.RoleSalesInventoryManager, models.RoleAdmin)
	managerUp := auth.RequireRoles(models.RoleSalesInventoryManager, models.RoleAdmin)
	adminOnly := auth.RequireRoles(models.RoleAdmin)
	anyRole := auth.RequireRoles(models.RolePorterDetailer, models.RoleServiceAdvisor,
		models.RoleSalesInventoryManager, models.RoleAdmin)

	apiCreate.Handle("/vehicles", advisorUp(http.HandlerFunc(v.CreateVehicleHandler))).Methods("POST")
	apiCreate.Handle("/vehicles", auth.Middleware(http.HandlerFunc(v.VehicleListHandler))).Methods("GET")
	apiCreate.Handle("/vehicles/presigned/car-image", advisorUp(http.HandlerFunc(v.PresignCarImageHandler))).Methods("POST")
	apiCreate.Handle("/vehicles/{vehicle_id}", auth.Middleware(http.HandlerFunc(v.VehicleByIDHandler))).Methods("GET")
	apiCreate.Handle("/vehicles/{vehicle_id}", managerUp(http.HandlerFunc(v.UpdateVehicleHandler))).Methods("PATCH")
	apiCreate.Handle("/vehicles/{vehicle_id}", adminOnly(http.HandlerFunc(v.DeleteVehicleHandler))).Methods("DELETE")

	apiCreate.Handle("/inspections", anyRole(http.HandlerFunc(i.CreateInspectionHandler))).Methods("POST")
	apiCreate.Handle("/inspections/presigned/original", anyRole(http.HandlerFunc(i.PresignOriginalHandler))).Methods("POST")
	apiCreate.Handle("/inspections/presigned/analysed-ai", auth.AIKeyMiddleware(http.HandlerFunc(i.PresignAnalysedHandler))).Methods("POST")
	apiCreate.Handle("/inspections/vehicle/{vehicle_id}", http.HandlerFunc(i.InspectionsByVehicleIDHandler)).Methods("GET")
	apiCreate.Handle("/inspections/{inspection_id}", http.HandlerFunc(i.InspectionByIDHandler)).Methods("GET")
	apiCreate.Handle("/inspections/{inspection_id}", adminOnly(http.HandlerFunc(i.DeleteInspectionHandler))).Methods("DELETE")
	apiCreate.Handle("/inspections/{inspection_id}/status", advisorUp(http.HandlerFunc(i.ChangeStatusHandler))).Methods("PATCH")
	apiCreate.Handle("/inspections/{inspection_id}/images", anyRole(http.HandlerFunc(i.AddImageHandler))).Methods("POST")
	apiCreate.Handle("/inspections/{inspection_id}/images/{image_id}", auth.Middleware(http.HandlerFunc(i.UpdateImageHandler))).Methods("PATCH")
	apiCreate.Handle("/inspections/{inspection_id}/images/{image_id}/damages/{damage_id}", auth.Middleware(http.HandlerFunc(i.UpdateDamageHandler))).Methods("PATCH")

	apiCreate.Handle("/storage/upload", auth.Middleware(http.HandlerFunc(s.UploadHandler))).Methods("POST")
	apiCreate.Handle("/email/send-otp", http.HandlerFunc(m.SendOTPHandler)).Methods("POST")

	// swagger docs hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./docs/"))))
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("vehicle-inspection-api has connected to the database")

	a.Storage, err = storage.New(context.Background(), &a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to initialize object storage")
		return err
	}

	a.Scheduler = scheduler.NewScheduler(
		databases.NewVehicleDatabase(a.dbHelper),
		databases.NewInspectionDatabase(a.dbHelper),
		a.Storage,
		a.Config.AuditSchedule,
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
