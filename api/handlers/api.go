package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/api/scheduler"
	"github.com/linesmerrill/lifeline-api/config"
	"github.com/linesmerrill/lifeline-api/dashboard"
	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/models"
	"github.com/linesmerrill/lifeline-api/policy"
)

// watchedCollections feed the broker when change streams are enabled
var watchedCollections = []string{
	databases.AccidentCollection,
	databases.MedicalIDCollection,
	databases.AmbulanceCollection,
	databases.AlertLogCollection,
	databases.ProfileCollection,
}

// App stores the router and db connection, so it can be reused
type App struct {
	Router *mux.Router
	Config config.Config
	Broker *feed.Broker

	dbHelper databases.DatabaseHelper
	client   databases.ClientHelper
}

// publisher is nil when change streams feed the broker, so a write is never
// announced twice
func (a *App) publisher() Publisher {
	if a.Config.ChangeStreams || a.Broker == nil {
		return nil
	}
	return a.Broker.Publish
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := &api.MiddlewareDB{
		DB:     databases.NewProfileDatabase(a.dbHelper),
		Secret: []byte(a.Config.JWTSecret),
		TTL:    a.Config.TokenTTL,
	}
	m.SetupGoGuardian()

	adb := databases.NewAccidentDatabase(a.dbHelper)
	mdb := databases.NewMedicalIDDatabase(a.dbHelper)
	bdb := databases.NewAmbulanceDatabase(a.dbHelper)
	ldb := databases.NewAlertLogDatabase(a.dbHelper)
	pdb := databases.NewProfileDatabase(a.dbHelper)
	publish := a.publisher()

	acc := Accident{DB: adb, ADB: bdb, LDB: ldb, Publish: publish}
	mid := MedicalID{DB: mdb, Publish: publish}
	amb := Ambulance{DB: bdb, Publish: publish}
	alerts := AlertLog{DB: ldb}
	u := User{DB: pdb}
	loader := dashboard.Loader{Accidents: adb, Ambulances: bdb, MedicalIDs: mdb, Profiles: pdb, Alerts: ldb}
	d := Dashboard{Loader: loader}
	metrics := Metrics{Collector: api.GetMetrics(), Broker: a.Broker}
	sessions := Sessions{Broker: a.Broker, Accident: acc, MedicalID: mid, Ambulance: amb, Dashboard: loader}

	timeout := api.TimeoutMiddleware(a.Config.RequestTimeout)
	// secured authenticates, applies the gates in order and bounds the
	// request with the configured timeout
	secured := func(h http.HandlerFunc, gates ...func(http.Handler) http.Handler) http.Handler {
		var next http.Handler = h
		for i := len(gates) - 1; i >= 0; i-- {
			next = gates[i](next)
		}
		return timeout(m.Middleware(next))
	}
	canTransition := api.RequireRole(policy.CanTransitionAccidentStatus)
	canManageAmbulances := api.RequireRole(policy.CanManageAmbulances)

	r := mux.NewRouter()

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.MetricsMiddleware)

	apiCreate.Handle("/auth/token", secured(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", secured(m.RevokeToken)).Methods("DELETE")

	apiCreate.Handle("/me", secured(MeHandler)).Methods("GET")
	apiCreate.Handle("/navigation", secured(NavigationHandler)).Methods("GET")

	apiCreate.Handle("/dashboard", secured(d.DashboardHandler, api.RequireNavigation("/dashboard"))).Methods("GET")

	apiCreate.Handle("/accidents", secured(acc.AccidentsHandler, api.RequireNavigation("/emergencies"))).Methods("GET")
	apiCreate.Handle("/accidents", secured(acc.CreateAccidentHandler, api.RequireNavigation("/emergencies"))).Methods("POST")
	apiCreate.Handle("/accidents/{accident_id}/status", secured(acc.UpdateAccidentStatusHandler, canTransition)).Methods("PATCH")
	apiCreate.Handle("/accidents/{accident_id}/ambulance", secured(acc.AssignAmbulanceHandler, canTransition)).Methods("PUT")

	apiCreate.Handle("/medical-ids", secured(mid.MedicalIDsHandler, api.RequireNavigation("/medical-ids"))).Methods("GET")
	apiCreate.Handle("/medical-ids", secured(mid.CreateMedicalIDHandler, api.RequireNavigation("/medical-ids"))).Methods("POST")
	apiCreate.Handle("/medical-ids/{medical_id}", secured(mid.DeleteMedicalIDHandler, api.RequireNavigation("/medical-ids"))).Methods("DELETE")

	apiCreate.Handle("/ambulances", secured(amb.AmbulancesHandler, api.RequireNavigation("/ambulances"))).Methods("GET")
	apiCreate.Handle("/ambulances", secured(amb.CreateAmbulanceHandler, canManageAmbulances)).Methods("POST")
	apiCreate.Handle("/ambulances/{ambulance_id}/status", secured(amb.UpdateAmbulanceStatusHandler, canManageAmbulances)).Methods("PATCH")

	apiCreate.Handle("/alerts", secured(alerts.AlertsHandler, api.RequireNavigation("/alerts"))).Methods("GET")
	apiCreate.Handle("/users", secured(u.UsersHandler, api.RequireNavigation("/users"))).Methods("GET")
	apiCreate.Handle("/metrics", secured(metrics.MetricsHandler, api.RequireNavigation("/users"))).Methods("GET")

	// page sessions live as long as the socket, so no request timeout
	r.Handle("/ws/{page}", m.Middleware(http.HandlerFunc(sessions.PageSessionHandler))).Methods("GET")

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("lifeline-api has connected to the database")

	api.SetQueryTimeout(a.Config.QueryTimeout)
	if a.Broker == nil {
		a.Broker = feed.NewBroker()
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Watch tails every watched collection into the broker until ctx is done.
// It does nothing unless change streams are enabled.
func (a *App) Watch(ctx context.Context) {
	if !a.Config.ChangeStreams {
		return
	}
	for _, name := range watchedCollections {
		go a.Broker.Watch(ctx, name, a.dbHelper.Collection(name))
	}
	zap.S().Infow("watching change streams", "collections", watchedCollections)
}

// Scheduler builds the escalation scheduler on the app's connection
func (a *App) Scheduler() *scheduler.Scheduler {
	var broker *feed.Broker
	if !a.Config.ChangeStreams {
		broker = a.Broker
	}
	return scheduler.NewScheduler(
		databases.NewAccidentDatabase(a.dbHelper),
		databases.NewAlertLogDatabase(a.dbHelper),
		broker,
		scheduler.NewSendgridMailer(a.Config.SendgridAPIKey, a.Config.AlertEmailFrom, a.Config.AlertEmailTo),
		a.Config.EscalationAfter,
	)
}

// Close disconnects from the database
func (a *App) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
