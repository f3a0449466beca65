package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"projectboard/backend/handlers"
	"projectboard/backend/logging"
	"projectboard/backend/middleware"
	"projectboard/backend/repositories"
	"projectboard/backend/services"
	"projectboard/backend/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Projects Service...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "projects_db"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	store := repositories.NewMongoStore(client.Database(mongoDBName))
	if err := store.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	var notifications *services.NotificationClient
	if notificationsURL := os.Getenv("NOTIFICATIONS_SERVICE_URL"); notificationsURL != "" {
		notificationsBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "notifications-cb",
			MaxRequests: 1,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' state changed from %s to %s", name, from.String(), to.String())
			},
		})
		notifications = services.NewNotificationClient(notificationsURL, utils.NewHTTPClient(), notificationsBreaker)
	}

	projectService := services.NewProjectService(store, notifications)
	taskService := services.NewTaskService(store)

	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuthMiddleware)

	api.HandleFunc("/projects/create-project", projectHandler.CreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/update-project/{id}", projectHandler.UpdateProject).Methods(http.MethodPut)
	api.HandleFunc("/projects/delete-project/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{id}/add-member", projectHandler.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}/members/{email}/remove", projectHandler.RemoveMember).Methods(http.MethodDelete)
	api.HandleFunc("/users/emails", projectHandler.FetchEmails).Methods(http.MethodGet)
	api.HandleFunc("/projects/", projectHandler.GetProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", projectHandler.GetProjectByID).Methods(http.MethodGet)

	api.HandleFunc("/projects/{projectId}/tasks/create-task", taskHandler.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectId}/tasks/update-task/{taskId}", taskHandler.UpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/projects/{projectId}/tasks/delete-task/{taskId}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{projectId}/tasks", taskHandler.GetAllTasks).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectId}/tasks/{taskId}", taskHandler.GetTask).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
