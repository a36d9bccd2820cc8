package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/PressureTank/authdemo/backend/middleware"
	"github.com/PressureTank/authdemo/backend/user"
)

// NewRouter wires the user routes behind request logging and the
// allow-all CORS policy.
func NewRouter(userHandler *user.UserHandler, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	r.HandleFunc("/register", userHandler.RegisterHandler).Methods("POST")
	r.HandleFunc("/login", userHandler.LoginHandler).Methods("POST")
	r.HandleFunc("/users", userHandler.ListHandler).Methods("GET")

	return middleware.CORS(r)
}
