package user

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	msgRegistered         = "User registered"
	msgLoggedIn           = "Login successful!!"
	msgDuplicateUsername  = "USERNAME already exists!!"
	msgInvalidCredentials = "Invalid credentials"
)

type UserHandler struct {
	db     Database
	logger *zap.Logger
}

func NewUserHandler(db Database, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		db:     db,
		logger: logger,
	}
}

type credentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type AuthResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError describes one failed check of the request body shape.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type ValidationResponse struct {
	Detail []FieldError `json:"detail"`
}

func (h *UserHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	username, password, fieldErrs := decodeCredentials(r)
	if len(fieldErrs) > 0 {
		JSON(w, http.StatusUnprocessableEntity, ValidationResponse{Detail: fieldErrs})
		return
	}

	id, err := h.db.AddUser(username, password)
	if err != nil {
		if errors.Cause(err) == ErrDuplicateUsername {
			JSON(w, http.StatusBadRequest, ErrorResponse{Detail: msgDuplicateUsername})
			return
		}
		h.logger.Error("Error registering user", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.logger.Info("User registered", zap.Int("user_id", id), zap.String("username", username))
	JSON(w, http.StatusOK, AuthResponse{Message: msgRegistered, UserID: id})
}

func (h *UserHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	username, password, fieldErrs := decodeCredentials(r)
	if len(fieldErrs) > 0 {
		JSON(w, http.StatusUnprocessableEntity, ValidationResponse{Detail: fieldErrs})
		return
	}

	found, err := h.db.FindByCredentials(username, password)
	if err != nil {
		if errors.Cause(err) == ErrInvalidCredentials {
			JSON(w, http.StatusUnauthorized, ErrorResponse{Detail: msgInvalidCredentials})
			return
		}
		h.logger.Error("Error looking up user", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, AuthResponse{Message: msgLoggedIn, UserID: found.ID})
}

func (h *UserHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.ListUsers()
	if err != nil {
		h.logger.Error("Error listing users", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []Summary{}
	}

	JSON(w, http.StatusOK, users)
}

// decodeCredentials checks presence only. Empty strings are accepted and
// unknown fields are ignored.
func decodeCredentials(r *http.Request) (string, string, []FieldError) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return "", "", []FieldError{{
				Loc:  []string{"body", typeErr.Field},
				Msg:  "str type expected",
				Type: "type_error.str",
			}}
		}
		return "", "", []FieldError{{
			Loc:  []string{"body"},
			Msg:  "invalid request body",
			Type: "value_error.jsondecode",
		}}
	}

	var fieldErrs []FieldError
	if req.Username == nil {
		fieldErrs = append(fieldErrs, missingField("username"))
	}
	if req.Password == nil {
		fieldErrs = append(fieldErrs, missingField("password"))
	}
	if len(fieldErrs) > 0 {
		return "", "", fieldErrs
	}
	return *req.Username, *req.Password, nil
}

func missingField(name string) FieldError {
	return FieldError{
		Loc:  []string{"body", name},
		Msg:  "field required",
		Type: "value_error.missing",
	}
}

func JSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
