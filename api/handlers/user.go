package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveline/vehicle-inspection-api/config"
	"github.com/driveline/vehicle-inspection-api/databases"
	"github.com/driveline/vehicle-inspection-api/models"
)

// User exported for testing purposes
type User struct {
	DB        databases.UserDatabase
	JWTSecret string
}

type createUserRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phoneNumber"`
	Role        models.UserRole `json:"role"`
	Password    string          `json:"password"`
}

// UserCreateHandler registers a new account. The password is hashed before
// persistence and never echoed back.
func (u User) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.PhoneNumber == "" || req.Password == "" {
		config.ErrorStatus("failed to validate user", http.StatusBadRequest, w,
			fmt.Errorf("name, email, phoneNumber and password are required"))
		return
	}
	if req.Role == "" {
		req.Role = models.RolePorterDetailer
	}
	if !models.ValidRole(req.Role) {
		config.ErrorStatus("failed to validate user", http.StatusBadRequest, w,
			fmt.Errorf("role %q is not recognized", req.Role))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	user := models.User{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Password:    string(hash),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := u.DB.InsertOne(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			config.ErrorStatus(duplicateUserField(err)+" already exists", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates email+password and returns a signed bearer token.
// Unknown user and wrong password produce the identical message to prevent
// account enumeration.
func (u User) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := u.DB.FindOne(r.Context(), bson.M{"email": email})
	if err != nil {
		config.ErrorStatus("invalid email or password", http.StatusUnauthorized, w,
			fmt.Errorf("authentication failed"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid email or password", http.StatusUnauthorized, w,
			fmt.Errorf("authentication failed"))
		return
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.JWTSecret))
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.LoginResponse{AccessToken: signed, User: *user})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UserByIDHandler returns a user by ID. The password hash is never serialized.
func (u User) UserByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := u.DB.FindOne(r.Context(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// duplicateUserField names the unique index violated by a duplicate-key error
func duplicateUserField(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "phoneNumber") {
		return "phoneNumber"
	}
	if strings.Contains(msg, "email") {
		return "email"
	}
	return "field"
}
