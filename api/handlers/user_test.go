package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveline/vehicle-inspection-api/api/handlers"
	dbmocks "github.com/driveline/vehicle-inspection-api/databases/mocks"
	"github.com/driveline/vehicle-inspection-api/models"
)

func TestUser_UserCreateHandlerDefaultsRole(t *testing.T) {
	db := &dbmocks.UserDatabase{}
	var inserted models.User
	db.On("InsertOne", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.User)
		}).
		Return(nil, nil)
	u := handlers.User{DB: db, JWTSecret: "secret"}

	body := []byte(`{"name":"Ravi","email":"Ravi@Example.COM","phoneNumber":"+911234567890","password":"s3cret"}`)
	req := httptest.NewRequest("POST", "/api/v1/users", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, models.RolePorterDetailer, inserted.Role)
	assert.Equal(t, "ravi@example.com", inserted.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.Password), []byte("s3cret")))
	// The hash never leaves the server.
	assert.NotContains(t, rr.Body.String(), "password")
	assert.NotContains(t, rr.Body.String(), inserted.Password)
}

func TestUser_UserCreateHandlerRejectsUnknownRole(t *testing.T) {
	db := &dbmocks.UserDatabase{}
	u := handlers.User{DB: db, JWTSecret: "secret"}

	body := []byte(`{"name":"Ravi","email":"ravi@example.com","phoneNumber":"+911234567890","password":"s3cret","role":"SUPERUSER"}`)
	req := httptest.NewRequest("POST", "/api/v1/users", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestUser_UserCreateHandlerRequiresAllFields(t *testing.T) {
	db := &dbmocks.UserDatabase{}
	u := handlers.User{DB: db, JWTSecret: "secret"}

	body := []byte(`{"name":"Ravi","email":"ravi@example.com"}`)
	req := httptest.NewRequest("POST", "/api/v1/users", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestUser_UserCreateHandlerNamesDuplicateField(t *testing.T) {
	db := &dbmocks.UserDatabase{}
	db.On("InsertOne", mock.Anything, mock.Anything).
		Return(nil, duplicateKeyErr("E11000 duplicate key error index: email_1 dup key"))
	u := handlers.User{DB: db, JWTSecret: "secret"}

	body := []byte(`{"name":"Ravi","email":"ravi@example.com","phoneNumber":"+911234567890","password":"s3cret"}`)
	req := httptest.NewRequest("POST", "/api/v1/users", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	u.UserCreateHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "email already exists")
}

func TestUser_LoginHandlerUnknownUser(t *testing.T) {
	db := &dbmocks.UserDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	u := handlers.User{DB: db, JWTSecret: "secret"}

	body := []byte(`{"email":"nobody@example.com","password":"whatever"}`)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	u.LoginHandler(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid email or password")
}

func TestUser_LoginHandlerWrongPasswordSameMessage(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	db := &dbmocks.UserDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.User{ID: primitive.NewObjectID(), Email: "ravi@example.com", Password: string(hash)}, nil)
	u := handlers.User{DB: db, JWTSecret: "secret"}

	body := []byte(`{"email":"ravi@example.com","password":"wrong"}`)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	u.LoginHandler(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid email or password")
}

func TestUser_LoginHandlerIssuesToken(t *testing.T) {
	userID := primitive.NewObjectID()
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)

	db := &dbmocks.UserDatabase{}
	var filter bson.M
	db.On("FindOne", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			filter = args.Get(1).(bson.M)
		}).
		Return(&models.User{
			ID:       userID,
			Name:     "Ravi",
			Email:    "ravi@example.com",
			Role:     models.RoleServiceAdvisor,
			Password: string(hash),
		}, nil)
	u := handlers.User{DB: db, JWTSecret: "secret"}

	body := []byte(`{"email":"  Ravi@Example.com ","password":"s3cret"}`)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	u.LoginHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ravi@example.com", filter["email"])

	var resp models.LoginResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ravi@example.com", resp.User.Email)
	assert.NotContains(t, rr.Body.String(), string(hash))

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, userID.Hex(), claims["sub"])
	assert.Equal(t, string(models.RoleServiceAdvisor), claims["role"])
}

func TestUser_UserByIDHandlerBadHex(t *testing.T) {
	u := handlers.User{DB: &dbmocks.UserDatabase{}, JWTSecret: "secret"}

	req := httptest.NewRequest("GET", "/api/v1/users/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"user_id": "abc"})
	rr := httptest.NewRecorder()
	u.UserByIDHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUser_UserByIDHandlerNotFound(t *testing.T) {
	db := &dbmocks.UserDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	u := handlers.User{DB: db, JWTSecret: "secret"}

	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/api/v1/users/"+id.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"user_id": id.Hex()})
	rr := httptest.NewRecorder()
	u.UserByIDHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
