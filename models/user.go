package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserRole is the closed set of roles assignable to a user
type UserRole string

// Role values. PORTER_DETAILER is the default for new accounts.
const (
	RolePorterDetailer        UserRole = "PORTER_DETAILER"
	RoleServiceAdvisor        UserRole = "SERVICE_ADVISOR"
	RoleSalesInventoryManager UserRole = "SALES_INVENTORY_MANAGER"
	RoleAdmin                 UserRole = "ADMIN"
)

// ValidRole reports whether r is one of the four user roles
func ValidRole(r UserRole) bool {
	switch r {
	case RolePorterDetailer, RoleServiceAdvisor, RoleSalesInventoryManager, RoleAdmin:
		return true
	}
	return false
}

// User holds the structure for the user collection in mongo
type User struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	Role        UserRole           `json:"role" bson:"role"`
	// Password is the bcrypt hash. It is never serialized in responses and
	// only read back from mongo on the authentication path.
	Password  string      `json:"-" bson:"password"`
	CreatedAt interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt interface{} `json:"updatedAt" bson:"updatedAt"`
}

// LoginResponse is the envelope returned on successful authentication
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
