// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Role names carried in access token claims.
const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// Identity represents the authenticated caller's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access user information without depending on Gin.
// The role-scoped profile IDs are issued by the external auth layer; domain
// services only ever compare them against record ownership.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// Roles returns the user's assigned roles.
	Roles() []string
	// HasRole checks if the user has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
	// TenantID returns the caller's tenant profile ID, if any.
	TenantID() *uuid.UUID
	// LandlordID returns the caller's landlord profile ID, if any.
	LandlordID() *uuid.UUID
	// VendorID returns the caller's vendor profile ID, if any.
	VendorID() *uuid.UUID
}

// identity is the concrete implementation of Identity.
type identity struct {
	userID        uuid.UUID
	roles         []string
	authenticated bool
	tenantID      *uuid.UUID
	landlordID    *uuid.UUID
	vendorID      *uuid.UUID
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

func (i *identity) TenantID() *uuid.UUID   { return i.tenantID }
func (i *identity) LandlordID() *uuid.UUID { return i.landlordID }
func (i *identity) VendorID() *uuid.UUID   { return i.vendorID }

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	roles, rolesOK := c.Get(ContextRolesKey)

	if !userOK {
		return &identity{authenticated: false}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var roleList []string
	if rolesOK {
		roleList, _ = roles.([]string)
	}

	return &identity{
		userID:        uid,
		roles:         roleList,
		authenticated: true,
		tenantID:      profileID(c, ContextTenantIDKey),
		landlordID:    profileID(c, ContextLandlordIDKey),
		vendorID:      profileID(c, ContextVendorIDKey),
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}

func profileID(c *gin.Context, key string) *uuid.UUID {
	value, ok := c.Get(key)
	if !ok {
		return nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
