package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/launchhub/portal_end/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// LoginUser is the authenticated actor extracted from the JWT claims.
type LoginUser struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"name"`
}

// UserRole converts the claim role back into the typed enum.
func (u *LoginUser) UserRole() models.UserRole {
	return models.UserRole(u.Role)
}

// IsModerator reports whether the actor may moderate.
func (u *LoginUser) IsModerator() bool {
	return u.UserRole().IsModerator()
}

// GetUser reads the authenticated user from the gin context, set by the
// auth middleware.
func GetUser(c *gin.Context) (*LoginUser, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, CreateUnauthorizedError()
	}

	claims, ok := currentUser.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", currentUser)
	}

	id, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid user id in token")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid user role in token")
	}
	username, _ := claims["username"].(string)

	return &LoginUser{ID: id, Role: role, Username: username}, nil
}

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
	slugCollapse = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a title into a URL-safe slug.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "untitled"
	}
	if len(slug) > 80 {
		slug = strings.Trim(slug[:80], "-")
	}
	return slug
}

// IsValidEmail does a light sanity check on an email address; the real
// validation happens in the binding tags.
func IsValidEmail(email string) bool {
	pattern := `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}
