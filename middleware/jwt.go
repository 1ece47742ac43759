package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/dibyajyoti0750/Ascend-LMS/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user. User ids come from
// the identity provider, so they are strings.
func GenerateJWT(userID, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	userID, role, err := parseBearerToken(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": err.Error(),
		})
	}

	c.Locals("userId", userID)
	c.Locals("role", role)

	return c.Next()
}

// OptionalJWTMiddleware resolves the caller's identity when a valid
// bearer token is supplied but never rejects the request. Public read
// paths use it to decide how much of a resource to reveal.
func OptionalJWTMiddleware(c *fiber.Ctx) error {
	if userID, role, err := parseBearerToken(c.Get("Authorization")); err == nil {
		c.Locals("userId", userID)
		c.Locals("role", role)
	}
	return c.Next()
}

func parseBearerToken(authHeader string) (userID, role string, err error) {
	if authHeader == "" {
		return "", "", fmt.Errorf("missing or invalid Authorization header")
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "", fmt.Errorf("invalid Authorization header format")
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return "", "", fmt.Errorf("invalid token payload")
	}

	userID, ok = claims["userId"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("invalid token payload")
	}

	role, _ = claims["role"].(string)
	return userID, role, nil
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
