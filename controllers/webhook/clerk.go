package webhookController

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/dibyajyoti0750/Ascend-LMS/config"
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	"github.com/dibyajyoti0750/Ascend-LMS/models"

	"github.com/gofiber/fiber/v2"
)

// clerkEvent is the identity provider's webhook envelope.
type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// ClerkWebhook mirrors identity-provider user lifecycle events into the
// users table. Authenticity comes from the svix signature headers.
func ClerkWebhook(c *fiber.Ctx) error {
	if !verifySvixSignature(c.Body(), c.Get("svix-id"), c.Get("svix-timestamp"),
		c.Get("svix-signature"), config.AppConfig.ClerkWebhookSecret) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Webhook signature verification failed!", nil)
	}

	var event clerkEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Malformed webhook payload!", nil)
	}

	db := database.Database.Db

	switch event.Type {
	case "user.created":
		user := models.User{
			ID:       event.Data.ID,
			Name:     fullName(event.Data.FirstName, event.Data.LastName),
			Email:    primaryEmail(event),
			ImageURL: event.Data.ImageURL,
			Role:     models.RoleStudent,
		}
		if err := db.Create(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
		}

	case "user.updated":
		updates := map[string]interface{}{
			"name":      fullName(event.Data.FirstName, event.Data.LastName),
			"email":     primaryEmail(event),
			"image_url": event.Data.ImageURL,
		}
		if err := db.Model(&models.User{}).Where("id = ?", event.Data.ID).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}

	case "user.deleted":
		if err := db.Where("id = ?", event.Data.ID).Delete(&models.User{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
		}

	default:
		// Other provider events are acknowledged and ignored.
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Received", nil)
}

// verifySvixSignature checks the svix scheme: HMAC-SHA256 over
// "id.timestamp.payload" with the base64 part of the whsec_ secret,
// base64 encoded and matched against any of the space-separated
// "v1,<sig>" entries in the signature header.
func verifySvixSignature(payload []byte, msgID, timestamp, sigHeader, secret string) bool {
	if msgID == "" || timestamp == "" || sigHeader == "" || secret == "" {
		return false
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, part := range strings.Fields(sigHeader) {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return true
		}
	}
	return false
}

func fullName(first, last string) string {
	parts := []string{}
	if first != "" {
		parts = append(parts, first)
	}
	if last != "" {
		parts = append(parts, last)
	}
	return strings.Join(parts, " ")
}

func primaryEmail(event clerkEvent) string {
	if len(event.Data.EmailAddresses) == 0 {
		return ""
	}
	return event.Data.EmailAddresses[0].EmailAddress
}
