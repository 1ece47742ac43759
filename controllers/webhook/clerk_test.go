package webhookController

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dibyajyoti0750/Ascend-LMS/config"
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testClerkSecret = "whsec_dGVzdF9jbGVya19zZWNyZXQ=" // "test_clerk_secret"

func setupClerkEnv(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()

	config.AppConfig = &config.Config{ClerkWebhookSecret: testClerkSecret}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/clerk", ClerkWebhook)
	return db, app
}

func signSvix(t *testing.T, msgID, timestamp string, payload []byte) string {
	t.Helper()

	key, err := base64.StdEncoding.DecodeString("dGVzdF9jbGVya19zZWNyZXQ=")
	require.NoError(t, err)

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postClerk(t *testing.T, app *fiber.App, payload []byte, sign bool) int {
	t.Helper()

	msgID := "msg_1"
	timestamp := fmt.Sprint(time.Now().Unix())

	req := httptest.NewRequest("POST", "/clerk", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", timestamp)
	if sign {
		req.Header.Set("svix-signature", signSvix(t, msgID, timestamp, payload))
	} else {
		req.Header.Set("svix-signature", "v1,bm90IGEgcmVhbCBzaWduYXR1cmU=")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestClerkWebhookCreatesUser(t *testing.T) {
	db, app := setupClerkEnv(t)

	payload := []byte(`{"type":"user.created","data":{"id":"user_abc","first_name":"Test","last_name":"Student","image_url":"https://img.example.com/a.png","email_addresses":[{"email_address":"student@example.com"}]}}`)
	status := postClerk(t, app, payload, true)
	require.Equal(t, fiber.StatusOK, status)

	var user models.User
	require.NoError(t, db.Where("id = ?", "user_abc").First(&user).Error)
	assert.Equal(t, "Test Student", user.Name)
	assert.Equal(t, "student@example.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestClerkWebhookUpdatesAndDeletes(t *testing.T) {
	db, app := setupClerkEnv(t)

	require.NoError(t, db.Create(&models.User{
		ID: "user_abc", Name: "Old Name", Email: "old@example.com", Role: models.RoleStudent,
	}).Error)

	update := []byte(`{"type":"user.updated","data":{"id":"user_abc","first_name":"New","last_name":"Name","email_addresses":[{"email_address":"new@example.com"}]}}`)
	require.Equal(t, fiber.StatusOK, postClerk(t, app, update, true))

	var user models.User
	require.NoError(t, db.Where("id = ?", "user_abc").First(&user).Error)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "new@example.com", user.Email)

	del := []byte(`{"type":"user.deleted","data":{"id":"user_abc"}}`)
	require.Equal(t, fiber.StatusOK, postClerk(t, app, del, true))

	var count int64
	db.Model(&models.User{}).Where("id = ?", "user_abc").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestClerkWebhookRejectsBadSignature(t *testing.T) {
	db, app := setupClerkEnv(t)

	payload := []byte(`{"type":"user.created","data":{"id":"user_evil"}}`)
	status := postClerk(t, app, payload, false)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestClerkWebhookIgnoresUnknownEvents(t *testing.T) {
	_, app := setupClerkEnv(t)

	payload := []byte(`{"type":"session.created","data":{"id":"sess_1"}}`)
	assert.Equal(t, fiber.StatusOK, postClerk(t, app, payload, true))
}
