package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/dibyajyoti0750/Ascend-LMS/config"

	"github.com/go-resty/resty/v2"
)

// CloudinaryUpload is the subset of the upload API response we keep.
type CloudinaryUpload struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// UploadThumbnail pushes a course thumbnail to Cloudinary and returns
// the hosted URL and public id. Signed upload: the signature is SHA-1
// over the sorted params plus the API secret.
func UploadThumbnail(file *multipart.FileHeader) (*CloudinaryUpload, error) {
	if config.AppConfig.CloudinaryCloudName == "" || config.AppConfig.CloudinaryAPIKey == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := signUploadParams("timestamp=" + timestamp)

	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload",
		config.AppConfig.CloudinaryCloudName)

	client := resty.New()
	resp, err := client.R().
		SetFileReader("file", file.Filename, io.Reader(src)).
		SetFormData(map[string]string{
			"api_key":   config.AppConfig.CloudinaryAPIKey,
			"timestamp": timestamp,
			"signature": signature,
		}).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("thumbnail upload failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("thumbnail upload error: %s", resp.String())
	}

	var upload CloudinaryUpload
	if err := json.Unmarshal(resp.Body(), &upload); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %v", err)
	}

	return &upload, nil
}

func signUploadParams(params string) string {
	sum := sha1.Sum([]byte(params + config.AppConfig.CloudinaryAPISecret))
	return hex.EncodeToString(sum[:])
}
