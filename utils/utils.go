package utils

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

const passwordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GeneratePassword generates a random temporary password for admin-provisioned
// accounts. Ambiguous characters (0/O, 1/l) are excluded.
func GeneratePassword(length int) string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	password := make([]byte, length)
	for i := range password {
		password[i] = passwordCharset[rng.Intn(len(passwordCharset))]
	}
	return string(password)
}

// SendCredentialsSMS notifies a student by SMS that their account is ready.
// The password itself goes by email only.
func SendCredentialsSMS(phone, email string) error {
	if phone == "" {
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetFormData(map[string]string{
			"authorization": config.AppConfig.LocalTextApi,
			"route":         "q",
			"numbers":       phone,
			"message":       fmt.Sprintf("Your course account is ready. Login credentials were sent to %s", email),
		}).
		Post(config.AppConfig.LocalTextApiUrl)
	if err != nil {
		log.Printf("Error while sending SMS: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send SMS, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send SMS, code: %d", resp.StatusCode())
	}

	log.Println("SMS sent successfully to", phone)
	return nil
}
