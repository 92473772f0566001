package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment request status values
const (
	RequestPending  = "PENDING"
	RequestVerified = "VERIFIED"
	RequestRejected = "REJECTED"
	RequestExpired  = "EXPIRED"
)

// EnrollmentRequest is a receipt-based enrollment application. Payment happens
// out-of-band; an admin verifies the receipt and provisions the account.
type EnrollmentRequest struct {
	gorm.Model
	CourseID      uint       `json:"course_id" gorm:"index;not null"`
	FullName      string     `json:"full_name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	TransactionID string     `json:"transaction_id" gorm:"unique;not null"`
	ReceiptURL    string     `json:"receipt_url"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status" gorm:"default:'PENDING'"` // PENDING, VERIFIED, REJECTED, EXPIRED
	ProcessedBy   *uint      `json:"processed_by"`
	ProcessedAt   *time.Time `json:"processed_at"`
	CreatedUserID *uint      `json:"created_user_id"` // Student account created on verification
	IsDeleted     bool       `gorm:"default:false"`
}
