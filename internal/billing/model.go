package billing

import "time"

type PaymentStatus string

const (
	StatusCreated PaymentStatus = "CREATED"
	StatusPaid    PaymentStatus = "PAID"
	StatusFailed  PaymentStatus = "FAILED"
)

// PaymentLog tracks one gateway order. Created on order issuance, promoted to
// PAID exactly once by signature verification, never deleted.
type PaymentLog struct {
	ID          string        `db:"id" json:"id"`
	RzOrderID   string        `db:"rz_order_id" json:"rz_order_id"`
	RzPaymentID *string       `db:"rz_payment_id" json:"rz_payment_id,omitempty"`
	RzSignature *string       `db:"rz_signature" json:"rz_signature,omitempty"`
	Amount      int64         `db:"amount" json:"amount"`
	Currency    string        `db:"currency" json:"currency"`
	Status      PaymentStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

type PendingAdminStatus string

const (
	PendingStatusPending  PendingAdminStatus = "PENDING"
	PendingStatusApproved PendingAdminStatus = "APPROVED"
	PendingStatusRejected PendingAdminStatus = "REJECTED"
)

// PendingAdmin is a paid society-admin registration awaiting approval.
type PendingAdmin struct {
	ID                 string             `db:"id" json:"id"`
	Email              string             `db:"email" json:"email"`
	Name               string             `db:"name" json:"name"`
	ApartmentName      string             `db:"apartment_name" json:"apartment_name"`
	Address            string             `db:"address" json:"address"`
	RegistrationNumber string             `db:"registration_number" json:"registration_number"`
	PhoneNumber        string             `db:"phone_number" json:"phone_number"`
	TotalFlats         int                `db:"total_flats" json:"total_flats"`
	Status             PendingAdminStatus `db:"status" json:"status"`
	PaymentLogID       string             `db:"payment_log_id" json:"payment_log_id"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// AdminRequestForm is the society registration payload carried through the
// gateway callback. TotalFlats arrives as a string and is coerced.
type AdminRequestForm struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	ApartmentName      string `json:"apartmentName" validate:"required"`
	Address            string `json:"address" validate:"required"`
	RegistrationNumber string `json:"registrationNumber"`
	PhoneNumber        string `json:"phoneNumber" validate:"required"`
	TotalFlats         string `json:"totalFlats" validate:"required,numeric"`
}
