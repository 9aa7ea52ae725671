package model

import (
	"fmt"
	"strings"

	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/shared/model"
)

const (
	TableName  = "email_templates"
	EntityName = "email_template"

	FieldID       = "id"
	FieldType     = "type"
	FieldSubject  = "subject"
	FieldContent  = "content"
	FieldIsActive = "is_active"
)

type Type string

const (
	TypeBookingConfirmation Type = "booking_confirmation"
	TypePaymentConfirmation Type = "payment_confirmation"
	TypeBookingCancellation Type = "booking_cancellation"
	TypePasswordReset       Type = "password_reset"
)

// Template variable names.
const (
	VarGuestName           = "guest_name"
	VarCheckInDate         = "check_in_date"
	VarCheckOutDate        = "check_out_date"
	VarRoomName            = "room_name"
	VarTotalAmount         = "total_amount"
	VarBookingReference    = "booking_reference"
	VarPaymentInstructions = "payment_instructions"
	VarAmount              = "amount"
	VarPaymentMethod       = "payment_method"
	VarTransactionID       = "transaction_id"
	VarDate                = "date"
	VarCancellationReason  = "cancellation_reason"
	VarRefundAmount        = "refund_amount"
	VarResetURL            = "reset_url"
	VarExpiresInMinutes    = "expires_in_minutes"
)

func (t Type) Valid() bool {
	switch t {
	case TypeBookingConfirmation, TypePaymentConfirmation, TypeBookingCancellation, TypePasswordReset:
		return true
	default:
		return false
	}
}

// Notification is the message published on the notification topic.
type Notification struct {
	Type      Type              `json:"type"`
	Recipient string            `json:"recipient"`
	Variables map[string]string `json:"variables"`
}

// Message is a rendered notification ready for delivery.
type Message struct {
	Type      Type   `json:"type"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type Template struct {
	ID       string `db:"id"`
	Type     Type   `db:"type"`
	Subject  string `db:"subject"`
	Content  string `db:"content"`
	IsActive bool   `db:"is_active"`
	model.Metadata
}

// Render replaces every {{name}} placeholder with its variable. Unknown placeholders are left as is.
func (t Template) Render(vars map[string]string) (subject, body string) {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}

	replacer := strings.NewReplacer(pairs...)

	return replacer.Replace(t.Subject), replacer.Replace(t.Content)
}

// FormatAmount renders money with two decimals.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// PaymentInstructions explains how to pay for a booking with the chosen method.
func PaymentInstructions(method, phone string, amount float64, reference string) string {
	switch method {
	case bookingModel.PaymentMethodMobileMoney:
		return strings.Join([]string{
			"Please follow these steps to complete your payment:",
			"1. Dial *123# on your mobile phone",
			`2. Select "Send Money"`,
			"3. Enter the following number: " + phone,
			"4. Enter amount: " + FormatAmount(amount),
			"5. Enter your PIN to confirm",
			"6. Use booking reference " + reference + " as the payment description",
		}, "\n")
	case bookingModel.PaymentMethodBankTransfer:
		return strings.Join([]string{
			"Please transfer the payment to:",
			"Bank: Demo Bank",
			"Account Name: Hotel Demo",
			"Account Number: 1234567890",
			"Reference: " + reference,
		}, "\n")
	default:
		return "Please pay at the hotel reception during check-in."
	}
}

var defaultTemplates = map[Type]Template{
	TypeBookingConfirmation: {
		Type:    TypeBookingConfirmation,
		Subject: "Booking confirmation {{booking_reference}}",
		Content: "Dear {{guest_name}},\n\nYour stay in {{room_name}} from {{check_in_date}} to {{check_out_date}} is confirmed.\n" +
			"Total amount: {{total_amount}}\nBooking reference: {{booking_reference}}\n\n{{payment_instructions}}",
	},
	TypePaymentConfirmation: {
		Type:    TypePaymentConfirmation,
		Subject: "Payment received",
		Content: "Dear {{guest_name}},\n\nWe received your payment of {{amount}} by {{payment_method}} on {{date}}.\n" +
			"Transaction: {{transaction_id}}",
	},
	TypeBookingCancellation: {
		Type:    TypeBookingCancellation,
		Subject: "Booking {{booking_reference}} cancelled",
		Content: "Dear {{guest_name}},\n\nYour booking {{booking_reference}} has been cancelled.\n" +
			"Reason: {{cancellation_reason}}\nRefund amount: {{refund_amount}}",
	},
	TypePasswordReset: {
		Type:    TypePasswordReset,
		Subject: "Reset your password",
		Content: "Use the link below to choose a new password. It expires in {{expires_in_minutes}} minutes.\n\n{{reset_url}}",
	},
}

// DefaultTemplate is used when no active template is stored for t.
func DefaultTemplate(t Type) (Template, bool) {
	tpl, ok := defaultTemplates[t]

	return tpl, ok
}
