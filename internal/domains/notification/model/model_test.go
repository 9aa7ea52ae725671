package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/notification/model"
)

func TestTemplate_Render(t *testing.T) {
	tpl := model.Template{
		Subject: "Booking {{booking_reference}}",
		Content: "Dear {{guest_name}}, {{guest_name}} again. {{missing}}",
	}

	subject, body := tpl.Render(map[string]string{
		model.VarGuestName:        "Ada",
		model.VarBookingReference: "BK-7",
	})

	assert.Equal(t, "Booking BK-7", subject)
	assert.Equal(t, "Dear Ada, Ada again. {{missing}}", body)
}

func TestPaymentInstructions(t *testing.T) {
	mobile := model.PaymentInstructions(bookingModel.PaymentMethodMobileMoney, "+255700000000", 120.5, "BK-1")
	assert.Contains(t, mobile, "+255700000000")
	assert.Contains(t, mobile, "120.50")
	assert.Contains(t, mobile, "BK-1")

	bank := model.PaymentInstructions(bookingModel.PaymentMethodBankTransfer, "", 10, "BK-2")
	assert.Contains(t, bank, "Reference: BK-2")

	assert.Equal(t, "Please pay at the hotel reception during check-in.",
		model.PaymentInstructions(bookingModel.PaymentMethodCash, "", 10, "BK-3"))
}

func TestDefaultTemplate(t *testing.T) {
	for _, typ := range []model.Type{
		model.TypeBookingConfirmation,
		model.TypePaymentConfirmation,
		model.TypeBookingCancellation,
		model.TypePasswordReset,
	} {
		tpl, ok := model.DefaultTemplate(typ)
		assert.True(t, ok, typ)
		assert.NotEmpty(t, tpl.Subject, typ)
	}

	_, ok := model.DefaultTemplate("sms")
	assert.False(t, ok)
}
