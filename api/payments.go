package api

import (
	"context"
	"net/http"
)

// PaymentRedirect points at the third-party payment page for a booking. The
// client returns the URL for the caller to open; it never follows it.
type PaymentRedirect struct {
	URL       string `json:"payment_url"`
	Reference string `json:"reference"`
}

type initiatePaymentRequest struct {
	BookingID int64 `json:"booking_id"`
}

// InitiatePayment starts payment for an approved booking.
func (c *Client) InitiatePayment(ctx context.Context, bookingID int64) (*PaymentRedirect, error) {
	var out PaymentRedirect
	if err := c.do(ctx, http.MethodPost, "/payments/initiate/", initiatePaymentRequest{BookingID: bookingID}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
