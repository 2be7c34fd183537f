// Package payment is a thin pass-through to the processor: no local
// validation of amount or currency, malformed input surfaces as the
// processor's error.
package payment

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/servicehub/account-service/internal/domain"
	"github.com/servicehub/account-service/internal/log"
)

// Recorder appends one payment document per processor call.
type Recorder interface {
	InsertPayment(ctx context.Context, p domain.Payment) error
}

type Client struct {
	records Recorder
}

func New(apiKey string, records Recorder) *Client {
	stripe.Key = apiKey
	return &Client{records: records}
}

// CreateIntent creates a payment intent for amount in the smallest currency
// unit and returns the client secret. The payment record append is
// best-effort.
func (c *Client) CreateIntent(ctx context.Context, customerID primitive.ObjectID, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}

	if c.records != nil {
		rec := domain.Payment{
			CustomerID:      customerID,
			Amount:          amount,
			Currency:        currency,
			Status:          domain.PaymentPending,
			PaymentIntentID: pi.ID,
		}
		if err := c.records.InsertPayment(ctx, rec); err != nil {
			log.WithDD(ctx, log.L()).Warn("payment record append failed",
				zap.String("intent_id", pi.ID), zap.Error(err))
		}
	}

	return pi.ClientSecret, nil
}
