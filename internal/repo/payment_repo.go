package repo

import (
	"context"
	"time"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/servicehub/account-service/internal/domain"
)

// InsertPayment appends one payment record per processor call.
func (s *Store) InsertPayment(ctx context.Context, p domain.Payment) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.payments.insert",
		tracer.Tag("currency", p.Currency),
	)
	defer sp.Finish()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := s.DB.Collection("payments").InsertOne(ctx, p)
	if err != nil {
		sp.SetTag("error", err)
	}
	return err
}
