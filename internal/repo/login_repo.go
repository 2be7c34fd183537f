package repo

import (
	"context"
	"time"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/servicehub/account-service/internal/domain"
)

// AppendLogin records a successful password login. Callers treat failures as
// best-effort; the logins collection is append-only.
func (s *Store) AppendLogin(ctx context.Context, rec domain.LoginRecord) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.logins.insert")
	defer sp.Finish()

	if rec.LoginAt.IsZero() {
		rec.LoginAt = time.Now().UTC()
	}
	_, err := s.DB.Collection("logins").InsertOne(ctx, rec)
	if err != nil {
		sp.SetTag("error", err)
	}
	return err
}
