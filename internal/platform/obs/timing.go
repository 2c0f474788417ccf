package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey carries the inbound request identifier through the context so
// operation timings can be correlated with the HTTP access log.
const RequestIDKey ctxKey = "req_id"

// Time logs the duration and outcome of a named operation when the returned
// func runs, typically via defer:
//
//	defer obs.Time(ctx, "matching.FindAllMatches")(&err)
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()
	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		ms := time.Since(start).Milliseconds()
		if errp != nil && *errp != nil {
			log.Printf("op=%s req_id=%s dur=%dms err=%v", op, reqID, ms, *errp)
			return
		}
		log.Printf("op=%s req_id=%s dur=%dms", op, reqID, ms)
	}
}
