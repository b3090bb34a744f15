package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/yigyaps/yigyaps/internal/types"
)

type ctxKey struct{}

var requestDataKey ctxKey

// RequestData is the authenticated principal resolved for one request. It is
// immutable for the request's duration.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	Tier        types.Tier
	Role        types.Role
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
