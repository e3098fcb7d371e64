package requestdata

import (
	"context"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

// RequestData carries the authenticated caller identity through the request context.
// UserID is the subject issued by the external identity provider, opaque to us.
type RequestData struct {
	TokenString string
	UserID      string
	Email       string
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
