package xcontext

import "context"

type (
	userIDKey       struct{}
	userIDHolderKey struct{}
	responseKey     struct{}
	errorKey        struct{}
)

type valueHolder struct {
	value any
}

// WithRequestHolders prepares mutable slots for the request user id, the
// response, and the error of a request so that middlewares and closers can
// observe what earlier stages produced. The router installs them before
// running any handler.
func WithRequestHolders(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, userIDHolderKey{}, &valueHolder{})
	ctx = context.WithValue(ctx, responseKey{}, &valueHolder{})
	return context.WithValue(ctx, errorKey{}, &valueHolder{})
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(errorKey{}).(*valueHolder); ok {
		holder.value = err
	}
}

func GetError(ctx context.Context) error {
	holder, ok := ctx.Value(errorKey{}).(*valueHolder)
	if !ok || holder.value == nil {
		return nil
	}

	return holder.value.(error)
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(responseKey{}).(*valueHolder); ok {
		holder.value = resp
	}
}

func GetResponse(ctx context.Context) any {
	holder, ok := ctx.Value(responseKey{}).(*valueHolder)
	if !ok {
		return nil
	}

	return holder.value
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// SetRequestUserID stores the authenticated user id in the mutable request
// slot. Middlewares use it because their context does not flow onwards.
func SetRequestUserID(ctx context.Context, id string) {
	if holder, ok := ctx.Value(userIDHolderKey{}).(*valueHolder); ok {
		holder.value = id
	}
}

func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	holder, ok := ctx.Value(userIDHolderKey{}).(*valueHolder)
	if !ok || holder.value == nil {
		return ""
	}

	return holder.value.(string)
}
