package utils

import (
	"bitecare-service/internal/pkg/constvars"
	"context"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetActorID(ctx context.Context) string {
	if actorID, ok := ctx.Value(constvars.CONTEXT_ACTOR_ID_KEY).(string); ok {
		return actorID
	}
	return ""
}

func GetActorRole(ctx context.Context) string {
	if role, ok := ctx.Value(constvars.CONTEXT_ACTOR_ROLE_KEY).(string); ok {
		return role
	}
	return ""
}
