package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/events"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// RequireRole guards a route group behind a role requirement. With no roles
// listed, any authenticated principal passes. On denial, exactly one
// access_denied event is published before the 403 is returned; the
// notification service turns it into the transient message shown to the user.
func RequireRole(dispatcher events.Dispatcher, allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; exists {
			return c.Next()
		}

		if dispatcher != nil {
			_ = dispatcher.Publish(c.Context(), events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventAccessDenied,
				ActorID:   principal.User.ID,
				Timestamp: time.Now(),
				Payload: events.AccessDeniedPayload{
					Path:     c.Path(),
					Role:     principal.Role,
					Required: allowed,
				},
			})
		}
		return apperrors.NewForbidden("insufficient role")
	}
}
