package transport

import (
	"context"
	"net/http"
	"strings"

	"rideescrow/internal/shared/auth"
	"rideescrow/internal/shared/logger"
)

type contextKey string

// ContextKeyParticipantID holds the authenticated caller identity.
const ContextKeyParticipantID contextKey = "participant_id"

// JWTMiddleware validates the bearer token and injects the participant
// identity into the request context.
func JWTMiddleware(jwtService *auth.JWTService, log *logger.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondUnauthorized(w, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondUnauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				log.Error(logger.Entry{
					Action:  "jwt_validation_failed",
					Message: err.Error(),
					Error:   &logger.ErrObj{Msg: err.Error()},
				})
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyParticipantID, claims.ParticipantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// CallerID returns the authenticated participant id from the context.
func CallerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyParticipantID).(string)
	return id, ok && id != ""
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
