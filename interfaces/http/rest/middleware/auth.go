package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"causalmap/pkg/auth"
	"causalmap/pkg/common"
	pkgerrors "causalmap/pkg/errors"
)

// AuthOptions configures Authenticate.
type AuthOptions struct {
	// Validator checks bearer tokens. A nil validator turns authentication off.
	Validator *auth.JWTValidator
	// TrustGateway accepts the user headers set by an API Gateway JWT
	// authorizer in front of the Lambda entrypoint.
	TrustGateway bool
	Errors       *pkgerrors.ErrorHandler
	Logger       *zap.Logger
}

// Authenticate validates the caller and stores its user id in the request context.
func Authenticate(opts AuthOptions) func(next http.Handler) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Errors == nil {
		opts.Errors = pkgerrors.NewErrorHandler(opts.Logger, false)
	}

	return func(next http.Handler) http.Handler {
		if opts.Validator == nil && !opts.TrustGateway {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.TrustGateway && r.Header.Get("X-API-Gateway-Authorized") == "true" {
				userID := r.Header.Get("X-User-ID")
				if userID == "" {
					opts.Errors.Handle(w, r, pkgerrors.NewUnauthorizedError("missing user context from API Gateway"))
					return
				}
				next.ServeHTTP(w, r.WithContext(common.WithUserID(r.Context(), userID)))
				return
			}
			if opts.Validator == nil {
				opts.Errors.Handle(w, r, pkgerrors.NewUnauthorizedError("request not authorized by API Gateway"))
				return
			}

			token := extractToken(r)
			if token == "" {
				opts.Errors.Handle(w, r, pkgerrors.NewUnauthorizedError("missing authentication token"))
				return
			}

			claims, err := opts.Validator.ValidateToken(token)
			if err != nil {
				opts.Logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("ip", clientIP(r)),
					zap.String("path", r.URL.Path),
				)
				opts.Errors.Handle(w, r, pkgerrors.NewUnauthorizedError(tokenMessage(err)))
				return
			}

			opts.Logger.Debug("Request authenticated",
				zap.String("user_id", claims.UserID),
				zap.String("path", r.URL.Path),
			)
			next.ServeHTTP(w, r.WithContext(common.WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// RateLimit rejects callers that exceed the limiter's budget. Authenticated
// callers are keyed by user id, everyone else by client IP.
func RateLimit(limiter *auth.SlidingWindowLimiter, errs *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if errs == nil {
		errs = pkgerrors.NewErrorHandler(logger, false)
	}
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + clientIP(r)
			if userID, ok := common.GetUserID(r.Context()); ok {
				key = "user:" + userID
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("Rate limiter error", zap.Error(err))
				errs.Handle(w, r, pkgerrors.NewInternalError("rate limiter unavailable"))
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "60")
				errs.Handle(w, r, pkgerrors.NewRateLimitError(limiter.Limit(), time.Minute.String()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "token has expired"
	case errors.Is(err, auth.ErrInvalidSignature):
		return "invalid token signature"
	default:
		return "invalid token"
	}
}

// extractToken reads the bearer token from the Authorization header or the
// auth_token cookie.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return header
	}
	if cookie, err := r.Cookie("auth_token"); err == nil {
		return cookie.Value
	}
	return ""
}

// clientIP returns the remote host. chi's RealIP middleware has already
// folded X-Forwarded-For and X-Real-IP into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
