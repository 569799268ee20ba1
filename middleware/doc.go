// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/events", middleware.WithLogging(handler))

Logs one line per request with method, path, status, bytes, client IP,
request ID and duration_ms. 5xx responses are logged at error level.

# Request Chain

The router wraps the whole mux:

	Recover(RequestID(WithMetrics(m)(CORS(i18n.RedirectMiddleware(mux)))))

RequestID reuses or assigns X-Request-Id. WithMetrics labels requests by
the matched ServeMux pattern, so it must sit inside RequestID and outside
the mux without any request cloning in between.

# Admin Sessions

RequireAdmin checks the vs_session cookie (or a Bearer token) and the
revocation store:

	admin := middleware.RequireAdmin(signer, revocations)
	mux.HandleFunc("GET /api/admin/events", middleware.WithLogging(admin(h.List)))

Unauthenticated /api/ requests get a JSON 401. Pages redirect to
/admin/login?callbackUrl=... The session is available to handlers through
AdminFromContext.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationResponse(w, err, "localized message")

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP.
*/
package middleware
