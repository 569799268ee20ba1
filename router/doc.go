// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the VanarSena site.

# Route Registration

NewRouter builds the mux and wraps it in the shared middleware chain:

	h, err := router.NewRouter(router.Deps{DB: conn, Config: cfg, ...})

NewMux returns the bare http.ServeMux for callers that bring their own
middleware.

# Endpoints

Operational:

	GET /health  - Liveness
	GET /metrics - Prometheus exposition
	GET /static/ - Embedded CSS and JS

Public pages, registered once for each of /hi and /en:

	GET  /{locale}                - Home
	GET  /{locale}/about          - About
	GET  /{locale}/events         - Listing, optional ?category=
	GET  /{locale}/events/{slug}  - Event detail
	GET  /{locale}/contact        - Contact form
	POST /{locale}/contact        - Form submission (redirects on success)

Paths without a locale prefix are redirected to one by i18n.RedirectMiddleware.

Public API:

	GET  /api/events        - Published events
	GET  /api/events/{slug} - One published event
	POST /api/contact       - Contact submission

Admin (session cookie or bearer token):

	POST   /api/admin/login
	POST   /api/admin/logout
	GET    /api/admin/session
	GET    /api/admin/dashboard
	GET    /api/admin/events              POST /api/admin/events
	GET    /api/admin/events/{id}         PUT  /api/admin/events/{id}
	DELETE /api/admin/events/{id}         PATCH /api/admin/events/{id}/publish
	GET    /api/admin/media               POST /api/admin/media/upload
	DELETE /api/admin/media/{id}
	GET    /api/admin/contacts            GET  /api/admin/contacts/{id}
	PATCH  /api/admin/contacts/{id}       DELETE /api/admin/contacts/{id}
	GET    /api/admin/settings            PUT  /api/admin/settings
	POST   /api/admin/seed

Admin pages live under /admin. Unauthenticated page requests are sent
to /admin/login with a callbackUrl; API requests get 401.
*/
package router
