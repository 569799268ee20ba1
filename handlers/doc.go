// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the JSON API handlers for the VanarSena site.

# Handler Types

Each handler is a struct holding only the services it needs:

  - EventHandler: Published events for the public API
  - AdminEventHandler: Event create, update, publish and delete
  - ContactHandler: Contact form intake and the admin inbox
  - MediaHandler: Uploads to object storage and the media library
  - AuthHandler: Admin login, logout and session lookup
  - SettingsHandler: Site settings
  - DashboardHandler: Admin dashboard counters
  - SeedHandler: Demo content loading

	eventHandler := handlers.NewEventHandler(db)
	contactHandler := handlers.NewContactHandler(db, metrics)

# Locales

Public endpoints take ?locale=hi|en and fall back to the Accept-Language
header, then Hindi. Validation messages on the contact endpoint are
returned in the submitting locale; admin endpoints answer in English.

# Event Visibility

Events are either draft or published. Only published events are served
by EventHandler, and each is returned in the requested locale only.

	PATCH /api/admin/events/{id}/publish {"published": true}

# Admin Sessions

Login issues a signed session token as an HttpOnly cookie. Repeated
failures for one username lock it out for the configured window; the
response then carries Retry-After. Logout revokes the session id until
the token would have expired anyway.

# Media

Uploads are checked against the allowed type list and the configured
size limit, stored under images/, videos/ or documents/ and recorded in
media_files. When no store is configured the media endpoints return 503.
*/
package handlers
