// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the VanarSena website server.

VanarSena is a bilingual (Hindi and English) site for an environmental
NGO: public pages for the organisation and its events, a contact form,
and an admin area for events, media, contact submissions and settings.

# Starting the Server

The server reads configuration from .env, the environment and flags:

	DATABASE_URL=postgres://... SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3000 -d "postgres://..." --session-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - SESSION_SECRET (--session-secret): At least 32 characters

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - SITE_URL (--site-url): Public origin for canonical links
  - DEFAULT_ADMIN_USERNAME, DEFAULT_ADMIN_PASSWORD: First admin account
  - REDIS_URL (--redis): Shared session revocation and login lockout
  - S3_ENDPOINT, S3_BUCKET and S3_*: Media storage; uploads are
    disabled without them

# Architecture

  - handlers: JSON API handlers (events, contacts, media, auth, settings)
  - pages: Server-rendered public and admin pages
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, request ids, recovery, CORS, admin gate
  - db: Schema and queries
  - models: Domain and request/response types
  - i18n, seo: Locales, string tables and search metadata
  - auth, cache: Passwords, session tokens, revocation and lockout
  - storage, metrics, seed: Object storage, Prometheus, demo content
  - cliparse: Configuration parsing

Maintenance commands live in cmd/vanarsena-ctl.

See package documentation for each component.
*/
package main
