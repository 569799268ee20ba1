// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the site.

# Domain Types

  - Event: one event in one locale, as shown on the public site
  - AdminEvent: an event with both its hi and en translations
  - ContactSubmission, MediaFile, AdminUser, DashboardStats
  - SiteSettings: editable site configuration (key/value backed)

# Request Types

  - EventInput: admin create/update body with flat title_hi/title_en fields
  - PublishEventRequest, ContactRequest, UpdateContactStatusRequest
  - LoginRequest

# Validation

Request types validate themselves after Normalize:

	in.Normalize()
	if err := in.Validate(); err != nil {
		var fe *models.FieldError
		errors.As(err, &fe) // fe.Field, fe.Key
	}

FieldError.Key is a message key in the i18n catalog, so public forms can
show the failure in the visitor's language.

# Constants

Event visibility: draft, published.
Contact status: unread, read, replied.
Media category: image, video, document.
*/
package models
