// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seo builds page metadata (title, description, canonical and
// hreflang links, Open Graph, robots) and schema.org JSON-LD for the
// public pages. It holds no state; pages pass the Meta it returns to the
// layout template.
package seo
