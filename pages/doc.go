// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pages renders the server-side HTML of the public site and the admin
panel with html/template.

Public pages live under a locale prefix (/hi or /en) and carry the SEO
metadata built by package seo. The admin pages are English only; their forms
submit JSON to the admin API through the embedded static/admin.js.

Templates and static assets are embedded in the binary.
*/
package pages
