// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package i18n provides the site's two locales, their string tables, and
locale routing helpers.

# Locales

Hindi (hi) is the default; English (en) is the only other locale. Every
public page lives under a locale prefix: /hi/events, /en/events.

# String Tables

Messages are loaded from the embedded locales/*.yaml catalogs and
registered with golang.org/x/text/message at init:

	title := i18n.T(i18n.English, "site.title")
	date := i18n.FormatDate(i18n.Hindi, "2025-08-15") // 15 अगस्त 2025

Both catalogs must define the same keys. A missing key renders as the key
itself.

# Routing

RedirectMiddleware redirects page requests without a locale prefix to
/{locale}{path}. The locale comes from the "language" cookie, then
Accept-Language, then the default. /admin, /api, /static, /health,
/metrics and paths containing a dot are left alone.
*/
package i18n
