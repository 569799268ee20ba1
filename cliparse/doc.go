// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are layered. A .env file in the working directory is loaded first
(existing environment variables win), then the environment is decoded into
Config, then CLI flags override the result.

# Environment Variables

	PORT                   → -p (default 3000)
	DATABASE_URL           → -d (required)
	SITE_URL               → --site-url
	SESSION_SECRET         → --session-secret (required, 32+ chars)
	SESSION_TTL            → --session-ttl (default 24h)
	REDIS_URL              → --redis
	S3_ENDPOINT            → --s3-endpoint
	S3_BUCKET              → --s3-bucket (default vanarsena-media)

Environment only:

	SECURE_COOKIES, DEFAULT_ADMIN_USERNAME, DEFAULT_ADMIN_PASSWORD,
	DEFAULT_ADMIN_EMAIL, LOGIN_MAX_FAILURES, LOGIN_LOCKOUT, S3_REGION,
	S3_ACCESS_KEY, S3_SECRET_KEY, S3_USE_PATH_STYLE, MEDIA_PUBLIC_URL,
	MAX_UPLOAD_BYTES

# Optional Services

Redis and object storage are optional. Without REDIS_URL, session
revocation and login lockout are kept in process memory. Without
S3_ENDPOINT, media upload endpoints respond 503.
*/
package cliparse
