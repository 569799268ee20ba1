// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cache stores short-lived admin security state: revoked session
// IDs and failed-login counters. Redis backs both in production; the
// Memory stores serve single-process deployments and tests.
package cache
