// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage holds uploaded media objects.

S3Store talks to any S3-compatible service (AWS, MinIO, R2) through
aws-sdk-go-v2. Objects live in a single bucket under a category prefix:

	images/3f9c2a...e1.jpg
	videos/77ab01...c4.mp4
	documents/0d5e9b...aa.pdf

The bucket is made publicly readable by EnsureBucket so that the URLs
returned from Put can be embedded directly in pages.

MemoryStore keeps objects in a map and is used by tests.
*/
package storage
