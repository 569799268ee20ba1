// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, admin sessions, and ID generation.

# Passwords

Admin passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password, auth.DefaultBcryptCost)
	err = auth.CheckPassword(hash, attempt) // ErrInvalidCredentials on mismatch

# Sessions

An admin session is an HS256-signed JWT carried in the vs_session cookie
(or an Authorization: Bearer header for API clients):

	signer, err := auth.NewSessionSigner(cfg.SessionSecret, cfg.SessionTTL)
	token, sess, err := signer.Issue(user.ID, user.Username, user.Email, user.Role)
	sess, err = signer.Parse(token) // ErrInvalidSession on any failure

Each session has a random UUID (the JWT ID). Logout records that ID in the
revocation store until the token would have expired, so a copied cookie
stops working even though the token itself is still validly signed.

# IDs

GenerateID returns a random hex string and is used for media file IDs:

	id, err := auth.GenerateID(16) // 32 hex characters
*/
package auth
