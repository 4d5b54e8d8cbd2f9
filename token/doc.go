// Package token reads the claims carried by the POS bearer token.
//
// Decode is a structural parse of a compact JWS (header.payload.signature): it base64url
// decodes the header and payload and unmarshals the JSON claims. It does NOT verify the
// signature or the expiry. The console trusts the claims only to pick a section to show;
// the backend revalidates the token on every request and remains the authorization
// boundary.
package token
