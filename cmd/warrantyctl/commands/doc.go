// Package commands implements the warrantyctl CLI: phone login with a
// persistent session, and the read and write operations of the Mini App
// against the warranty REST API. Reads fall back to demo data when the API
// is unreachable.
package commands
