// Package publish uploads a static bundle directory to S3.
//
// Every regular file below the bundle root becomes one object. Keys are the
// slash-separated paths relative to the root, behind an optional prefix.
// Hidden files and directories are skipped.
//
// Credentials come from the standard AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN variables. AWS_ENDPOINT_URL
// points the client at an S3-compatible store.
package publish
