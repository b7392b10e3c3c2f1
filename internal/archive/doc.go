// Package archive stores export files in a local directory or an
// S3-compatible bucket.
package archive
