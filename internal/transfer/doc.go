// Package transfer reads and writes the vault's import/export formats.
//
// JSON exports carry a full envelope (with exportedAt added) so they can be
// loaded back as a vault; JSON imports also accept a bare array of entries.
// CSV uses a fixed header:
//
//	id,name,content,category,tags,isPinned,sortOrder,createdAt,updatedAt
//
// Headers are matched case-insensitively on import, tags are joined with
// ", " and timestamps are written as ISO-8601 in UTC with milliseconds.
package transfer
