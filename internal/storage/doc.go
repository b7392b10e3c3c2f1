// Package storage persists the vault envelope on top of a kv.Repository.
//
// It combines three concerns:
//
//   - validation: a structural check on the untyped JSON document (Validate,
//     ValidateValue) deciding whether stored data can be trusted;
//   - backups: before every save the currently persisted, valid envelope is
//     copied to a timestamp-keyed slot and only the newest MaxBackups slots
//     survive (BackupManager);
//   - loading: primary first, then the newest valid backup, then an empty
//     default envelope. Backend read errors are returned so the caller can
//     refuse writes instead of overwriting data it could not read.
//
// Snapshot failures are logged and counted, never returned from Save.
package storage
