package platform

// Package platform contains OS integration glue: per-user configuration
// directories, file URI handling for media artwork, and filesystem helpers.
