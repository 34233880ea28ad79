package model

// Package model defines domain data structures used across the app: download
// and translation tasks, content types, playlist entries, and status enums.
// Structures are designed for direct display in the UI and explicit state transitions.
