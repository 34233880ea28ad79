package subtitle

// Package subtitle parses line-based caption files (SRT) into ordered lines,
// classifying each as structural (index, timing range, blank) or translatable
// caption text, and derives output names for translated files.
