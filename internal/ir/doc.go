// Package ir provides the document form of Lexaard registry entries.
//
// This package contains plain data types and their canonical encoding. All
// other internal packages may import ir; ir imports nothing internal. The
// conversion between documents and live automata lives in compiler.
//
// Key design constraints:
//   - NO float types anywhere; sequence numbers are int64
//   - All JSON tags use snake_case
//   - Logical clocks (seq) only, never wall-clock timestamps
//   - Identity hashes are computed over canonical JSON only
package ir
