// Package sha256 implements the SHA-256 hash function of FIPS 180-4 from its
// parts: message padding ([Pad]), schedule expansion ([Expand]), the round
// function ([Step]) and block compression with feed-forward ([Compress]).
// [Hasher] chains them over a message supplied in arbitrary chunks.
package sha256
