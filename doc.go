// Package igor decodes Igor Pro binary waves (.ibw) and packed experiment
// files (.pxt, .pxp).
//
// A standalone wave file is decoded with DecodeWave. Packed experiments are a
// sequence of self-describing records; DecodeArchive walks them, decodes every
// wave record and skips all other record kinds by their declared length:
//
//   - DecodeWave(r io.ReadSeeker) (*Wave, error)
//   - DecodeArchive(r io.ReadSeeker) ([]*Wave, error)
//
// Header generations 2 and 5 are supported. Generations 1 and 3 can be enabled
// on a Decoder through AllowLegacyGenerations. Text and complex sample payloads
// are rejected with ErrUnsupportedSampleKind. Checksums are decoded but never
// verified, and nothing in this package writes the binary format.
package igor
