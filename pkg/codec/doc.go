// Package codec serializes sequences of field mappings into a
// self-describing binary blob for the persistence backends.
//
// # Blob Format
//
// Every blob starts with a 12-byte header:
//
//	[Magic(4)="FVM1"][CRC32(4)][Count(4)]
//
// followed by Count mapping blocks. All integers are little-endian. The
// CRC32 (IEEE) covers everything after the checksum field, so any damage to
// the count or the mapping blocks is detected before a single mapping is
// materialized.
//
// # Mapping Block
//
// A mapping block is [FieldCount(4)] followed by one entry per field:
//
//	[NameLen(2)][Name][Kind(1)][payload]
//
// Payloads by kind:
//   - int: 8 bytes, two's complement
//   - float: 8 bytes, IEEE 754 bits
//   - string: [Len(4)] + UTF-8 bytes
//   - bool: 1 byte (0 or 1)
//   - time: 8 bytes, Unix nanoseconds (decoded in UTC)
//   - bytes: [Len(4)] + raw bytes
//
// Field names are written in sorted order, so encoding the same sequence of
// mappings always yields the same bytes. The format carries no version
// negotiation beyond the magic: it only has to stay stable across save and
// load within one deployment.
//
// # Error Handling
//
// Decode rejects a bad magic, a checksum mismatch, truncated or trailing
// bytes, duplicate field names, and unknown kind tags. It never returns a
// partial sequence: the blob decodes fully or not at all. Per-mapping decode
// failures are a record-layer concern and do not exist at this level.
package codec
