// Package output decodes contract_output batches into printable lines.
//
// # Wire format
//
// A batch starts with one discriminant byte:
//
//	0x73 ('s')  the contract acknowledged a sent input; no records follow
//	0x72 ('r')  a run of fixed 256-byte records follows
//
// Record layout (offsets within the slot):
//
//	[0,4)     timestamp, compared and printed as hex, never as a number
//	[4,8)     flags (unused here)
//	[8,16)    record identifier, printed as hex
//	[16,48)   reserved (unused here)
//	[48,255)  UTF-8 text, NUL padded
//
// # Resume
//
// The contract may resend records the client has already shown, typically
// the tail of the previous batch followed by new ones. A Decoder keeps a
// Watermark naming the last surfaced record. Each batch is scanned once
// looking for the watermark; records after it are surfaced. If the watermark
// is not in the batch at all, every record is surfaced. Either way the
// watermark ends on the last surfaced record.
//
// Records are matched on (timestamp hex, rendered line), so two distinct
// records with identical timestamp and line are indistinguishable. Keying on
// the identifier alone would be stronger but would change which redeliveries
// are treated as new.
package output
