package output

import (
	"bytes"
	"encoding/hex"
)

const (
	DiscriminantAck     byte = 0x73
	DiscriminantRecords byte = 0x72

	RecordSize = 256

	timestampStart  = 0
	timestampEnd    = 4
	identifierStart = 8
	identifierEnd   = 16
	textStart       = 48
	textEnd         = 255
)

// Record is one decoded output slot.
type Record struct {
	Timestamp  []byte
	Identifier []byte
	Text       string
}

// TimestampHex is the timestamp bytes in lower-case hex.
func (r Record) TimestampHex() string { return hex.EncodeToString(r.Timestamp) }

// Line renders the record as "identifier_hex: text".
func (r Record) Line() string {
	return hex.EncodeToString(r.Identifier) + ": " + r.Text
}

// Mark returns the watermark naming r.
func (r Record) Mark() Watermark {
	return Watermark{TimestampHex: r.TimestampHex(), Line: r.Line()}
}

// ParseRecords splits a record batch (discriminant included) into records.
// A trailing short slot is decoded with each field cut to the bytes present.
func ParseRecords(batch []byte) []Record {
	if len(batch) <= 1 {
		return nil
	}
	body := batch[1:]
	out := make([]Record, 0, (len(body)+RecordSize-1)/RecordSize)
	for off := 0; off < len(body); off += RecordSize {
		end := off + RecordSize
		if end > len(body) {
			end = len(body)
		}
		out = append(out, parseRecord(body[off:end]))
	}
	return out
}

func parseRecord(slot []byte) Record {
	text := field(slot, textStart, textEnd)
	return Record{
		Timestamp:  append([]byte(nil), field(slot, timestampStart, timestampEnd)...),
		Identifier: append([]byte(nil), field(slot, identifierStart, identifierEnd)...),
		Text:       string(bytes.TrimRight(text, "\x00")),
	}
}

func field(slot []byte, start, end int) []byte {
	if start >= len(slot) {
		return nil
	}
	if end > len(slot) {
		end = len(slot)
	}
	return slot[start:end]
}

// EncodeRecord lays out one record slot. It is the inverse of the decoder's
// view of a slot and is used to build batches for tests and tooling.
func EncodeRecord(timestamp [4]byte, identifier [8]byte, text string) []byte {
	slot := make([]byte, RecordSize)
	copy(slot[timestampStart:timestampEnd], timestamp[:])
	copy(slot[identifierStart:identifierEnd], identifier[:])
	copy(slot[textStart:textEnd], text)
	return slot
}

// EncodeBatch prefixes the record discriminant to the given slots.
func EncodeBatch(slots ...[]byte) []byte {
	out := make([]byte, 0, 1+len(slots)*RecordSize)
	out = append(out, DiscriminantRecords)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}
