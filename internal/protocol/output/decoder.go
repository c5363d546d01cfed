package output

import (
	"fmt"
	"sync"

	"partyline/internal/protocol"
)

// Watermark names the last record surfaced to the user.
type Watermark struct {
	TimestampHex string
	Line         string
}

// IsZero reports whether nothing has been surfaced yet.
func (w Watermark) IsZero() bool { return w == Watermark{} }

// Decoder turns output batches into lines, surfacing each record once.
//
// One Decoder serves one inbound stream. The mutex only serializes watermark
// access; decoding two batches concurrently is still order dependent.
type Decoder struct {
	mu        sync.Mutex
	watermark Watermark
}

// NewDecoder returns a Decoder with no watermark.
func NewDecoder() *Decoder { return &Decoder{} }

// Decode returns the lines in batch not yet surfaced, in arrival order.
func (d *Decoder) Decode(batch []byte) ([]string, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	switch batch[0] {
	case DiscriminantAck:
		return nil, nil
	case DiscriminantRecords:
	default:
		return nil, fmt.Errorf("%w: 0x%02x", protocol.ErrUnknownOutputDiscriminant, batch[0])
	}

	records := ParseRecords(batch)
	if len(records) == 0 {
		return nil, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var lines []string
	resuming := false
	for _, r := range records {
		mark := r.Mark()
		if resuming {
			lines = append(lines, mark.Line)
			d.watermark = mark
			continue
		}
		if !d.watermark.IsZero() && mark == d.watermark {
			resuming = true
		}
	}
	if resuming {
		return lines, nil
	}

	// Watermark unset or not in this batch: everything is new.
	for _, r := range records {
		mark := r.Mark()
		lines = append(lines, mark.Line)
		d.watermark = mark
	}
	return lines, nil
}

// Watermark returns the current watermark.
func (d *Decoder) Watermark() Watermark {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.watermark
}

// Reset forgets the watermark.
func (d *Decoder) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.watermark = Watermark{}
}
