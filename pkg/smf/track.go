package smf

import "github.com/pkg/errors"

var trackMagic = [4]byte{'M', 'T', 'r', 'k'}

const maxEventHint = 4096

// DecodeTrack reads one MTrk chunk from c. Events are classified as they are
// decoded. The chunk must be consumed exactly; an event running past the
// declared length fails with ErrTrackLengthMismatch.
func DecodeTrack(c *Cursor, id int) (*Track, error) {
	start := c.Offset()
	magic, err := c.ReadN(4)
	if err != nil {
		return nil, err
	}
	if [4]byte(magic) != trackMagic {
		return nil, errors.Wrapf(ErrInvalidTrackHeader, "track %d: chunk type %q at offset %d", id, magic, start)
	}
	length, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	body, err := c.Sub(int(length))
	if err != nil {
		return nil, errors.Wrapf(err, "track %d", id)
	}

	track := &Track{
		ID: id,
		// about 3 bytes per event for dense tracks, capped since one long
		// SysEx can fill a whole chunk
		Events: make([]ClassifiedEvent, 0, min(length/3, maxEventHint)),
	}
	var dec EventDecoder
	for consumed := 0; consumed < int(length); {
		n, delta, err := ReadVarLen(body)
		if err != nil {
			return nil, overrun(err, id, consumed, length)
		}
		m, status, payload, err := dec.Decode(body)
		if err != nil {
			return nil, overrun(err, id, consumed, length)
		}
		consumed += n + m
		track.Events = append(track.Events, Classify(RawEvent{
			Delta:   delta,
			Status:  status,
			Payload: payload,
		}))
	}
	return track, nil
}

func overrun(err error, id, consumed int, length uint32) error {
	if errors.Is(err, ErrTruncatedInput) {
		return errors.Wrapf(ErrTrackLengthMismatch, "track %d: event at byte %d runs past declared length %d", id, consumed, length)
	}
	return errors.Wrapf(err, "track %d: event at byte %d", id, consumed)
}
