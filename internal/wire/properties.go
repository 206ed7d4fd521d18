package wire

import "time"

// property presence flags, high bit of the first flag word down to low bit,
// per AMQP 0.9.1 content-header framing (class 60 "basic" properties).
const (
	flagContentType     = 1 << 15
	flagContentEncoding = 1 << 14
	flagHeaders         = 1 << 13
	flagDeliveryMode    = 1 << 12
	flagPriority        = 1 << 11
	flagCorrelationID   = 1 << 10
	flagReplyTo         = 1 << 9
	flagExpiration      = 1 << 8
	flagMessageID       = 1 << 7
	flagTimestamp       = 1 << 6
	flagType            = 1 << 5
	flagUserID          = 1 << 4
	flagAppID           = 1 << 3
	// bit 1<<2 is AMQP's reserved property-flag bit and is never set.
)

// Properties holds the optional "basic" content properties carried in a
// content-header frame. A nil field means "not present": presence is
// tracked by the wire bitmap, set for every non-nil field, so a nil
// DeliveryMode round-trips as absent while a non-nil DeliveryMode pointing
// at 0 is sent and round-trips as the value 0.
type Properties struct {
	ContentType     *string
	ContentEncoding *string
	Headers         Table
	DeliveryMode    *uint8
	Priority        *uint8
	CorrelationID   *string
	ReplyTo         *string
	Expiration      *string
	MessageID       *string
	Timestamp       *time.Time
	Type            *string
	UserID          *string
	AppID           *string
}

// EncodeProperties serializes the presence bitmap followed by each present
// field, in descending flag-bit order, per the content-header wire format.
func EncodeProperties(p Properties) []byte {
	var flags uint16
	if p.ContentType != nil {
		flags |= flagContentType
	}
	if p.ContentEncoding != nil {
		flags |= flagContentEncoding
	}
	if p.Headers != nil {
		flags |= flagHeaders
	}
	if p.DeliveryMode != nil {
		flags |= flagDeliveryMode
	}
	if p.Priority != nil {
		flags |= flagPriority
	}
	if p.CorrelationID != nil {
		flags |= flagCorrelationID
	}
	if p.ReplyTo != nil {
		flags |= flagReplyTo
	}
	if p.Expiration != nil {
		flags |= flagExpiration
	}
	if p.MessageID != nil {
		flags |= flagMessageID
	}
	if p.Timestamp != nil {
		flags |= flagTimestamp
	}
	if p.Type != nil {
		flags |= flagType
	}
	if p.UserID != nil {
		flags |= flagUserID
	}
	if p.AppID != nil {
		flags |= flagAppID
	}

	w := NewWriter()
	w.Short(flags)
	if p.ContentType != nil {
		w.Shortstr(*p.ContentType)
	}
	if p.ContentEncoding != nil {
		w.Shortstr(*p.ContentEncoding)
	}
	if p.Headers != nil {
		w.Table(p.Headers)
	}
	if p.DeliveryMode != nil {
		w.Octet(*p.DeliveryMode)
	}
	if p.Priority != nil {
		w.Octet(*p.Priority)
	}
	if p.CorrelationID != nil {
		w.Shortstr(*p.CorrelationID)
	}
	if p.ReplyTo != nil {
		w.Shortstr(*p.ReplyTo)
	}
	if p.Expiration != nil {
		w.Shortstr(*p.Expiration)
	}
	if p.MessageID != nil {
		w.Shortstr(*p.MessageID)
	}
	if p.Timestamp != nil {
		w.Timestamp(*p.Timestamp)
	}
	if p.Type != nil {
		w.Shortstr(*p.Type)
	}
	if p.UserID != nil {
		w.Shortstr(*p.UserID)
	}
	if p.AppID != nil {
		w.Shortstr(*p.AppID)
	}
	return w.Bytes()
}

// DecodeProperties is the inverse of EncodeProperties.
func DecodeProperties(b []byte) (Properties, error) {
	r := NewReader(b)
	flags := r.Short()
	var p Properties
	if flags&flagContentType != 0 {
		v := r.Shortstr()
		p.ContentType = &v
	}
	if flags&flagContentEncoding != 0 {
		v := r.Shortstr()
		p.ContentEncoding = &v
	}
	if flags&flagHeaders != 0 {
		p.Headers = r.Table()
	}
	if flags&flagDeliveryMode != 0 {
		v := r.Octet()
		p.DeliveryMode = &v
	}
	if flags&flagPriority != 0 {
		v := r.Octet()
		p.Priority = &v
	}
	if flags&flagCorrelationID != 0 {
		v := r.Shortstr()
		p.CorrelationID = &v
	}
	if flags&flagReplyTo != 0 {
		v := r.Shortstr()
		p.ReplyTo = &v
	}
	if flags&flagExpiration != 0 {
		v := r.Shortstr()
		p.Expiration = &v
	}
	if flags&flagMessageID != 0 {
		v := r.Shortstr()
		p.MessageID = &v
	}
	if flags&flagTimestamp != 0 {
		v := r.Timestamp()
		p.Timestamp = &v
	}
	if flags&flagType != 0 {
		v := r.Shortstr()
		p.Type = &v
	}
	if flags&flagUserID != 0 {
		v := r.Shortstr()
		p.UserID = &v
	}
	if flags&flagAppID != 0 {
		v := r.Shortstr()
		p.AppID = &v
	}
	return p, r.Err()
}
