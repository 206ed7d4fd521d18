package wire

type ChannelOpen struct{}

func (*ChannelOpen) ClassID() uint16  { return ClassChannel }
func (*ChannelOpen) MethodID() uint16 { return MethodChannelOpen }
func (*ChannelOpen) synchronous()     {}
func (*ChannelOpen) Marshal(w *Writer) { w.Shortstr("") }
func (m *ChannelOpen) Unmarshal(r *Reader) error {
	r.Shortstr() // reserved: historical "out-of-band"
	return r.Err()
}

type ChannelOpenOk struct{}

func (*ChannelOpenOk) ClassID() uint16    { return ClassChannel }
func (*ChannelOpenOk) MethodID() uint16   { return MethodChannelOpenOk }
func (*ChannelOpenOk) Marshal(w *Writer)  { w.Longstr(nil) }
func (m *ChannelOpenOk) Unmarshal(r *Reader) error {
	r.Longstr() // reserved: historical "channel-id"
	return r.Err()
}

// ChannelFlow is the server's request to pause/resume publishing on the
// channel.
type ChannelFlow struct {
	Active bool
}

func (*ChannelFlow) ClassID() uint16  { return ClassChannel }
func (*ChannelFlow) MethodID() uint16 { return MethodChannelFlow }
func (*ChannelFlow) synchronous()     {}
func (m *ChannelFlow) Marshal(w *Writer) { w.Bool(m.Active) }
func (m *ChannelFlow) Unmarshal(r *Reader) error {
	m.Active = r.Bool()
	return r.Err()
}

type ChannelFlowOk struct {
	Active bool
}

func (*ChannelFlowOk) ClassID() uint16  { return ClassChannel }
func (*ChannelFlowOk) MethodID() uint16 { return MethodChannelFlowOk }
func (m *ChannelFlowOk) Marshal(w *Writer) { w.Bool(m.Active) }
func (m *ChannelFlowOk) Unmarshal(r *Reader) error {
	m.Active = r.Bool()
	return r.Err()
}

// ChannelClose carries the reply code/text for a channel-scoped close.
type ChannelClose struct {
	ReplyCode uint16
	ReplyText string
	ClassID_  uint16
	MethodID_ uint16
}

func (*ChannelClose) ClassID() uint16  { return ClassChannel }
func (*ChannelClose) MethodID() uint16 { return MethodChannelClose }
func (*ChannelClose) synchronous()     {}
func (m *ChannelClose) Marshal(w *Writer) {
	w.Short(m.ReplyCode).Shortstr(m.ReplyText).Short(m.ClassID_).Short(m.MethodID_)
}
func (m *ChannelClose) Unmarshal(r *Reader) error {
	m.ReplyCode = r.Short()
	m.ReplyText = r.Shortstr()
	m.ClassID_ = r.Short()
	m.MethodID_ = r.Short()
	return r.Err()
}

type ChannelCloseOk struct{}

func (*ChannelCloseOk) ClassID() uint16    { return ClassChannel }
func (*ChannelCloseOk) MethodID() uint16   { return MethodChannelCloseOk }
func (*ChannelCloseOk) Marshal(*Writer)    {}
func (*ChannelCloseOk) Unmarshal(r *Reader) error { return r.Err() }
