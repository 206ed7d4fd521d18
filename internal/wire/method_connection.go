package wire

// ConnectionStart is sent by the server immediately after the protocol
// header to propose security mechanisms and locales.
type ConnectionStart struct {
	VersionMajor     uint8
	VersionMinor     uint8
	ServerProperties Table
	Mechanisms       []byte
	Locales          []byte
}

func (*ConnectionStart) ClassID() uint16  { return ClassConnection }
func (*ConnectionStart) MethodID() uint16 { return MethodConnectionStart }
func (m *ConnectionStart) Marshal(w *Writer) {
	w.Octet(m.VersionMajor).Octet(m.VersionMinor).Table(m.ServerProperties).
		Longstr(m.Mechanisms).Longstr(m.Locales)
}
func (m *ConnectionStart) Unmarshal(r *Reader) error {
	m.VersionMajor = r.Octet()
	m.VersionMinor = r.Octet()
	m.ServerProperties = r.Table()
	m.Mechanisms = r.Longstr()
	m.Locales = r.Longstr()
	return r.Err()
}

// ConnectionStartOk is the client's reply to ConnectionStart.
type ConnectionStartOk struct {
	ClientProperties Table
	Mechanism        string
	Response         []byte
	Locale           string
}

func (*ConnectionStartOk) ClassID() uint16  { return ClassConnection }
func (*ConnectionStartOk) MethodID() uint16 { return MethodConnectionStartOk }
func (m *ConnectionStartOk) Marshal(w *Writer) {
	w.Table(m.ClientProperties).Shortstr(m.Mechanism).Longstr(m.Response).Shortstr(m.Locale)
}
func (m *ConnectionStartOk) Unmarshal(r *Reader) error {
	m.ClientProperties = r.Table()
	m.Mechanism = r.Shortstr()
	m.Response = r.Longstr()
	m.Locale = r.Shortstr()
	return r.Err()
}

// ConnectionTune proposes frame_max/channel_max/heartbeat; the client
// narrows these in ConnectionTuneOk.
type ConnectionTune struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (*ConnectionTune) ClassID() uint16  { return ClassConnection }
func (*ConnectionTune) MethodID() uint16 { return MethodConnectionTune }
func (m *ConnectionTune) Marshal(w *Writer) {
	w.Short(m.ChannelMax).Long(m.FrameMax).Short(m.Heartbeat)
}
func (m *ConnectionTune) Unmarshal(r *Reader) error {
	m.ChannelMax = r.Short()
	m.FrameMax = r.Long()
	m.Heartbeat = r.Short()
	return r.Err()
}

type ConnectionTuneOk struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (*ConnectionTuneOk) ClassID() uint16  { return ClassConnection }
func (*ConnectionTuneOk) MethodID() uint16 { return MethodConnectionTuneOk }
func (m *ConnectionTuneOk) Marshal(w *Writer) {
	w.Short(m.ChannelMax).Long(m.FrameMax).Short(m.Heartbeat)
}
func (m *ConnectionTuneOk) Unmarshal(r *Reader) error {
	m.ChannelMax = r.Short()
	m.FrameMax = r.Long()
	m.Heartbeat = r.Short()
	return r.Err()
}

type ConnectionOpen struct {
	VirtualHost string
}

func (*ConnectionOpen) ClassID() uint16  { return ClassConnection }
func (*ConnectionOpen) MethodID() uint16 { return MethodConnectionOpen }
func (*ConnectionOpen) synchronous()     {}
func (m *ConnectionOpen) Marshal(w *Writer) {
	w.Shortstr(m.VirtualHost).Shortstr("").Bool(false)
}
func (m *ConnectionOpen) Unmarshal(r *Reader) error {
	m.VirtualHost = r.Shortstr()
	r.Shortstr() // reserved: historical "capabilities"
	r.Bool()     // reserved: historical "insist"
	return r.Err()
}

type ConnectionOpenOk struct{}

func (*ConnectionOpenOk) ClassID() uint16    { return ClassConnection }
func (*ConnectionOpenOk) MethodID() uint16   { return MethodConnectionOpenOk }
func (*ConnectionOpenOk) Marshal(w *Writer)  { w.Shortstr("") }
func (m *ConnectionOpenOk) Unmarshal(r *Reader) error {
	r.Shortstr() // reserved: historical "known-hosts"
	return r.Err()
}

// ConnectionClose carries the reply code/text for either side's initiated
// shutdown.
type ConnectionClose struct {
	ReplyCode uint16
	ReplyText string
	ClassID_  uint16
	MethodID_ uint16
}

func (*ConnectionClose) ClassID() uint16  { return ClassConnection }
func (*ConnectionClose) MethodID() uint16 { return MethodConnectionClose }
func (*ConnectionClose) synchronous()     {}
func (m *ConnectionClose) Marshal(w *Writer) {
	w.Short(m.ReplyCode).Shortstr(m.ReplyText).Short(m.ClassID_).Short(m.MethodID_)
}
func (m *ConnectionClose) Unmarshal(r *Reader) error {
	m.ReplyCode = r.Short()
	m.ReplyText = r.Shortstr()
	m.ClassID_ = r.Short()
	m.MethodID_ = r.Short()
	return r.Err()
}

type ConnectionCloseOk struct{}

func (*ConnectionCloseOk) ClassID() uint16    { return ClassConnection }
func (*ConnectionCloseOk) MethodID() uint16   { return MethodConnectionCloseOk }
func (*ConnectionCloseOk) Marshal(*Writer)    {}
func (*ConnectionCloseOk) Unmarshal(r *Reader) error { return r.Err() }

// ConnectionBlocked/Unblocked are server flow-control notifications;
// they carry no synchronous reply and are delivered on the connection's
// blocked-notification stream rather than to an RPC waiter.
type ConnectionBlocked struct {
	Reason string
}

func (*ConnectionBlocked) ClassID() uint16    { return ClassConnection }
func (*ConnectionBlocked) MethodID() uint16   { return MethodConnectionBlocked }
func (m *ConnectionBlocked) Marshal(w *Writer) { w.Shortstr(m.Reason) }
func (m *ConnectionBlocked) Unmarshal(r *Reader) error {
	m.Reason = r.Shortstr()
	return r.Err()
}

type ConnectionUnblocked struct{}

func (*ConnectionUnblocked) ClassID() uint16    { return ClassConnection }
func (*ConnectionUnblocked) MethodID() uint16   { return MethodConnectionUnblocked }
func (*ConnectionUnblocked) Marshal(*Writer)    {}
func (*ConnectionUnblocked) Unmarshal(r *Reader) error { return r.Err() }
